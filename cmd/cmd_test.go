package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-scheduler/cmd"
)

const requestYAML = `
teamId: team-1
weekNumber: 10
year: 2024
employees:
  - id: e1
    name: Alice
    weeklyHours: 32
companyConstraints:
  minStaffSimultaneously: 0
`

const rosterCSV = `# id, name, email, weeklyHours, restDay, allowSplitShifts, preferredHours
r1, Rita, , 24, , ,
r2, Sam, sam@example.com, 16, friday, false, 09:00-13:00
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := cmd.NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "request.yaml", requestYAML)
	roster := writeFile(t, dir, "roster.csv", rosterCSV)

	tests := map[string]struct {
		args     []string
		contains []string
		check    func(t *testing.T, out string)
		wantErr  bool
	}{
		"Text": {
			args: []string{"generate", "--input", input},
			contains: []string{
				"team=team-1 week=10/2024 feasible=true",
				"e1 : total=32.00h ; [monday: 09:00-17:00",
			},
		},
		"CSV": {
			args: []string{"generate", "--input", input, "--format", "csv"},
			contains: []string{
				"Employee,Weekday,Date,Start,End,Minutes,Lunch Break,Violations",
				"e1,monday,2024-03-04,09:00,17:00,480,No,",
			},
		},
		"JSON": {
			args: []string{"generate", "--input", input, "--format", "json", "--budget-ms", "50"},
			check: func(t *testing.T, out string) {
				var res map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &res))
				assert.Equal(t, true, res["success"])
				assert.Equal(t, "team-1", res["teamId"])
			},
		},
		"RosterReplacesEmployees": {
			args:     []string{"generate", "--input", input, "--roster", roster},
			contains: []string{"r1 : total=24.00h", "r2 : total=16.00h", "friday: off"},
			check: func(t *testing.T, out string) {
				assert.NotContains(t, out, "e1 :")
			},
		},
		"BadFormat": {
			args:    []string{"generate", "--input", input, "--format", "xml"},
			wantErr: true,
		},
		"MissingInput": {
			args:    []string{"generate"},
			wantErr: true,
		},
		"InputNotFound": {
			args:    []string{"generate", "--input", filepath.Join(dir, "absent.json")},
			wantErr: true,
		},
		"InvalidRequest": {
			args:    []string{"generate", "--input", writeFile(t, dir, "bad.json", `{"teamId": "t", "weekNumber": 60, "year": 2024, "employees": [{"id": "a", "name": "A"}]}`)},
			wantErr: true,
		},
		"UnknownConfigFormat": {
			args:    []string{"generate", "--input", input, "--config", writeFile(t, dir, "c.toml", "")},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestRootCommand(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "generate") && strings.Contains(out, "serve"))
}
