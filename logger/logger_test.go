package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-scheduler/logger"
)

func TestZerologLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerologLogger(&buf, "engine", logger.Config{Level: "debug"})

	log.Infof("generated %d schedules", 3)
	log.Debugw("candidate", map[string]any{"variant": "ascending-earliest", "score": 1.5})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "engine", first["component"])
	assert.Equal(t, "generated 3 schedules", first["message"])
	assert.Contains(t, first, "time")

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "debug", second["level"])
	assert.Equal(t, "ascending-earliest", second["variant"])
	assert.Equal(t, 1.5, second["score"])
}

func TestZerologLogger_Level(t *testing.T) {
	tests := map[string]struct {
		level string
		want  []string
	}{
		"Default":  {level: "", want: []string{"info", "warn", "error"}},
		"Warn":     {level: "warn", want: []string{"warn", "error"}},
		"Debug":    {level: "DEBUG", want: []string{"debug", "info", "warn", "error"}},
		"Fallback": {level: "verbose", want: []string{"info", "warn", "error"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewZerologLogger(&buf, "test", logger.Config{Level: tt.level})
			log.Debugf("d")
			log.Infof("i")
			log.Warnf("w")
			log.Errorf("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry))
				got = append(got, entry["level"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestZerologLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewZerologLogger(&buf, "server", logger.Config{Format: "console"})
	log.Warnf("slow request")

	out := buf.String()
	assert.Contains(t, out, "slow request")
	assert.Contains(t, out, "server")
	assert.False(t, json.Valid([]byte(strings.TrimSpace(out))))
}

func TestConfig_Validate(t *testing.T) {
	tests := map[string]struct {
		cfg     logger.Config
		wantErr bool
	}{
		"Defaults":      {cfg: logger.Config{}},
		"Console":       {cfg: logger.Config{Level: "error", Format: "console"}},
		"UnknownLevel":  {cfg: logger.Config{Level: "loud"}, wantErr: true},
		"UnknownFormat": {cfg: logger.Config{Format: "xml"}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.SetDefaults()
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
				return
			}
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestNopLogger(t *testing.T) {
	var log logger.Logger = logger.NopLogger{}
	assert.NotPanics(t, func() {
		log.Debugf("x")
		log.Debugw("x", map[string]any{"k": 1})
		log.Infof("x")
		log.Warnf("x")
		log.Errorf("x")
	})
}
