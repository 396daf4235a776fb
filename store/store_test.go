package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-scheduler/models"
	"shift-scheduler/store"
)

func record(id, team string, week int, created time.Time) store.Record {
	return store.Record{
		ID:        id,
		CreatedAt: created,
		Result: &models.GenerationResult{
			Success:    true,
			Feasible:   true,
			TeamID:     team,
			WeekNumber: week,
			Year:       2024,
			Schedule: map[string]map[string][]models.SlotOutput{
				"e1": {"monday": {{Start: "09:00", End: "17:00", Duration: 480}}},
			},
			Violations: []models.Violation{{Kind: models.ViolationStaffingDeficit, Weekday: "tuesday", Message: "short"}},
		},
	}
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) store.Store{
		"Memory": func(t *testing.T) store.Store { return store.NewMemoryStore(0) },
		"JSONL": func(t *testing.T) store.Store {
			s, err := store.NewJSONLStore(filepath.Join(t.TempDir(), "schedules.jsonl"))
			require.NoError(t, err)
			return s
		},
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)
			defer s.Close()

			now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.Save(ctx, record("a", "t1", 10, now)))
			require.NoError(t, s.Save(ctx, record("b", "t1", 10, now.Add(time.Minute))))
			require.NoError(t, s.Save(ctx, record("c", "t2", 10, now)))

			got, err := s.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "a", got.ID)
			assert.True(t, got.CreatedAt.Equal(now))
			assert.Equal(t, "t1", got.Result.TeamID)
			assert.Equal(t, 480, got.Result.Schedule["e1"]["monday"][0].Duration)
			assert.Equal(t, "tuesday", got.Result.Violations[0].Weekday)

			latest, err := s.Latest(ctx, "t1", 2024, 10)
			require.NoError(t, err)
			assert.Equal(t, "b", latest.ID)

			_, err = s.Get(ctx, "missing")
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = s.Latest(ctx, "t1", 2024, 11)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore(time.Hour)

	require.NoError(t, s.Save(ctx, record("old", "t1", 10, time.Now().Add(-2*time.Hour))))
	require.NoError(t, s.Save(ctx, record("fresh", "t2", 10, time.Now())))

	_, err := s.Get(ctx, "old")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Latest(ctx, "t1", 2024, 10)
	assert.ErrorIs(t, err, store.ErrNotFound)

	rec, err := s.Latest(ctx, "t2", 2024, 10)
	require.NoError(t, err)
	assert.Equal(t, "fresh", rec.ID)
}

func TestJSONLStore_SkipsCorruptLines(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "schedules.jsonl")
	s, err := store.NewJSONLStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, record("a", "t1", 10, time.Now())))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rec, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", rec.ID)
}

func TestConfig(t *testing.T) {
	tests := map[string]struct {
		cfg     store.Config
		wantErr bool
	}{
		"Defaults":       {cfg: store.Config{}},
		"JSONL":          {cfg: store.Config{Backend: "jsonl", Path: "x.jsonl"}},
		"UnknownBackend": {cfg: store.Config{Backend: "postgres"}, wantErr: true},
		"NegativeTTL":    {cfg: store.Config{TTL: -time.Second}, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.SetDefaults()
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.NotEmpty(t, cfg.Redis.Prefix)
		})
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := store.Open(ctx, store.Config{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)

	s, err = store.Open(ctx, store.Config{Backend: "jsonl", Path: filepath.Join(t.TempDir(), "s.jsonl")})
	require.NoError(t, err)
	assert.IsType(t, &store.JSONLStore{}, s)

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err = store.Open(ctx, store.Config{Backend: "redis", Redis: store.RedisConfig{Addr: "127.0.0.1:1"}})
	assert.Error(t, err)
}
