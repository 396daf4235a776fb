// Package store persists generation results for the HTTP service. The engine
// itself never touches storage.
package store

import (
	"context"
	"fmt"
	"time"

	"shift-scheduler/models"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = fmt.Errorf("schedule not found")

// Record is one stored generation result.
type Record struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"createdAt"`
	Result    *models.GenerationResult `json:"result"`
}

// Store keeps generation results by id and by team week.
type Store interface {
	Save(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	// Latest returns the most recently saved record of a team week.
	Latest(ctx context.Context, teamID string, year, week int) (Record, error)
	Close() error
}

// Config selects and tunes the backend.
type Config struct {
	// Backend is "memory", "jsonl" or "redis".
	Backend string `json:"backend"`
	// Path is the JSONL file location.
	Path string `json:"path"`
	// TTL expires memory and redis records; zero keeps them forever.
	TTL   time.Duration `json:"ttl"`
	Redis RedisConfig   `json:"redis"`
}

// RedisConfig holds the redis connection settings.
type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Path == "" {
		c.Path = "schedules.jsonl"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.Prefix == "" {
		c.Redis.Prefix = "shift"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	switch c.Backend {
	case "memory", "jsonl", "redis":
	default:
		return fmt.Errorf("unknown store backend %s", c.Backend)
	}
	if c.Backend == "jsonl" && c.Path == "" {
		return fmt.Errorf("store path is required")
	}
	if c.TTL < 0 {
		return fmt.Errorf("store ttl must not be negative")
	}
	return nil
}

// Open builds the configured backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis, cfg.TTL)
	default:
		return NewMemoryStore(cfg.TTL), nil
	}
}

func teamKey(teamID string, year, week int) string {
	return fmt.Sprintf("%s:%d:%02d", teamID, year, week)
}

func recordTeamKey(rec Record) string {
	return teamKey(rec.Result.TeamID, rec.Result.Year, rec.Result.WeekNumber)
}
