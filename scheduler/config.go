package scheduler

import (
	"fmt"

	"shift-scheduler/errors"
)

// Config tunes the engine. Zero values are replaced by SetDefaults.
type Config struct {
	// BudgetMs bounds the candidate search, measured from the start of Generate.
	BudgetMs int `json:"budgetMs"`
	// MaxCandidates caps how many assignment variants are tried.
	MaxCandidates int `json:"maxCandidates"`
	// LunchThresholdMinutes is the longest continuous stretch allowed without a
	// break when lunch is mandatory.
	LunchThresholdMinutes int `json:"lunchThresholdMinutes"`
	// GranularityMinutes is the grid slot starts and lengths are rounded to.
	GranularityMinutes     int     `json:"granularityMinutes"`
	WeeklyToleranceMinutes int     `json:"weeklyToleranceMinutes"`
	SplitPenalty           float64 `json:"splitPenalty"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.BudgetMs == 0 {
		c.BudgetMs = 8
	}
	if c.MaxCandidates == 0 {
		c.MaxCandidates = len(variants)
	}
	if c.LunchThresholdMinutes == 0 {
		c.LunchThresholdMinutes = 6 * 60
	}
	if c.GranularityMinutes == 0 {
		c.GranularityMinutes = 15
	}
	if c.WeeklyToleranceMinutes == 0 {
		c.WeeklyToleranceMinutes = 60
	}
	if c.SplitPenalty == 0 {
		c.SplitPenalty = 0.25
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.BudgetMs <= 0:
		return fmt.Errorf("%w: budgetMs must be positive", errors.ErrInvalidEngineConfig)
	case c.MaxCandidates < 1 || c.MaxCandidates > len(variants):
		return fmt.Errorf("%w: maxCandidates must be between 1 and %d", errors.ErrInvalidEngineConfig, len(variants))
	case c.LunchThresholdMinutes <= 0:
		return fmt.Errorf("%w: lunchThresholdMinutes must be positive", errors.ErrInvalidEngineConfig)
	case c.GranularityMinutes < 1 || c.GranularityMinutes > 60:
		return fmt.Errorf("%w: granularityMinutes must be between 1 and 60", errors.ErrInvalidEngineConfig)
	case c.WeeklyToleranceMinutes < 0:
		return fmt.Errorf("%w: weeklyToleranceMinutes must not be negative", errors.ErrInvalidEngineConfig)
	case c.SplitPenalty < 0:
		return fmt.Errorf("%w: splitPenalty must not be negative", errors.ErrInvalidEngineConfig)
	}
	return nil
}
