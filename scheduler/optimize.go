package scheduler

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"shift-scheduler/availability"
	"shift-scheduler/models"
)

// search runs the assignment variants in order until the candidate limit or
// the budget is reached and returns the best candidate. The first candidate
// is never interrupted, so a result always exists.
func (e *Engine) search(p *models.Problem, avail []availability.Week, started time.Time) (*candidate, models.Diagnostics) {
	var diag models.Diagnostics
	budget := time.Duration(e.cfg.BudgetMs) * time.Millisecond
	exhausted := func() bool { return e.now().Sub(started) >= budget }

	plans := make([]workPlan, len(p.Employees))
	for i := range p.Employees {
		plans[i] = planWorkDays(&p.Employees[i], &avail[i])
	}

	var best *candidate
	limit := min(e.cfg.MaxCandidates, len(variants))
	for k := 0; k < limit; k++ {
		var check func() bool
		if k > 0 {
			if exhausted() {
				diag.BudgetExhausted = true
				break
			}
			check = exhausted
		}

		a := &assigner{cfg: e.cfg, problem: p, avail: avail, plans: plans, variant: variants[k]}
		c, ok := a.run(check)
		if !ok {
			diag.BudgetExhausted = true
			break
		}
		c.index = k
		c.score = score(p, c.week, e.cfg)
		diag.CandidatesEvaluated++

		if best == nil || preferred(c, best) {
			best = c
		}
	}

	diag.Variant = best.variant.name
	diag.Score = best.score
	diag.DeficitMinutes = best.deficit
	return best, diag
}

// preferred reports whether x beats y: fewer understaffed person-minutes,
// then fewer known violations, then a higher score, then the earlier variant.
func preferred(x, y *candidate) bool {
	if x.deficit != y.deficit {
		return x.deficit < y.deficit
	}
	if len(x.flagged) != len(y.flagged) {
		return len(x.flagged) < len(y.flagged)
	}
	if x.score != y.score {
		return x.score > y.score
	}
	return x.index < y.index
}

// score evaluates a week against the preference policy. Each term is
// weighted by the policy; split shifts are penalized when not favoured.
func score(p *models.Problem, week models.WeeklySchedule, cfg Config) float64 {
	balance := make([]float64, len(p.Employees))
	var (
		starts, ends                 []float64
		matched, restHonored, splits int
	)
	for i := range p.Employees {
		emp := &p.Employees[i]
		ew := &week.Employees[i]
		for d := range ew {
			day := ew[d]
			splits += day.Splits()
			start, end, ok := day.Span()
			if !ok {
				continue
			}
			starts = append(starts, float64(start)/60)
			ends = append(ends, float64(end)/60)
			if matchesPreference(emp, day) {
				matched++
			}
		}
		if emp.HasRestDay && !ew[emp.RestDay].Worked() {
			restHonored++
		}
		balance[i] = float64(ew.ActiveMinutes()-emp.WeeklyMinutes) / 60
	}

	total := 0.0
	for _, t := range p.Policy.Terms() {
		switch t.Term {
		case models.TermUniformity:
			total -= t.Weight * (variance(starts) + variance(ends))
		case models.TermBalance:
			total -= t.Weight * variance(balance)
		case models.TermEmployeePreference:
			total += t.Weight * float64(matched+restHonored)
		case models.TermSplit:
			if t.Weight > 0 {
				total += t.Weight * float64(splits)
			} else {
				total -= cfg.SplitPenalty * float64(splits)
			}
		}
	}
	return total
}

func matchesPreference(emp *models.Employee, day models.DaySchedule) bool {
	for _, s := range day.ActiveSlots() {
		for _, w := range emp.PreferredWindows {
			if w.Overlap(s.Start, s.End) > 0 {
				return true
			}
		}
	}
	return false
}

// variance is the sample variance, zero below two observations.
func variance(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}
	return stat.Variance(x, nil)
}
