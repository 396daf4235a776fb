package scheduler

import (
	"fmt"
	"sort"

	"shift-scheduler/availability"
	"shift-scheduler/models"
)

// variant is one deterministic flavour of the assignment pass.
type variant struct {
	name       string
	descending bool
	latest     bool
}

// variants are tried in this order; earlier wins ties.
var variants = []variant{
	{name: "ascending-earliest"},
	{name: "ascending-latest", latest: true},
	{name: "descending-earliest", descending: true},
	{name: "descending-latest", descending: true, latest: true},
}

// candidate is a complete week produced by one assignment pass.
type candidate struct {
	variant variant
	index   int
	week    models.WeeklySchedule
	// flagged holds the violations the pass knowingly left behind.
	flagged []models.Violation
	deficit int
	score   float64
}

// workPlan marks the days an employee is meant to work this week.
type workPlan [models.DaysPerWeek]bool

func (w *workPlan) count() int {
	n := 0
	for _, on := range w {
		if on {
			n++
		}
	}
	return n
}

// planWorkDays drops as many workable days as the contracted hours allow.
// For d drops among n days the dropped positions are floor((2i+1)n/2d),
// shifted by the roster index so that days off are staggered across the team.
func planWorkDays(emp *models.Employee, av *availability.Week) workPlan {
	var plan workPlan
	days := av.WorkableDays()
	n := len(days)
	if n == 0 || emp.WeeklyMinutes <= 0 {
		return plan
	}

	drops := 0
	for d := n - 1; d >= 1; d-- {
		covered := 0
		skip := dropPositions(n, d, emp.Index)
		for i, day := range days {
			if !skip[i] {
				covered += av[day].CapMinutes
			}
		}
		if covered >= emp.WeeklyMinutes {
			drops = d
			break
		}
	}

	skip := dropPositions(n, drops, emp.Index)
	for i, day := range days {
		if !skip[i] {
			plan[day] = true
		}
	}
	return plan
}

func dropPositions(n, d, rotation int) []bool {
	skip := make([]bool, n)
	for i := 0; i < d; i++ {
		skip[((2*i+1)*n/(2*d)+rotation)%n] = true
	}
	return skip
}

// shape is the layout of one working day before it is placed: an active
// stretch, optionally followed by a break and a second active stretch.
type shape struct {
	first  int
	gap    int
	second int
	forced bool
}

func (s shape) span() int   { return s.first + s.gap + s.second }
func (s shape) active() int { return s.first + s.second }
func (s shape) split() bool { return s.second > 0 }

// staffing is the per-minute head count of one day over the opening window.
type staffing struct {
	window models.Window
	min    int
	counts []int
	// prefix[k] counts the understaffed minutes among the first k.
	prefix []int
}

func newStaffing(window models.Window, minStaff int) *staffing {
	s := &staffing{
		window: window,
		min:    minStaff,
		counts: make([]int, window.Minutes()),
		prefix: make([]int, window.Minutes()+1),
	}
	s.rebuild()
	return s
}

func (s *staffing) rebuild() {
	for k, c := range s.counts {
		s.prefix[k+1] = s.prefix[k]
		if c < s.min {
			s.prefix[k+1]++
		}
	}
}

// gain returns how many understaffed minutes [start, end) would cover.
func (s *staffing) gain(start, end models.Clock) int {
	lo := max(int(start-s.window.Start), 0)
	hi := min(int(end-s.window.Start), len(s.counts))
	if hi <= lo {
		return 0
	}
	return s.prefix[hi] - s.prefix[lo]
}

func (s *staffing) add(start, end models.Clock) {
	lo := max(int(start-s.window.Start), 0)
	hi := min(int(end-s.window.Start), len(s.counts))
	for k := lo; k < hi; k++ {
		s.counts[k]++
	}
}

// deficits returns one staffing_deficit violation per maximal run of minutes
// sharing the same below-minimum head count, and the person-minutes missing.
func (s *staffing) deficits(day models.Weekday, date string) ([]models.Violation, int) {
	var (
		out     []models.Violation
		missing int
	)
	for k := 0; k < len(s.counts); {
		c := s.counts[k]
		if c >= s.min {
			k++
			continue
		}
		end := k
		for end < len(s.counts) && s.counts[end] == c {
			end++
		}
		from := s.window.Start + models.Clock(k)
		to := s.window.Start + models.Clock(end)
		missing += (s.min - c) * (end - k)
		out = append(out, models.Violation{
			Kind:     models.ViolationStaffingDeficit,
			Weekday:  day.String(),
			Date:     date,
			Start:    from.String(),
			End:      to.String(),
			Required: s.min,
			Actual:   c,
			Message:  fmt.Sprintf("%d of %d required employees present %s-%s", c, s.min, from, to),
			Day:      int(day),
		})
		k = end
	}
	return out, missing
}

// assigner runs one greedy pass over the week for a single variant.
//
// The pass is deliberately single-shot: employees are placed one after the
// other without revisiting earlier placements. Backtracking across employees
// would make the search exponential and break the latency budget; the
// optimizer recovers some quality by trying a few variants instead.
type assigner struct {
	cfg     Config
	problem *models.Problem
	avail   []availability.Week
	plans   []workPlan
	variant variant
}

// run builds the candidate week. exhausted is consulted between days only;
// when it reports true the partial week is abandoned and run returns false.
// A nil exhausted never interrupts.
// Time: O(days * employees * (window + starts)) with prefix sums for the
// deficit lookups.
func (a *assigner) run(exhausted func() bool) (*candidate, bool) {
	p := a.problem
	n := len(p.Employees)
	week := models.NewWeeklySchedule(n)
	allocated := make([]int, n)
	daysLeft := make([]int, n)
	for i := range a.plans {
		daysLeft[i] = a.plans[i].count()
	}

	c := &candidate{variant: a.variant}
	anchor, anchored := models.Clock(0), false

	order := make([]int, n)
	for d := 0; d < models.DaysPerWeek; d++ {
		if d > 0 && exhausted != nil && exhausted() {
			return nil, false
		}
		day := models.Weekday(d)
		if !p.Company.IsOpen(day) {
			continue
		}

		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(x, y int) bool {
			ax, ay := allocated[order[x]], allocated[order[y]]
			if a.variant.descending {
				return ax > ay
			}
			return ax < ay
		})

		staff := newStaffing(p.Company.Hours, p.Company.MinStaff)
		for _, i := range order {
			if !a.plans[i][d] {
				continue
			}
			daysLeft[i]--
			emp := &p.Employees[i]
			av := a.avail[i][d]

			target := a.dailyTarget(emp.WeeklyMinutes-allocated[i], daysLeft[i]+1, av.CapMinutes)
			if target <= 0 {
				continue
			}
			sh, ok := a.shapeDay(emp, target, av.Window)
			if !ok {
				continue
			}

			start := a.place(emp, sh, av.Window, staff, anchor, anchored)
			slots := layout(start, sh)
			for _, s := range slots {
				if !s.Break {
					staff.add(s.Start, s.End)
				}
			}
			staff.rebuild()
			week.Employees[i][d] = slots
			allocated[i] += sh.active()
			if !anchored {
				anchor, anchored = start, true
			}

			if sh.split() && !emp.AllowSplit {
				c.flagged = append(c.flagged, models.Violation{
					Kind:       models.ViolationSplitShiftDisallowed,
					EmployeeID: emp.ID,
					Weekday:    day.String(),
					Date:       p.DateOf(day),
					Required:   0,
					Actual:     1,
					Message:    "mandatory lunch break splits the shift of an employee who does not accept split shifts",
					Day:        d,
				})
			}
		}

		flagged, missing := staff.deficits(day, p.DateOf(day))
		c.flagged = append(c.flagged, flagged...)
		c.deficit += missing
	}

	for i := range p.Employees {
		emp := &p.Employees[i]
		if emp.WeeklyMinutes > 0 && allocated[i] == 0 {
			c.flagged = append(c.flagged, unassignable(emp, a.avail[i]))
		}
	}

	c.week = week
	return c, true
}

// dailyTarget spreads the remaining weekly minutes over the planned days left,
// rounded up to the grid and clamped to the day's cap. Zero means skip.
func (a *assigner) dailyTarget(remaining, days, capMinutes int) int {
	if remaining <= 0 || days <= 0 {
		return 0
	}
	g := a.cfg.GranularityMinutes
	target := ceilTo((remaining+days-1)/days, g)
	target = min(target, capMinutes)
	if target < a.problem.Company.MinDailyMinutes {
		return 0
	}
	return target
}

// shapeDay decides how the target splits around a break and shrinks it when
// the span does not fit the window. ok is false when nothing workable is left.
func (a *assigner) shapeDay(emp *models.Employee, target int, window models.Window) (shape, bool) {
	c := a.problem.Company
	g := a.cfg.GranularityMinutes
	threshold := a.cfg.LunchThresholdMinutes
	active := min(target, window.Minutes())

	if c.MandatoryLunch && active > threshold {
		if c.LunchMinutes > 0 {
			if active+c.LunchMinutes > window.Minutes() {
				active = floorTo(window.Minutes()-c.LunchMinutes, g)
			}
			if active > threshold {
				// One break per day: neither half may exceed the threshold.
				first := min(floorTo(active/2, g), threshold)
				second := min(active-first, threshold)
				return a.accept(shape{first: first, gap: c.LunchMinutes, second: second, forced: true})
			}
		}
		// No room for a break: stay under the threshold instead.
		active = min(target, threshold, window.Minutes())
	}

	if a.problem.Policy.Enabled(models.TermSplit) && emp.AllowSplit && c.LunchMinutes > 0 &&
		active >= 2*g && active+c.LunchMinutes <= window.Minutes() {
		first := floorTo(active/2, g)
		return a.accept(shape{first: first, gap: c.LunchMinutes, second: active - first})
	}
	return a.accept(shape{first: active})
}

func (a *assigner) accept(s shape) (shape, bool) {
	if s.active() <= 0 || s.active() < a.problem.Company.MinDailyMinutes {
		return s, false
	}
	return s, true
}

// place picks the start time of a shaped day. Candidates lie on the grid from
// the window start, plus the latest feasible start. The choice is
// lexicographic: staffing gain, then employee preference when it is
// prioritized, then closeness to the anchor when uniformity is favoured, then
// employee preference, then the variant's bias.
func (a *assigner) place(emp *models.Employee, sh shape, window models.Window, staff *staffing, anchor models.Clock, anchored bool) models.Clock {
	policy := a.problem.Policy
	prioritize := policy.Enabled(models.TermEmployeePreference)
	uniform := policy.Enabled(models.TermUniformity) && anchored
	g := models.Clock(a.cfg.GranularityMinutes)
	latest := window.End - models.Clock(sh.span())

	type option struct {
		start models.Clock
		gain  int
		pref  int
		dist  int
	}
	evaluate := func(start models.Clock) option {
		o := option{start: start}
		for _, s := range layout(start, sh) {
			if s.Break {
				continue
			}
			o.gain += staff.gain(s.Start, s.End)
			for _, w := range emp.PreferredWindows {
				o.pref += w.Overlap(s.Start, s.End)
			}
		}
		if uniform {
			o.dist = abs(int(start - anchor))
		}
		return o
	}
	better := func(x, y option) bool {
		if x.gain != y.gain {
			return x.gain > y.gain
		}
		if prioritize && x.pref != y.pref {
			return x.pref > y.pref
		}
		if uniform && x.dist != y.dist {
			return x.dist < y.dist
		}
		if !prioritize && x.pref != y.pref {
			return x.pref > y.pref
		}
		if a.variant.latest {
			return x.start > y.start
		}
		return x.start < y.start
	}

	best := evaluate(window.Start)
	for s := window.Start + g; s <= latest; s += g {
		if o := evaluate(s); better(o, best) {
			best = o
		}
	}
	if latest > window.Start {
		if o := evaluate(latest); better(o, best) {
			best = o
		}
	}
	return best.start
}

// layout turns a shape placed at start into slots.
func layout(start models.Clock, sh shape) models.DaySchedule {
	first := models.TimeSlot{Start: start, End: start + models.Clock(sh.first)}
	if !sh.split() {
		return models.DaySchedule{first}
	}
	lunch := models.TimeSlot{Start: first.End, End: first.End + models.Clock(sh.gap), Break: true}
	second := models.TimeSlot{Start: lunch.End, End: lunch.End + models.Clock(sh.second)}
	return models.DaySchedule{first, lunch, second}
}

func unassignable(emp *models.Employee, av availability.Week) models.Violation {
	msg := "no workable day this week"
	if len(av.WorkableDays()) > 0 {
		msg = "no workable day can hold the minimum daily hours"
	}
	return models.Violation{
		Kind:       models.ViolationUnassignable,
		EmployeeID: emp.ID,
		Required:   emp.WeeklyMinutes,
		Actual:     0,
		Message:    msg,
		Day:        models.NoDay,
	}
}

func ceilTo(v, g int) int  { return (v + g - 1) / g * g }
func floorTo(v, g int) int { return v / g * g }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
