package models

// PolicyTerm names one soft-preference term of the scoring function.
type PolicyTerm int

const (
	TermSplit PolicyTerm = iota
	TermUniformity
	TermBalance
	TermEmployeePreference

	numPolicyTerms
)

var policyTermNames = [numPolicyTerms]string{"split", "uniformity", "balance", "employee_preference"}

func (t PolicyTerm) String() string {
	if t < 0 || t >= numPolicyTerms {
		return "unknown"
	}
	return policyTermNames[t]
}

// PreferencePolicy is a fixed set of named weights, one per PolicyTerm.
type PreferencePolicy [numPolicyTerms]float64

// WeightedTerm pairs a term with its weight.
type WeightedTerm struct {
	Term   PolicyTerm
	Weight float64
}

// Weight returns the weight of term t.
func (p PreferencePolicy) Weight(t PolicyTerm) float64 { return p[t] }

// Enabled reports whether term t carries a positive weight.
func (p PreferencePolicy) Enabled(t PolicyTerm) bool { return p[t] > 0 }

// With returns a copy of p with term t set to w.
func (p PreferencePolicy) With(t PolicyTerm, w float64) PreferencePolicy {
	p[t] = w
	return p
}

// Terms lists every term in a fixed order.
func (p PreferencePolicy) Terms() []WeightedTerm {
	out := make([]WeightedTerm, numPolicyTerms)
	for i := range out {
		out[i] = WeightedTerm{Term: PolicyTerm(i), Weight: p[i]}
	}
	return out
}
