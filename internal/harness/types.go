package harness

// IndexSummary describes one constructed site index in a check result.
// Index IDs are deliberately excluded: they are fresh per run and would
// break golden comparison.
type IndexSummary struct {
	Dim  int      `json:"dim"`
	Tags []string `json:"tags"`
}

// CheckResult is the recorded outcome of one check.
type CheckResult struct {
	Kind    string `json:"kind"`
	Tag     string `json:"tag"`
	Subject string `json:"subject,omitempty"` // expr or name
	Outcome string `json:"outcome"`

	Matrix        [][]float64    `json:"matrix,omitempty"`
	Position      int            `json:"position,omitempty"`
	FermionString *bool          `json:"fermion_string,omitempty"`
	Indices       []IndexSummary `json:"indices,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Checks contains one entry per scenario check, in order.
	Checks []CheckResult `json:"checks"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Checks: []CheckResult{},
		Errors: []string{},
	}
}

// AddError adds an expectation mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
