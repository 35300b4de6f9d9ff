package importer

// Action is what happened to a single imported row.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
	ActionFailed  Action = "failed"
)

// RawRow is one data row of an import file.
// Fields maps canonical field names to trimmed cell text.
type RawRow struct {
	Number int // 1-based line in the file, the header is line 1
	Fields map[string]string
	// Err is set by the parser when the row could not be split into fields.
	Err error
}

// Get returns the cell for a canonical field, or "" when the column is absent.
func (r RawRow) Get(field string) string {
	return r.Fields[field]
}

// Blank reports whether every cell of the row is empty.
func (r RawRow) Blank() bool {
	for _, value := range r.Fields {
		if value != "" {
			return false
		}
	}
	return true
}

type ImportOutcome struct {
	RowNumber    int    `json:"row"`
	Action       Action `json:"action"`
	Key          string `json:"key,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

// ImportBatchResult is the report for one import file.
// SuccessCount + FailureCount always equals len(Outcomes); skipped rows are
// only counted.
type ImportBatchResult struct {
	SuccessCount int
	FailureCount int
	SkippedCount int
	Outcomes     []ImportOutcome
}

func (r *ImportBatchResult) record(outcome ImportOutcome) {
	if outcome.Action == ActionFailed {
		r.FailureCount++
	} else {
		r.SuccessCount++
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

func (r *ImportBatchResult) Created() int {
	return r.count(ActionCreated)
}

func (r *ImportBatchResult) Updated() int {
	return r.count(ActionUpdated)
}

func (r *ImportBatchResult) count(action Action) int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Action == action {
			n++
		}
	}
	return n
}

// FailureSample returns up to n failed outcomes in file order.
func (r *ImportBatchResult) FailureSample(n int) []ImportOutcome {
	return r.sample(n, func(o ImportOutcome) bool { return o.Action == ActionFailed })
}

// SuccessSample returns up to n created or updated outcomes in file order.
func (r *ImportBatchResult) SuccessSample(n int) []ImportOutcome {
	return r.sample(n, func(o ImportOutcome) bool { return o.Action != ActionFailed })
}

func (r *ImportBatchResult) sample(n int, match func(ImportOutcome) bool) []ImportOutcome {
	sample := make([]ImportOutcome, 0, n)
	for _, outcome := range r.Outcomes {
		if len(sample) == n {
			break
		}
		if match(outcome) {
			sample = append(sample, outcome)
		}
	}
	return sample
}
