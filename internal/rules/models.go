package rules

// Status is the verdict of a balance expectation.
type Status string

const (
	StatusNone  Status = ""
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// Metrics are the batch aggregates an expectation can refer to.
type Metrics struct {
	WinRate    float64
	R          float64
	PCMeanRun  float64
	NPCMeanRun float64
	Offset     float64
	Ratio      float64
	Battles    int
	PCCount    int
	NPCCount   int
	// HasRegression is false when too few battles were run to compute R.
	HasRegression bool
}
