package rationals

// ProgressReportThreshold is the minimum progress delta between two reports.
// Smaller steps are swallowed to keep the UI channel quiet.
const ProgressReportThreshold = 0.01

// ProgressUpdate is sent from a counter to the UI to report the state of a
// running count.
type ProgressUpdate struct {
	// CalculatorIndex identifies the counter among concurrently running ones.
	CalculatorIndex int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback core algorithms use to report progress
// without knowing about channels or observers.
type ProgressReporter func(progress float64)

func noopReporter(float64) {}

// ReportProgress forwards progress to reporter when it moved by at least
// ProgressReportThreshold since lastReported, or when it reached 1.0.
// lastReported is updated in place.
func ReportProgress(reporter ProgressReporter, lastReported *float64, progress float64) {
	if reporter == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	if progress-*lastReported >= ProgressReportThreshold || (progress >= 1.0 && *lastReported < 1.0) {
		reporter(progress)
		*lastReported = progress
	}
}
