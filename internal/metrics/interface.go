package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	// IncMatchesRejected counts a match that failed validation, once per broken rule.
	IncMatchesRejected(rule string)
	IncMatchesImported(count int)
	IncImporterRuns()
	ObserveProcessingDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
