package domain

// StatsReport is an aggregate breakdown of the corpus.
// Grouping keys are the values exactly as seen in the data; no casing or
// spelling normalisation is applied.
type StatsReport struct {
	// TotalIncidents is the number of incidents in the corpus.
	TotalIncidents int

	// TotalActions is the sum of per-incident action counts.
	TotalActions int

	// Breakdowns by categorical field.
	ByCategory       map[string]int
	ByRiskLevel      map[string]int
	BySeverity       map[string]int
	ByDate           map[string]int
	ByLocation       map[string]int
	ByInjuryCategory map[string]int
}
