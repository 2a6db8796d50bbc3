package services

import (
	"sort"
	"strings"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// computeStatistics aggregates counts over the corpus. Grouping keys are
// the field values exactly as seen in the data.
func computeStatistics(incidents []domain.Incident) domain.StatsReport {
	report := domain.StatsReport{
		TotalIncidents:   len(incidents),
		ByCategory:       make(map[string]int),
		ByRiskLevel:      make(map[string]int),
		BySeverity:       make(map[string]int),
		ByDate:           make(map[string]int),
		ByLocation:       make(map[string]int),
		ByInjuryCategory: make(map[string]int),
	}

	for i := range incidents {
		inc := &incidents[i]
		report.TotalActions += len(inc.Actions)
		countValue(report.ByCategory, inc.Category)
		countValue(report.ByRiskLevel, inc.RiskLevel)
		countValue(report.BySeverity, inc.Severity)
		countValue(report.ByDate, inc.Date)
		countValue(report.ByLocation, inc.Location)
		countValue(report.ByInjuryCategory, inc.InjuryCategory)
	}

	return report
}

// countValue increments the bucket for a non-missing value.
func countValue(buckets map[string]int, value string) {
	if domain.IsNullText(value) {
		return
	}
	buckets[value]++
}

// uniqueFieldValues returns the sorted unique non-missing values of the
// named incident field.
func uniqueFieldValues(incidents []domain.Incident, field string) []string {
	seen := make(map[string]struct{})
	for i := range incidents {
		val, ok := incidents[i].Field(field)
		if !ok || domain.IsNullText(val) {
			continue
		}
		seen[strings.TrimSpace(val)] = struct{}{}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
