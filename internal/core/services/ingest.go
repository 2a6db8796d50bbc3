package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
	"github.com/crestline-labs/advisor-cli/internal/logger"
)

// caseIDPrefix is the numbering scheme prefix for generated case ids.
const caseIDPrefix = "INC"

// seedCaseID is the first id assigned to an empty corpus.
const seedCaseID = "INC-001"

// GenerateCaseID computes the next case id following the existing
// numbering scheme: parse the numeric suffix of every PREFIX-NNN id,
// take the maximum, increment, and zero-pad to at least 3 digits.
// Malformed ids are skipped, never fatal. If no id has a numeric suffix
// the count+1 fallback keeps ids advancing.
func GenerateCaseID(existing []string) string {
	if len(existing) == 0 {
		return seedCaseID
	}

	maxNum := 0
	found := false
	for _, id := range existing {
		idx := strings.LastIndex(id, "-")
		if idx < 0 {
			logger.Debug("Skipping malformed case id %q", id)
			continue
		}
		num, err := strconv.Atoi(id[idx+1:])
		if err != nil {
			logger.Debug("Skipping malformed case id %q", id)
			continue
		}
		found = true
		if num > maxNum {
			maxNum = num
		}
	}

	if !found {
		return fmt.Sprintf("%s-%03d", caseIDPrefix, len(existing)+1)
	}
	return fmt.Sprintf("%s-%03d", caseIDPrefix, maxNum+1)
}

// buildIncident materialises a draft into a full incident: assigns the
// case id, defaults the date to today and action owners to "TBD", and
// numbers the actions 1-based.
func buildIncident(caseID string, report domain.IncidentDraft, drafts []domain.ActionDraft, now time.Time) domain.Incident {
	date := strings.TrimSpace(report.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}

	actions := make([]domain.Action, 0, len(drafts))
	for i, d := range drafts {
		owner := strings.TrimSpace(d.Owner)
		if owner == "" {
			owner = domain.DefaultOwner
		}
		actions = append(actions, domain.Action{
			ActionNumber: i + 1,
			Action:       d.Action,
			Owner:        owner,
			Timing:       d.Timing,
			Verification: d.Verification,
		})
	}

	return domain.Incident{
		CaseID:                caseID,
		Title:                 report.Title,
		WhatHappened:          report.WhatHappened,
		WhyDidItHappen:        report.WhyDidItHappen,
		CausalFactors:         report.CausalFactors,
		LessonsToPrevent:      report.LessonsToPrevent,
		WhatWentWell:          report.WhatWentWell,
		WhatCouldHaveHappened: report.WhatCouldHaveHappened,
		Category:              report.Category,
		RiskLevel:             report.RiskLevel,
		Location:              report.Location,
		Setting:               report.Setting,
		InjuryCategory:        report.InjuryCategory,
		Severity:              report.Severity,
		PrimaryClassification: report.PrimaryClassification,
		Date:                  date,
		Actions:               actions,
	}
}
