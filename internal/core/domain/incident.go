package domain

import "strings"

// DefaultOwner is the sentinel assigned to actions without an owner.
const DefaultOwner = "TBD"

// nullMarker is the literal some exported datasets carry for missing values.
const nullMarker = "nan"

// Incident represents a historical safety event record.
// It is immutable once ingested into a corpus.
type Incident struct {
	// CaseID is the unique identifier, e.g. "INC-042".
	// It is the stable ordering key within a corpus.
	CaseID string

	// Title is the short human-readable summary.
	Title string

	// Narrative fields.
	WhatHappened          string
	WhyDidItHappen        string
	CausalFactors         string
	LessonsToPrevent      string
	WhatWentWell          string
	WhatCouldHaveHappened string

	// Categorical fields. Values are kept exactly as seen in the data;
	// display-level grouping is a presentation concern.
	Category              string
	RiskLevel             string
	Location              string
	Setting               string
	InjuryCategory        string
	Severity              string
	PrimaryClassification string

	// Date is a calendar date stored as text (YYYY-MM-DD) and compared
	// lexicographically.
	Date string

	// Actions are the corrective actions attached to this incident,
	// ordered by ActionNumber. An incident with no actions is valid.
	Actions []Action

	// SearchText is the derived concatenation of the configured text
	// fields, computed at ingestion. Never edited directly.
	SearchText string
}

// Action is a corrective action owned by exactly one incident.
type Action struct {
	// ActionNumber is the 1-based position within the owning incident.
	ActionNumber int

	// Action is the free-text description (required).
	Action string

	// Owner is the responsible party, "TBD" when unassigned.
	Owner string

	// Timing describes when the action is due.
	Timing string

	// Verification describes how completion is verified.
	Verification string
}

// DefaultSearchTextFields is the ordered list of fields composing the
// derived search text.
var DefaultSearchTextFields = []string{
	"what_happened",
	"why_did_it_happen",
	"causal_factors",
	"title",
	"lessons_to_prevent",
}

// Field returns the named incident field as text. The second return is
// false for fields absent from the schema, which filter logic treats as
// a no-op constraint rather than an error.
func (i Incident) Field(name string) (string, bool) {
	switch name {
	case "case_id":
		return i.CaseID, true
	case "title":
		return i.Title, true
	case "what_happened":
		return i.WhatHappened, true
	case "why_did_it_happen":
		return i.WhyDidItHappen, true
	case "causal_factors":
		return i.CausalFactors, true
	case "lessons_to_prevent":
		return i.LessonsToPrevent, true
	case "what_went_well":
		return i.WhatWentWell, true
	case "what_could_have_happened":
		return i.WhatCouldHaveHappened, true
	case "category":
		return i.Category, true
	case "risk_level":
		return i.RiskLevel, true
	case "location":
		return i.Location, true
	case "setting":
		return i.Setting, true
	case "injury_category":
		return i.InjuryCategory, true
	case "severity":
		return i.Severity, true
	case "primary_classification":
		return i.PrimaryClassification, true
	case "date":
		return i.Date, true
	default:
		return "", false
	}
}

// ComposeSearchText builds the derived search text for an incident by
// joining the non-empty values of the given fields with single spaces.
// Null markers from upstream exports count as empty.
func ComposeSearchText(i Incident, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		val, ok := i.Field(f)
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		if val == "" || strings.EqualFold(val, nullMarker) {
			continue
		}
		parts = append(parts, val)
	}
	return strings.Join(parts, " ")
}

// IsNullText reports whether a narrative value should be treated as
// missing: empty, whitespace, or an upstream null marker.
func IsNullText(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, nullMarker)
}

// IncidentDraft is the caller-supplied report for ingestion, before a
// case id and defaults are assigned.
type IncidentDraft struct {
	Title                 string
	WhatHappened          string
	WhyDidItHappen        string
	CausalFactors         string
	LessonsToPrevent      string
	WhatWentWell          string
	WhatCouldHaveHappened string
	Category              string
	RiskLevel             string
	Location              string
	Setting               string
	InjuryCategory        string
	Severity              string
	PrimaryClassification string
	Date                  string
}

// ActionDraft is a caller-supplied action for ingestion. ActionNumber
// and the owner default are assigned by the ingestion service.
type ActionDraft struct {
	Action       string
	Owner        string
	Timing       string
	Verification string
}
