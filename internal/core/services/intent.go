package services

import (
	"strings"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

// intentRule pairs a keyword set with the intent it triggers.
type intentRule struct {
	intent   domain.Intent
	keywords []string
}

// intentRules is evaluated in order, first match wins. The order is part
// of the contract, not an accident of layout: stats and training go
// first because their vocabulary is the most specific, and recommend is
// checked before help and search so that an incident description
// mentioning "action" is treated as a request for advice even when it
// also contains a word like "list".
var intentRules = []intentRule{
	{domain.IntentStats, []string{
		"statistics", "stats", "overview", "summary", "how many",
		"total", "count", "breakdown", "distribution",
	}},
	{domain.IntentTraining, []string{
		"training", "train", "lesson", "learn", "best practice",
		"what went well", "good practice", "prevent",
	}},
	{domain.IntentRecommend, []string{
		"recommend", "suggestion", "what should", "action", "corrective",
		"what to do", "how to handle", "advice", "fix", "mitigation",
	}},
	{domain.IntentHelp, []string{
		"help", "what can you do", "how do i use",
	}},
	{domain.IntentSearch, []string{
		"search", "find", "show", "list", "incidents", "filter",
		"look up", "high risk", "low risk", "medium",
	}},
}

// ClassifyIntent maps a raw user message to a request intent using
// case-insensitive substring matching against the ordered rule list.
// Messages matching no rule default to recommend: an unclassified
// free-text message is most likely an incident description.
func ClassifyIntent(message string) domain.Intent {
	msg := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.intent
			}
		}
	}

	return domain.IntentRecommend
}
