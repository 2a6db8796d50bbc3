package domain

const unknownDescription = "Unknown"

// Intent is the classified purpose of a user message.
type Intent string

// Available intents.
const (
	// IntentHelp asks what the advisor can do.
	IntentHelp Intent = "help"

	// IntentStats asks for aggregate statistics over the corpus.
	IntentStats Intent = "stats"

	// IntentTraining asks for training suggestions and lessons.
	IntentTraining Intent = "training"

	// IntentSearch asks to find or list specific incidents.
	IntentSearch Intent = "search"

	// IntentRecommend asks for corrective-action recommendations.
	// This is also the default for unclassified messages: a free-text
	// incident description is treated as a request for advice.
	IntentRecommend Intent = "recommend"
)

// IsValid returns true if the intent is recognised.
func (i Intent) IsValid() bool {
	switch i {
	case IntentHelp, IntentStats, IntentTraining, IntentSearch, IntentRecommend:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Intent) String() string {
	return string(i)
}

// Description returns a human-readable description of the intent.
func (i Intent) Description() string {
	switch i {
	case IntentHelp:
		return "Help (usage overview)"
	case IntentStats:
		return "Statistics (corpus overview)"
	case IntentTraining:
		return "Training (lessons and good practices)"
	case IntentSearch:
		return "Search (find incidents)"
	case IntentRecommend:
		return "Recommend (corrective actions)"
	default:
		return unknownDescription
	}
}
