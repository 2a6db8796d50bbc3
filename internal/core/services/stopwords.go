package services

// englishStopWords is the built-in stop-word list applied during
// tokenisation. It follows the common English list used by text
// vectorisers; domain-specific additions come from IndexSettings.
var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am",
	"an", "and", "any", "are", "around", "as", "at", "back", "be", "became",
	"because", "been", "before", "being", "below", "between", "both", "but",
	"by", "can", "cannot", "could", "did", "do", "does", "doing", "down",
	"during", "each", "either", "else", "ever", "every", "few", "for",
	"from", "further", "had", "has", "have", "having", "he", "her", "here",
	"hers", "herself", "him", "himself", "his", "how", "however", "i", "if",
	"in", "into", "is", "it", "its", "itself", "just", "last", "least",
	"less", "may", "me", "might", "more", "moreover", "most", "much",
	"must", "my", "myself", "neither", "never", "no", "nor", "not",
	"nothing", "now", "of", "off", "often", "on", "once", "only", "onto",
	"or", "other", "others", "ought", "our", "ours", "ourselves", "out",
	"over", "own", "per", "rather", "same", "she", "should", "since", "so",
	"some", "still", "such", "than", "that", "the", "their", "theirs",
	"them", "themselves", "then", "there", "these", "they", "this",
	"those", "through", "to", "too", "under", "until", "up", "upon", "us",
	"very", "was", "we", "were", "what", "when", "where", "whether",
	"which", "while", "who", "whom", "whose", "why", "will", "with",
	"within", "without", "would", "yet", "you", "your", "yours",
	"yourself", "yourselves",
}

// buildStopWordSet merges the built-in list with extras for O(1) lookup.
func buildStopWordSet(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(englishStopWords)+len(extra))
	for _, w := range englishStopWords {
		set[w] = struct{}{}
	}
	for _, w := range extra {
		set[w] = struct{}{}
	}
	return set
}
