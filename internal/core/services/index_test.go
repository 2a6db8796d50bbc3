package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/core/domain"
)

func defaultIndexSettings() domain.IndexSettings {
	return domain.DefaultAppSettings().Index
}

func TestFitIndex_EmptyCorpus(t *testing.T) {
	idx := FitIndex(nil, defaultIndexSettings())

	assert.Equal(t, 0, idx.Size())
	assert.Equal(t, 0, idx.Features())

	sims := idx.Similarities(idx.Vectorise("anything"))
	assert.Empty(t, sims)
}

func TestFitIndex_IdenticalDocumentScoresHighest(t *testing.T) {
	texts := []string{
		"pressure relief valve stuck closed during startup",
		"contractor slipped on wet walkway near loading bay",
		"crane lifting operation halted due to high wind",
	}
	idx := FitIndex(texts, defaultIndexSettings())
	require.Equal(t, 3, idx.Size())

	sims := idx.Similarities(idx.Vectorise(texts[0]))
	require.Len(t, sims, 3)

	// A query identical to a document is a perfect cosine match.
	assert.InDelta(t, 1.0, sims[0], 1e-9)
	assert.Greater(t, sims[0], sims[1])
	assert.Greater(t, sims[0], sims[2])
}

func TestFitIndex_Deterministic(t *testing.T) {
	texts := []string{
		"valve failure caused pressure release",
		"pressure release during valve maintenance",
		"wet walkway slip near loading bay",
	}

	a := FitIndex(texts, defaultIndexSettings())
	b := FitIndex(texts, defaultIndexSettings())

	require.Equal(t, a.Features(), b.Features())
	assert.Equal(t, a.vocabulary, b.vocabulary)
	assert.Equal(t, a.idf, b.idf)

	query := "pressure valve"
	assert.Equal(t, a.Similarities(a.Vectorise(query)), b.Similarities(b.Vectorise(query)))
}

func TestFitIndex_MaxFeaturesCap(t *testing.T) {
	// Each document contributes distinct terms; the cap keeps only the
	// most frequent ones.
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("shared common token%d extra%d", i, i)
	}

	settings := defaultIndexSettings()
	settings.MaxFeatures = 5
	idx := FitIndex(texts, settings)

	assert.Equal(t, 5, idx.Features())
	// "shared" and "common" appear in every document and must survive.
	assert.Contains(t, idx.vocabulary, "shared")
	assert.Contains(t, idx.vocabulary, "common")
}

func TestFitIndex_BigramsIndexed(t *testing.T) {
	texts := []string{
		"confined space entry",
		"confined space rescue",
	}
	idx := FitIndex(texts, defaultIndexSettings())

	assert.Contains(t, idx.vocabulary, "confined space")
	assert.Contains(t, idx.vocabulary, "confined")
}

func TestFitIndex_StopWordsRemoved(t *testing.T) {
	texts := []string{"the valve was and is the problem"}
	idx := FitIndex(texts, defaultIndexSettings())

	assert.NotContains(t, idx.vocabulary, "the")
	assert.NotContains(t, idx.vocabulary, "and")
	assert.Contains(t, idx.vocabulary, "valve")
}

func TestFitIndex_ExtraStopWords(t *testing.T) {
	settings := defaultIndexSettings()
	settings.ExtraStopWords = []string{"valve"}

	idx := FitIndex([]string{"valve problem detected"}, settings)

	assert.NotContains(t, idx.vocabulary, "valve")
	assert.Contains(t, idx.vocabulary, "problem")
}

func TestVectorise_UnknownTermsIgnored(t *testing.T) {
	idx := FitIndex([]string{"valve pressure release"}, defaultIndexSettings())

	vec := idx.Vectorise("completely unrelated vocabulary")
	assert.Empty(t, vec)

	sims := idx.Similarities(vec)
	require.Len(t, sims, 1)
	assert.Zero(t, sims[0])
}

func TestTokenise_ShortTokensDropped(t *testing.T) {
	idx := FitIndex([]string{"a b cd efg"}, defaultIndexSettings())

	assert.NotContains(t, idx.vocabulary, "a")
	assert.NotContains(t, idx.vocabulary, "b")
	assert.Contains(t, idx.vocabulary, "cd")
	assert.Contains(t, idx.vocabulary, "efg")
}
