package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/core/ports/driven"
)

func TestNewPromptStore_LazyInit(t *testing.T) {
	tmpDir := t.TempDir()
	promptDir := filepath.Join(tmpDir, "prompts")

	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	// Constructor must not touch the filesystem.
	_, statErr := os.Stat(promptDir)
	assert.True(t, os.IsNotExist(statErr))

	assert.Equal(t, promptDir, store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptSynthesise)
	require.NoError(t, err)
	assert.Contains(t, prompt, "safety incident advisor")

	// First load materialises the editable file on disk.
	data, err := os.ReadFile(filepath.Join(promptDir, driven.PromptSynthesise+".txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "safety incident advisor")
}

func TestPromptStore_Load_UserEditWins(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	custom := "Question: %s\nContext: %s\nBe brief."
	require.NoError(t, os.MkdirAll(promptDir, 0700))
	path := filepath.Join(promptDir, driven.PromptSynthesise+".txt")
	require.NoError(t, os.WriteFile(path, []byte(custom+"\n"), 0600))

	prompt, err := store.Load(driven.PromptSynthesise)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_Load_CachesAcrossCalls(t *testing.T) {
	promptDir := filepath.Join(t.TempDir(), "prompts")
	store, err := NewPromptStore(promptDir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptSynthesise)
	require.NoError(t, err)

	// Editing the file after the first load is invisible until Reload.
	path := filepath.Join(promptDir, driven.PromptSynthesise+".txt")
	require.NoError(t, os.WriteFile(path, []byte("edited %s %s"), 0600))

	cached, err := store.Load(driven.PromptSynthesise)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()

	fresh, err := store.Load(driven.PromptSynthesise)
	require.NoError(t, err)
	assert.Equal(t, "edited %s %s", fresh)
}

func TestPromptStore_Load_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(filepath.Join(t.TempDir(), "prompts"))
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_prompt")
}
