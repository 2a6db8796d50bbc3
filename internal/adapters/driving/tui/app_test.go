package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/advisor-cli/internal/responder"
)

func TestNewApp_RequiresResponder(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrMissingResponder)
}

func TestNewApp_ValidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Responder: &responder.Responder{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.NotEqual(t, "", app.sessionID)
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingResponder)
	assert.NoError(t, (&Ports{Responder: &responder.Responder{}}).Validate())
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{
			name:  "short line unchanged",
			text:  "hello world",
			width: 20,
			want:  "hello world",
		},
		{
			name:  "wraps at word boundary",
			text:  "one two three four",
			width: 9,
			want:  "one two\nthree\nfour",
		},
		{
			name:  "hard break for long word",
			text:  "abcdefghij",
			width: 4,
			want:  "abcd\nefgh\nij",
		},
		{
			name:  "preserves existing line breaks",
			text:  "first\nsecond",
			width: 20,
			want:  "first\nsecond",
		},
		{
			name:  "zero width returns input",
			text:  "anything at all",
			width: 0,
			want:  "anything at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	assert.Contains(t, styles.Title.Render("Advisor"), "Advisor")
	assert.Contains(t, styles.UserLabel.Render("You"), "You")
	assert.Contains(t, styles.AdvisorLabel.Render("Advisor"), "Advisor")
}
