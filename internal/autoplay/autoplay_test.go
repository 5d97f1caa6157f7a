package autoplay

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedReplaysQueues(t *testing.T) {
	ui := NewScripted("1", "London").WithAnswers(true)
	ui.ShowMessage("hello")

	assert.Equal(t, "1", ui.ShowChoice("action?", []string{"Travel"}))
	assert.True(t, ui.AskYesNo("sure?"))
	assert.Equal(t, 1, ui.Pending())
	assert.Equal(t, "London", ui.ShowChoice("where?", nil))

	assert.Equal(t, "", ui.ShowChoice("again?", nil))
	assert.False(t, ui.AskYesNo("again?"))
	assert.Equal(t, []string{"hello"}, ui.Messages)
	assert.Len(t, ui.Prompts, 5)

	ui.Choose("9")
	assert.Equal(t, "9", ui.ShowChoice("action?", nil))
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "choice: Travel\nreason: go north", "Travel", false},
		{"fenced", "```yaml\nchoice: \"Rest\"\nreason: tired\n```", "Rest", false},
		{"empty choice", "reason: nothing", "", true},
		{"not yaml", "choice: [unclosed", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDecision(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Choice)
		})
	}
}

func TestChoosePromptListsOptions(t *testing.T) {
	var buf bytes.Buffer
	err := chooseTmpl.Execute(&buf, struct {
		Mysteries int
		Summary   string
		Recent    []string
		Prompt    string
		Options   []string
	}{3, "", []string{"Doom advances to 13."}, "Choose an action", []string{"Travel", "Rest"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1. Travel")
	assert.Contains(t, out, "2. Rest")
	assert.Contains(t, out, "- Doom advances to 13.")
	assert.NotContains(t, out, "Summary of earlier events")
}
