package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullBindings() map[string]string {
	return map[string]string{
		"movie1_title":       "Bambi",
		"movie1_plot":        "A young deer grows up in the forest.",
		"movie1_description": "A fawn in a sunlit clearing.",
		"movie2_title":       "Top Gun",
		"movie2_plot":        "A hotshot pilot trains at an elite school.",
		"movie2_description": "A pilot in aviators before a jet.",
		"genre":              "Romance",
		"language":           "english",
	}
}

func TestRenderPromptSubstitutesAllPlaceholders(t *testing.T) {
	prompt, err := RenderPrompt(MoviePromptTemplate, fullBindings())
	require.NoError(t, err)

	assert.Contains(t, prompt, "Bambi")
	assert.Contains(t, prompt, "Top Gun")
	assert.Contains(t, prompt, "Target genre: Romance")
	assert.Contains(t, prompt, "Response language: english")
	assert.NotContains(t, prompt, "{", "no placeholder braces may survive rendering")
}

func TestRenderPromptFailsOnMissingBinding(t *testing.T) {
	bindings := fullBindings()
	delete(bindings, "movie2_plot")

	_, err := RenderPrompt(MoviePromptTemplate, bindings)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "{movie2_plot}")
}

func TestRenderPromptEmptyValueIsResolved(t *testing.T) {
	bindings := fullBindings()
	bindings["movie1_description"] = ""

	prompt, err := RenderPrompt(MoviePromptTemplate, bindings)
	require.NoError(t, err)
	assert.Contains(t, prompt, "Movie 1 poster description: \n")
}

func TestRenderPromptKeepsLiteralBracesInValues(t *testing.T) {
	bindings := fullBindings()
	bindings["movie1_plot"] = "The hero shouts {freedom} before the battle."

	prompt, err := RenderPrompt(MoviePromptTemplate, bindings)
	require.NoError(t, err, "brace text inside a value is not a template placeholder")
	assert.Contains(t, prompt, "The hero shouts {freedom} before the battle.")
}

func TestRenderPromptNeverRescansValues(t *testing.T) {
	bindings := fullBindings()
	bindings["movie1_plot"] = "A film about {genre} conventions."

	prompt, err := RenderPrompt(MoviePromptTemplate, bindings)
	require.NoError(t, err)
	assert.Contains(t, prompt, "A film about {genre} conventions.",
		"a value naming another binding must not be substituted")
	assert.Contains(t, prompt, "Target genre: Romance")
}

func TestRenderPromptIgnoresExtraBindings(t *testing.T) {
	bindings := fullBindings()
	bindings["unused"] = "value"

	_, err := RenderPrompt(MoviePromptTemplate, bindings)
	assert.NoError(t, err)
}
