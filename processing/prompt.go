package processing

import (
	"fmt"
	"regexp"
)

// PromptTemplateVersion identifies the current synthesis prompt revision.
const PromptTemplateVersion = "v2"

// MoviePromptTemplate is the fixed synthesis prompt. Placeholders use
// {snake_case} names and every one of them must be bound at render time.
const MoviePromptTemplate = `Movie 1 title: {movie1_title}
Movie 1 plot: {movie1_plot}
Movie 1 poster description: {movie1_description}

Movie 2 title: {movie2_title}
Movie 2 plot: {movie2_plot}
Movie 2 poster description: {movie2_description}

Target genre: {genre}
Response language: {language}
`

var placeholderPattern = regexp.MustCompile(`\{[a-z0-9_]+\}`)

// RenderPrompt substitutes named {placeholder} bindings into template. A
// template placeholder with no binding is an error so template drift fails
// loudly. Substitution is a single pass over the template: injected values
// are never rescanned, so brace text inside a value (a plot quoting
// "{freedom}", say) passes through untouched.
func RenderPrompt(template string, bindings map[string]string) (string, error) {
	var missing string
	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		value, ok := bindings[placeholder[1:len(placeholder)-1]]
		if !ok {
			if missing == "" {
				missing = placeholder
			}
			return placeholder
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("unresolved placeholder %s in prompt template", missing)
	}
	return rendered, nil
}
