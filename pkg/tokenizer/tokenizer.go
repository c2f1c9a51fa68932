package tokenizer

import (
	"strings"
)

// Count returns the whitespace-delimited word count, the token-count
// proxy recorded with every interaction.
func Count(text string) int {
	return len(strings.Fields(text))
}
