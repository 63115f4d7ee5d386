package translation

import (
	"fmt"
	"strings"
)

// systemPrompt instructs the model to behave like a localization tool
func systemPrompt(sourceLanguage, targetLanguage string) string {
	return fmt.Sprintf(`You translate user interface strings of a software application from %s to %s.
Keep placeholders exactly as they are, for example :name, :count, {count}, {{ value }}, %%s and %%d.
Keep HTML tags, Markdown and surrounding whitespace intact.
Respond with only the translated text, without quotes or explanations.`, sourceLanguage, targetLanguage)
}

// cleanResponse strips the wrapping some models add around a translation
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") && len(s) >= 6 {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```"))
	}
	return s
}
