package service

import (
	"regexp"
	"strings"
)

// ParsedResponse is the structured content extracted from one generated
// reply. Fields a reply does not carry are left empty; Message always holds
// the remaining conversational text.
type ParsedResponse struct {
	Cuisine  string
	DishName string
	Message  string
	Markdown string
}

// The generator is instructed to label its replies, but models wrap labels in
// bold markers inconsistently, so each label tolerates zero or two asterisks
// on either side. A label value ends at a run of two or more spaces, a line
// break, or the end of input.
var (
	cuisineRe   = regexp.MustCompile(`\*{0,2}Cuisine:\*{0,2}[ \t]*(.*?)(?:[ \t]{2,}|\r?\n|$)`)
	dishNameRe  = regexp.MustCompile(`\*{0,2}Dish Name:\*{0,2}[ \t]*(.*?)(?:[ \t]{2,}|\r?\n|$)`)
	separatorRe = regexp.MustCompile(`\*{0,2}Markdown File Output:\*{0,2}`)

	cuisineLineRe  = regexp.MustCompile(`(?m)^.*Cuisine:.*$\r?\n?`)
	dishLineRe     = regexp.MustCompile(`(?m)^.*Dish Name:.*$\r?\n?`)
	horizontalRule = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$\r?\n?`)
	blankRunRe     = regexp.MustCompile(`\n{3,}`)
)

// ParseChefResponse splits a generated reply into its labeled parts. The text
// after the "Markdown File Output:" separator becomes Markdown; everything
// before it, stripped of the label lines and horizontal rules, becomes
// Message. A reply without labels comes back with only Message set.
func ParseChefResponse(text string) ParsedResponse {
	parsed := ParsedResponse{
		Cuisine:  extractLabel(cuisineRe, text),
		DishName: extractLabel(dishNameRe, text),
	}

	message := text
	if loc := separatorRe.FindStringIndex(text); loc != nil {
		message = text[:loc[0]]
		parsed.Markdown = strings.TrimSpace(text[loc[1]:])
	}

	message = removeFirst(cuisineLineRe, message)
	message = removeFirst(dishLineRe, message)
	message = horizontalRule.ReplaceAllString(message, "")
	message = blankRunRe.ReplaceAllString(message, "\n\n")
	parsed.Message = strings.TrimSpace(message)

	return parsed
}

func extractLabel(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// removeFirst drops only the first match so a label mentioned again inside
// the reply body survives.
func removeFirst(re *regexp.Regexp, text string) string {
	loc := re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + text[loc[1]:]
}
