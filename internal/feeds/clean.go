package feeds

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// RemoveLinks drops markdown link syntax (keeping the text) and bare URLs.
func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// StripHTML reduces a feed description to plain text: HTML tags removed,
// links stripped, whitespace collapsed. Unparseable input comes back as-is
// minus links.
func StripHTML(input string) string {
	text := input
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err == nil {
		text = doc.Text()
	}
	text = RemoveLinks(text)
	return strings.Join(strings.Fields(text), " ")
}

// CombinedText builds the scorable text blob for one item.
func CombinedText(title, description string) string {
	stripped := StripHTML(description)
	if stripped == "" {
		return strings.TrimSpace(title)
	}
	return strings.TrimSpace(title + " " + stripped)
}
