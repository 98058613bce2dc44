package editor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements end a line in the rendered text
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr"

// markup matches an HTML element tag an editable element produces, or a
// character reference. Text such as "List<T>" or "a<b and c>d" does not match.
var markup = regexp.MustCompile(`(?i)</?(a|b|br|div|em|font|h[1-6]|i|li|ol|p|s|script|span|strong|style|sub|sup|table|td|th|tr|u|ul)` +
	`(\s+[a-z][a-z0-9-]*\s*=\s*("[^"]*"|'[^']*'|[^\s"'<>]+))*\s*/?>` +
	`|&(#[0-9]+|#x[0-9a-f]+|[a-z]+);`)

// HasMarkup reports whether s holds an HTML tag or character reference
func HasMarkup(s string) bool {
	return markup.MatchString(s)
}

// PlainText reduces the inner HTML of an editable element to its text
// content, the way a browser reports its inner text: markup is dropped,
// entities are decoded, <br> and block boundaries become newlines.
// Surrounding whitespace is trimmed. A draft without markup is only trimmed.
func PlainText(draft string) string {
	if !HasMarkup(draft) {
		return strings.TrimSpace(draft)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(draft))
	if err != nil {
		return strings.TrimSpace(draft)
	}

	body := doc.Find("body")
	body.Find("script, style").Remove()
	body.Find("br").ReplaceWithHtml("\n")
	body.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	lines := strings.Split(body.Text(), "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
