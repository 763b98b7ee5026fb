// Package cleaner strips non-content markup from raw HTML and extracts
// the page title and visible text.
package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Clean parses raw HTML, removes every element whose tag name appears
// in removeElements, and returns the page title and the remaining
// visible body text with collapsed whitespace. It is a pure function:
// malformed or empty HTML yields empty text, never an error. Cleaning
// text that contains no removable markup returns it unchanged.
func Clean(html string, removeElements []string) (string, string) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	body := doc.Find("body")
	if body.Length() == 0 {
		return title, ""
	}

	for _, tag := range removeElements {
		body.Find(tag).Remove()
	}

	return title, collapseWhitespace(body.Text())
}

func collapseWhitespace(text string) string {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
