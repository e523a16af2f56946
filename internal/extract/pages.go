package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// pageMarkerPattern matches delimiter lines emitted by the text
// extraction layer, e.g. "--- Page 3 ---", "[Page 3]", "Page 3 of 12".
// Unmarked text belongs to page 1.
var pageMarkerPattern = regexp.MustCompile(`(?i)^[\s\-=_#\[\]*]*page\s+(\d+)\b`)

// pageLine is one line of input text with the page it appeared on.
type pageLine struct {
	Text string
	Page int
}

// splitPages walks the text line by line, tracking the current page
// number from any marker lines and dropping the markers themselves.
func splitPages(text string) []pageLine {
	page := 1
	var lines []pageLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := pageMarkerPattern.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				page = n
			}
			continue
		}
		lines = append(lines, pageLine{Text: line, Page: page})
	}

	return lines
}

// splitSentences breaks a line into candidate sentences. Inspection
// reports are line-oriented, so a line without terminators is a single
// candidate.
func splitSentences(line string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range line {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on decimals and abbreviations
			if i+1 < len(line) && line[i+1] == ' ' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// NormalizeInput strips HTML markup when the text extraction layer
// hands us an HTML document instead of plain text. Plain text passes
// through unchanged.
func NormalizeInput(text string) string {
	if !looksLikeHTML(text) {
		return text
	}

	doc, err := html.Parse(strings.NewReader(text))
	if err != nil {
		return text
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			case "p", "div", "br", "li", "tr", "h1", "h2", "h3", "h4":
				buf.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				buf.WriteString(t)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return buf.String()
}

func looksLikeHTML(text string) bool {
	head := strings.ToLower(text)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<body") ||
		strings.Contains(head, "<!doctype html")
}
