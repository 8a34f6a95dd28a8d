// Package extract pulls analyzable plain text out of fetched documents.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// VisibleText parses HTML content and returns the visible text, skipping
// scripts, styles and other non-content tags. Parse failures fall back to the
// raw input so a slightly broken page still reaches the validator.
func VisibleText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}
	return visibleText(doc)
}

// IsHTML reports whether content looks like an HTML document rather than
// plain text. Content-Type is checked first by callers; this is the fallback
// sniff for files and servers that lie.
func IsHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// visibleText extracts text nodes from HTML, skipping scripts/styles
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe", "nav", "footer":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return strings.TrimSpace(buf.String())
}
