package parse

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

var htmlMetadataRe = regexp.MustCompile(`(?i)^(confidence level|confidence|research date|date)\s*:\s*(.+)$`)

// ParseHTML reads an HTML rendering of a report back into a Document.
// It walks the node tree in document order: the first h1 is the
// title, h2 headings switch sections, ordered list items become
// findings, and source bullets are read from anchor tags. HTML input
// carries no useful line positions, so all positions are zero.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := &Document{}
	current := sectionNone

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return

			case "h1":
				doc.Titles = append(doc.Titles, Heading{Text: nodeText(n)})
				current = sectionNone
				return

			case "h2":
				current = classifySection(nodeText(n))
				return

			case "p":
				text := nodeText(n)
				if m := htmlMetadataRe.FindStringSubmatch(text); m != nil {
					handleMetadata(doc, m[1], strings.TrimSpace(m[2]), 0)
					return
				}
				if current == sectionSummary && text != "" {
					doc.Summary = append(doc.Summary, text)
				}
				return

			case "ol":
				if current == sectionFindings {
					readOrderedItems(doc, n)
					return
				}

			case "ul":
				if current == sectionSources {
					readSourceItems(doc, n)
					return
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return doc, nil
}

// readOrderedItems collects findings from an <ol>, honoring start and
// value attributes so renumbered lists keep their literal numbers.
func readOrderedItems(doc *Document, ol *html.Node) {
	next := 1
	if start, ok := attr(ol, "start"); ok {
		if n, err := strconv.Atoi(start); err == nil {
			next = n
		}
	}

	for li := ol.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		if val, ok := attr(li, "value"); ok {
			if n, err := strconv.Atoi(val); err == nil {
				next = n
			}
		}
		text := nodeText(li)
		if text != "" {
			doc.Findings = append(doc.Findings, FindingItem{Number: next, Text: text})
		}
		next++
	}
}

// readSourceItems collects sources from a <ul>, preferring anchor
// hrefs over raw text.
func readSourceItems(doc *Document, ul *html.Node) {
	for li := ul.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}

		if a := findAnchor(li); a != nil {
			href, _ := attr(a, "href")
			title := nodeText(a)
			if title == href {
				title = ""
			}
			doc.Sources = append(doc.Sources, SourceItem{URL: href, Title: title})
			continue
		}

		url, title := splitSourceItem(nodeText(li))
		if url != "" {
			doc.Sources = append(doc.Sources, SourceItem{URL: url, Title: title})
		}
	}
}

// nodeText extracts the visible text of a node, collapsing whitespace.
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.Join(strings.Fields(buf.String()), " ")
}

// findAnchor returns the first <a> descendant, if any.
func findAnchor(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "a" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if a := findAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

// attr looks up an attribute value on an element node.
func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}
