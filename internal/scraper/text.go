package scraper

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// footnotePattern matches text starting with a reference marker such as
// "[12]", decoded or entity-encoded.
var footnotePattern = regexp.MustCompile(`^(\[|&#91;)\d*(\]|&#93;)`)

// Text returns the concatenated text of n's children, trimmed.
// A node without children yields "".
func Text(n *html.Node) string {
	return childText(n, nil)
}

// textWithoutFootnote is Text with the trailing superscript child excluded
func textWithoutFootnote(n *html.Node) string {
	return childText(n, lastChildElement(n, atom.Sup))
}

func childText(n, skip *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c == skip {
			continue
		}
		writeText(&b, c)
	}
	return strings.TrimSpace(b.String())
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(b, c)
		}
	}
}

// isFootnote reports whether cell text is a bare reference marker
func isFootnote(text string) bool {
	return footnotePattern.MatchString(text)
}

func elementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

func childElements(n *html.Node, a atom.Atom) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, a) {
			children = append(children, c)
		}
	}
	return children
}

func lastChildElement(n *html.Node, a atom.Atom) *html.Node {
	if n == nil {
		return nil
	}
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if isElement(c, a) {
			return c
		}
	}
	return nil
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// siblingAt walks offset raw siblings forward, text nodes included
func siblingAt(n *html.Node, offset int) *html.Node {
	for i := 0; i < offset && n != nil; i++ {
		n = n.NextSibling
	}
	return n
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
