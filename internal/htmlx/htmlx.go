package htmlx

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FindAnchor returns the href of the first anchor whose visible text equals
// text after whitespace normalization.
func FindAnchor(doc *html.Node, text string) (string, bool) {
	want := collapseSpace(text)
	var href string
	found := walk(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.A {
			return true
		}
		if Text(n) != want {
			return true
		}
		value, ok := Attr(n, "href")
		if !ok {
			return true
		}
		href = value
		return false
	})
	return href, !found
}

// Tables returns every table element in document order, nested tables
// included.
func Tables(doc *html.Node) []*html.Node {
	return collect(doc, atom.Table)
}

// Rows returns the tr elements beneath table in document order.
func Rows(table *html.Node) []*html.Node {
	return collect(table, atom.Tr)
}

// Cells returns the td and th elements beneath row in document order.
func Cells(row *html.Node) []*html.Node {
	var cells []*html.Node
	walk(row, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Td || n.DataAtom == atom.Th) {
			cells = append(cells, n)
		}
		return true
	})
	return cells
}

// Text returns the concatenated text content of node with runs of whitespace
// collapsed to single spaces.
func Text(node *html.Node) string {
	var sb strings.Builder
	walk(node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		return true
	})
	return collapseSpace(sb.String())
}

// Attr returns the value of the named attribute on node.
func Attr(node *html.Node, name string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}

// walk visits node and its descendants depth-first until visit returns false.
// It reports whether the traversal ran to completion.
func walk(node *html.Node, visit func(*html.Node) bool) bool {
	if node == nil {
		return true
	}
	if !visit(node) {
		return false
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

func collect(root *html.Node, target atom.Atom) []*html.Node {
	var nodes []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == target {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
