package fragment

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const maxDepth = 200

var (
	multiNewlinePattern = regexp.MustCompile(`\n{3,}`)
	multiSpacePattern   = regexp.MustCompile(`[ \t]{2,}`)
)

// Parse reads an HTML fragment.
func Parse(r io.Reader) (Content, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Content{}, fmt.Errorf("parse fragment: %w", err)
	}

	var (
		content Content
		sb      strings.Builder
	)
	walk(doc, &content, &sb, 0)
	content.Text = cleanMarkdown(sb.String())
	numberItems(&content)

	return content, nil
}

// ParseString is Parse for an in-memory fragment.
func ParseString(s string) (Content, error) {
	return Parse(strings.NewReader(s))
}

func walk(n *html.Node, content *Content, sb *strings.Builder, depth int) {
	if depth > maxDepth {
		return
	}

	switch n.Type {
	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Iframe, atom.Svg,
			atom.Input, atom.Button, atom.Select, atom.Textarea, atom.Img:
			return
		case atom.Table:
			content.Tables = append(content.Tables, parseTable(n))
			return
		case atom.H1:
			sb.WriteString("\n\n# ")
		case atom.H2:
			sb.WriteString("\n\n## ")
		case atom.H3, atom.H4, atom.H5, atom.H6:
			sb.WriteString("\n\n### ")
		case atom.P, atom.Div:
			sb.WriteString("\n\n")
		case atom.Br:
			sb.WriteString("\n")
		case atom.Li:
			sb.WriteString("\n- ")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, content, sb, depth+1)
	}

	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
			sb.WriteString("\n\n")
		}
	}
}

func parseTable(n *html.Node) Table {
	var t Table
	items := 0

	for _, tr := range findAll(n, atom.Tr) {
		cells, isHeader := rowCells(tr)
		if isHeader {
			if t.Header == nil {
				t.Header = cells
			}
			continue
		}
		if len(cells) == 0 {
			continue
		}

		row := Row{Cells: cells, ItemIndex: -1}
		if box := findCheckbox(tr); box != nil {
			group := groupFromClass(attr(box, "class"))
			if group != "" && (t.GroupID == "" || t.GroupID == group) {
				t.GroupID = group
				row.Value = attr(box, "value")
				row.Disabled = hasAttr(box, "disabled")
				row.ItemIndex = items
				items++
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

// numberItems renumbers ItemIndex so that tables sharing a group form one
// item sequence in document order.
func numberItems(content *Content) {
	next := make(map[string]int)
	for ti := range content.Tables {
		t := &content.Tables[ti]
		if !t.Selectable() {
			continue
		}
		for ri := range t.Rows {
			if t.Rows[ri].Selectable() {
				t.Rows[ri].ItemIndex = next[t.GroupID]
				next[t.GroupID]++
			}
		}
	}
}

// findAll returns descendants with the given tag, not descending into nested
// tables.
func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node, int)
	visit = func(node *html.Node, depth int) {
		if depth > maxDepth {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom == a {
				out = append(out, c)
				continue
			}
			if c.DataAtom == atom.Table {
				continue
			}
			visit(c, depth+1)
		}
	}
	visit(n, 0)
	return out
}

// rowCells returns the trimmed text of each cell and whether every cell was a
// header cell.
func rowCells(tr *html.Node) ([]string, bool) {
	var cells []string
	header := true
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Th:
			cells = append(cells, textOf(c))
		case atom.Td:
			header = false
			cells = append(cells, textOf(c))
		}
	}
	return cells, header && len(cells) > 0
}

func findCheckbox(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.DataAtom == atom.Input && strings.EqualFold(attr(c, "type"), "checkbox") {
			return c
		}
		if found := findCheckbox(c); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteString(" ")
			return
		}
		if node.Type == html.ElementNode && (node.DataAtom == atom.Script || node.DataAtom == atom.Style) {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func cleanMarkdown(s string) string {
	s = multiSpacePattern.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")
	s = multiNewlinePattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
