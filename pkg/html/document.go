package html

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html/atom"
)

// Elements that never have content and close with their start tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:     true,
	atom.Base:     true,
	atom.Br:       true,
	atom.Col:      true,
	atom.Embed:    true,
	atom.Hr:       true,
	atom.Img:      true,
	atom.Input:    true,
	atom.Keygen:   true,
	atom.Link:     true,
	atom.Menuitem: true,
	atom.Meta:     true,
	atom.Param:    true,
	atom.Source:   true,
	atom.Track:    true,
	atom.Wbr:      true,
}

// IsVoidElement reports whether tag names a void element, ignoring case.
func IsVoidElement(tag string) bool {
	return voidElements[atom.Lookup([]byte(strings.ToLower(tag)))]
}

// TextSource is the only view of a document the tree builder needs.
type TextSource interface {
	Text() string
}

// StringSource adapts a string to TextSource.
type StringSource string

// Text returns the string itself.
func (s StringSource) Text() string { return string(s) }

// Attribute is a single attribute of a start tag, in declaration order.
type Attribute struct {
	Name     string `json:"name" yaml:"name"`
	Value    string `json:"value,omitempty" yaml:"value,omitempty"`
	HasValue bool   `json:"hasValue" yaml:"has_value"`
}

// Node is an element of the document tree. All offsets are byte offsets into
// the text the document was built from; StartTagEnd and EndTagStart are -1
// when the element has no such boundary.
type Node struct {
	Tag         string      `json:"tag" yaml:"tag"`
	Start       int         `json:"start" yaml:"start"`
	StartTagEnd int         `json:"startTagEnd" yaml:"start_tag_end"`
	EndTagStart int         `json:"endTagStart" yaml:"end_tag_start"`
	End         int         `json:"end" yaml:"end"`
	Closed      bool        `json:"closed" yaml:"closed"`
	Attributes  []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children    []*Node     `json:"children,omitempty" yaml:"children,omitempty"`
	Parent      *Node       `json:"-" yaml:"-"`
}

func newNode(start, end int, parent *Node) *Node {
	return &Node{Start: start, End: end, StartTagEnd: -1, EndTagStart: -1, Parent: parent}
}

// Attribute returns the value of the named attribute and whether it exists.
// Names compare case-insensitively.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attributes {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) setAttribute(name string) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			n.Attributes[i] = Attribute{Name: name}
			return
		}
	}
	n.Attributes = append(n.Attributes, Attribute{Name: name})
}

func (n *Node) setAttributeValue(name, value string) {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			n.Attributes[i].Value = value
			n.Attributes[i].HasValue = true
			return
		}
	}
}

// isSameTag reports whether the node's tag equals the lowercase name.
func (n *Node) isSameTag(lowerName string) bool {
	return n.Tag != "" && lowerName != "" && strings.ToLower(n.Tag) == lowerName
}

// lastChildBefore returns the index of the last child starting before offset,
// or -1.
func (n *Node) lastChildBefore(offset int) int {
	return sort.Search(len(n.Children), func(i int) bool {
		return offset <= n.Children[i].Start
	}) - 1
}

func (n *Node) findNodeBefore(offset int) *Node {
	if idx := n.lastChildBefore(offset); idx >= 0 {
		child := n.Children[idx]
		if offset > child.Start {
			if offset < child.End {
				return child.findNodeBefore(offset)
			}
			if last := len(child.Children); last > 0 && child.Children[last-1].End == child.End {
				return child.findNodeBefore(offset)
			}
			return child
		}
	}
	return n
}

func (n *Node) findNodeAt(offset int) *Node {
	if idx := n.lastChildBefore(offset); idx >= 0 {
		child := n.Children[idx]
		if offset > child.Start && offset <= child.End {
			return child.findNodeAt(offset)
		}
	}
	return n
}

// Document is the element tree of a piece of markup.
type Document struct {
	// Text is the (preprocessed) text the tree was built from.
	Text     string   `json:"-" yaml:"-"`
	Roots    []*Node  `json:"roots" yaml:"roots"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	root     *Node
}

// FindNodeAt returns the innermost node containing offset, or nil.
func (d *Document) FindNodeAt(offset int) *Node {
	return d.orNil(d.root.findNodeAt(offset))
}

// FindNodeBefore returns the innermost node that starts before offset and
// is either still open at offset or is the last node ending before it, or nil.
func (d *Document) FindNodeBefore(offset int) *Node {
	return d.orNil(d.root.findNodeBefore(offset))
}

func (d *Document) orNil(n *Node) *Node {
	if n == d.root {
		return nil
	}
	return n
}

// Walk calls fn for every node in document order with its depth. Returning
// false from fn skips the node's children.
func (d *Document) Walk(fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(d.Roots, 0)
}

func (d *Document) addWarning(format string, args ...interface{}) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Parse preprocesses raw and builds its document tree. Offsets in the tree
// are valid against raw as well as against Document.Text.
func Parse(raw string, opts ...PreprocessOption) *Document {
	return ParseDocument(StringSource(Preprocess(raw, opts...)))
}

// ParseDocument builds the element tree of the text provided by src.
// Unclosed elements end where their parent ends, or at the end of the text.
func ParseDocument(src TextSource) *Document {
	text := src.Text()
	scanner := NewScanner(text, 0, WithinContent, WithPseudoCloseTags())
	root := newNode(0, len(text), nil)
	doc := &Document{Text: text, root: root}

	curr := root
	endTagStart := -1
	endTagName := ""
	pendingAttribute := ""

	for token := scanner.Scan(); token != EOS; token = scanner.Scan() {
		switch token {
		case StartTagOpen:
			child := newNode(scanner.TokenOffset(), len(text), curr)
			curr.Children = append(curr.Children, child)
			curr = child

		case StartTag:
			curr.Tag = scanner.TokenText()

		case StartTagClose:
			if curr.Parent == nil {
				break
			}
			curr.End = scanner.TokenEnd() // may later move to the end tag
			if scanner.TokenLength() > 0 {
				curr.StartTagEnd = scanner.TokenEnd()
				if curr.Tag != "" && IsVoidElement(curr.Tag) {
					curr.Closed = true
					curr = curr.Parent
				}
			} else {
				// pseudo close of an incomplete start tag
				curr = curr.Parent
			}

		case StartTagSelfClose:
			if curr.Parent != nil {
				curr.Closed = true
				curr.StartTagEnd = scanner.TokenEnd()
				curr.End = scanner.TokenEnd()
				curr = curr.Parent
			}

		case EndTagOpen:
			endTagStart = scanner.TokenOffset()
			endTagName = ""

		case EndTag:
			endTagName = strings.ToLower(scanner.TokenText())

		case EndTagClose:
			node := curr
			for !node.isSameTag(endTagName) && node.Parent != nil {
				node = node.Parent
			}
			if node.Parent == nil {
				if endTagName != "" {
					doc.addWarning("unmatched end tag </%s> at offset %d", endTagName, endTagStart)
				}
				break
			}
			for curr != node {
				doc.addWarning("element <%s> at offset %d implicitly closed by </%s>", curr.Tag, curr.Start, endTagName)
				curr.End = endTagStart
				curr.Closed = false
				curr = curr.Parent
			}
			curr.Closed = true
			curr.EndTagStart = endTagStart
			curr.End = scanner.TokenEnd()
			curr = curr.Parent

		case AttributeName:
			pendingAttribute = scanner.TokenText()
			curr.setAttribute(pendingAttribute)

		case AttributeValue:
			if pendingAttribute != "" {
				curr.setAttributeValue(pendingAttribute, scanner.TokenText())
				pendingAttribute = ""
			}
		}
	}

	for curr.Parent != nil {
		doc.addWarning("element <%s> at offset %d is not closed", curr.Tag, curr.Start)
		curr.End = len(text)
		curr.Closed = false
		curr = curr.Parent
	}

	doc.Roots = root.Children
	return doc
}
