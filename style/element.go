package style

import (
	"html"
	"strings"
)

// Element is one node of a rendered presentation tree.
type Element struct {
	Tag      string
	Class    string
	Style    Style
	Text     string
	Children []Element
}

// Div returns a div element with the given class, style and children.
func Div(class string, s Style, children ...Element) Element {
	return Element{Tag: "div", Class: class, Style: s, Children: children}
}

// IsZero reports whether e is the zero Element.
func (e Element) IsZero() bool {
	return e.Tag == "" && e.Class == "" && len(e.Style) == 0 && e.Text == "" && len(e.Children) == 0
}

// Find returns the first element in depth-first order whose class list
// contains class.
func (e Element) Find(class string) (Element, bool) {
	if hasClass(e.Class, class) {
		return e, true
	}
	for _, c := range e.Children {
		if found, ok := c.Find(class); ok {
			return found, true
		}
	}
	return Element{}, false
}

// FindAll returns every element whose class list contains class.
func (e Element) FindAll(class string) []Element {
	var out []Element
	e.Walk(func(el Element) {
		if hasClass(el.Class, class) {
			out = append(out, el)
		}
	})
	return out
}

// Walk calls fn for e and all of its descendants in depth-first order.
func (e Element) Walk(fn func(Element)) {
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// HTML renders the tree as markup.
func (e Element) HTML() string {
	var b strings.Builder
	e.writeHTML(&b)
	return b.String()
}

func (e Element) writeHTML(b *strings.Builder) {
	tag := e.Tag
	if tag == "" {
		tag = "div"
	}
	b.WriteByte('<')
	b.WriteString(tag)
	if e.Class != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(e.Class))
		b.WriteByte('"')
	}
	if len(e.Style) > 0 {
		b.WriteString(` style="`)
		b.WriteString(html.EscapeString(e.Style.String()))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	b.WriteString(html.EscapeString(e.Text))
	for _, c := range e.Children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

func hasClass(list, class string) bool {
	for _, c := range strings.Fields(list) {
		if c == class {
			return true
		}
	}
	return false
}
