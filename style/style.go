package style

import "strings"

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property string
	Value    string
}

// Style is an ordered list of CSS declarations.
// Later Set calls replace earlier values in place so output order is stable.
type Style []Declaration

// Set returns s with property set to value.
func (s Style) Set(property, value string) Style {
	for i := range s {
		if s[i].Property == property {
			s[i].Value = value
			return s
		}
	}
	return append(s, Declaration{Property: property, Value: value})
}

// Get returns the value of property and whether it is present.
func (s Style) Get(property string) (string, bool) {
	for _, d := range s {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Merge returns a copy of s with every declaration of o applied on top.
func (s Style) Merge(o Style) Style {
	out := make(Style, len(s), len(s)+len(o))
	copy(out, s)
	for _, d := range o {
		out = out.Set(d.Property, d.Value)
	}
	return out
}

// String renders the declarations as an inline style attribute value.
func (s Style) String() string {
	var b strings.Builder
	for i, d := range s {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
	}
	return b.String()
}
