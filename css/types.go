package css

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Value is a parsed property value.
type Value struct {
	Raw       string  // Original text without !important
	Value     float64 // Numeric value for dimension, percentage and number
	Unit      string  // Unit (px, em, %...), empty for numbers and keywords
	Keyword   string  // Keyword, colour or raw text of multi token values
	Important bool
}

// IsNumeric reports if value carries a number.
func (v Value) IsNumeric() bool {
	return v.Keyword == "" && v.Raw != ""
}

// Attr is an attribute selector, only presence and exact match are supported.
type Attr struct {
	Name  string
	Value string
	Exact bool // false for [name]
}

// Selector is a compound selector with optional ancestor chain.
type Selector struct {
	Raw       string
	Element   string // "" for any element
	Classes   []string
	Attrs     []Attr
	NthOfType int // 1 based, 0 when not set
	Ancestor  *Selector
}

// Element is the view of a markup element selectors are matched against.
type Element struct {
	Name      string
	Classes   []string
	Attrs     map[string]string
	NthOfType int
	Parent    *Element
}

// Matches reports if selector matches element and, for descendant
// selectors, any of its ancestors match the rest of the chain.
func (s *Selector) Matches(e *Element) bool {
	if e == nil || !s.matchesCompound(e) {
		return false
	}
	if s.Ancestor == nil {
		return true
	}
	for p := e.Parent; p != nil; p = p.Parent {
		if s.Ancestor.Matches(p) {
			return true
		}
	}
	return false
}

func (s *Selector) matchesCompound(e *Element) bool {
	if s.Element != "" && !strings.EqualFold(s.Element, e.Name) {
		return false
	}
	for _, c := range s.Classes {
		if !slices.Contains(e.Classes, c) {
			return false
		}
	}
	for _, a := range s.Attrs {
		v, ok := e.Attrs[a.Name]
		if !ok || (a.Exact && v != a.Value) {
			return false
		}
	}
	return s.NthOfType == 0 || s.NthOfType == e.NthOfType
}

// Specificity returns selector specificity as (attributes+classes+pseudo, elements).
func (s *Selector) Specificity() (int, int) {
	classes := len(s.Classes) + len(s.Attrs)
	if s.NthOfType > 0 {
		classes++
	}
	elements := 0
	if s.Element != "" {
		elements++
	}
	if s.Ancestor != nil {
		c, e := s.Ancestor.Specificity()
		classes, elements = classes+c, elements+e
	}
	return classes, elements
}

// Rule is a single selector with its declarations, selector lists are split
// into separate rules sharing properties.
type Rule struct {
	Selector   Selector
	Properties map[string]Value
}

type Stylesheet struct {
	Rules    []Rule
	Warnings []string
}

// RulesBySelector returns all rules with the given raw selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var res []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			res = append(res, r)
		}
	}
	return res
}

// Lookup returns cascaded value of property for element: important
// declarations win, then higher specificity, then later rules.
func (s *Stylesheet) Lookup(e *Element, property string) (Value, bool) {
	var (
		best     Value
		bestSpec [3]int
		found    bool
	)
	for _, r := range s.Rules {
		v, ok := r.Properties[property]
		if !ok || !r.Selector.Matches(e) {
			continue
		}
		c, el := r.Selector.Specificity()
		spec := [3]int{0, c, el}
		if v.Important {
			spec[0] = 1
		}
		if !found || compareSpecificity(spec, bestSpec) >= 0 {
			best, bestSpec, found = v, spec, true
		}
	}
	return best, found
}

func compareSpecificity(a, b [3]int) int {
	for i := range a {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return 0
}

// WriteTo serializes stylesheet in a normalized form, one rule per line.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i := range s.Rules {
		n, err := writeRule(w, &s.Rules[i])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s *Stylesheet) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

func writeRule(w io.Writer, rule *Rule) (int, error) {
	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	sb.WriteString(rule.Selector.Raw)
	sb.WriteString(" {")
	for _, name := range names {
		v := rule.Properties[name]
		fmt.Fprintf(&sb, " %s: %s", name, v.Raw)
		if v.Important {
			sb.WriteString(" !important")
		}
		sb.WriteString(";")
	}
	sb.WriteString(" }\n")
	return io.WriteString(w, sb.String())
}

// EscapeDoubleQuoted escapes a string for use inside CSS double quotes.
// Backslashes and double quotes are escaped per CSS syntax: \" and \\.
func EscapeDoubleQuoted(s string) string {
	// Fast path: nothing to escape.
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
