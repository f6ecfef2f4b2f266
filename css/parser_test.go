package css_test

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"marginbox/css"
)

func TestParser_PlacementRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(".margin-box:nth-of-type(1) {margin-top: 0px;}\n.margin-box:nth-of-type(3) {margin-top: 128px;}\n")
	sheet := p.Parse(input, "placement")

	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sheet.Rules))
	}

	rule := sheet.Rules[1]
	if rule.Selector.NthOfType != 3 {
		t.Errorf("expected nth-of-type 3, got %d", rule.Selector.NthOfType)
	}
	if len(rule.Selector.Classes) != 1 || rule.Selector.Classes[0] != "margin-box" {
		t.Errorf("expected class margin-box, got %v", rule.Selector.Classes)
	}
	v := rule.Properties["margin-top"]
	if v.Value != 128 || v.Unit != "px" || !v.IsNumeric() {
		t.Errorf("expected 128px, got %+v", v)
	}
}

func TestParser_HighlightRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	input := []byte(`.comments-enabled .comment[data-id="c1"], .comments-enabled .comment[data-id="c1"] .comment {background-color: #fffacf !important;}
.comments-enabled .comment[data-id="c2"] {background-color: #f2f2f2;}
`)
	sheet := p.Parse(input)

	if len(sheet.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", sheet.Warnings)
	}
	if len(sheet.Rules) != 3 {
		t.Fatalf("expected 3 rules, got %d", len(sheet.Rules))
	}

	first := sheet.Rules[0]
	if first.Selector.Ancestor == nil || first.Selector.Ancestor.Classes[0] != "comments-enabled" {
		t.Errorf("expected comments-enabled ancestor, got %+v", first.Selector.Ancestor)
	}
	if len(first.Selector.Attrs) != 1 || first.Selector.Attrs[0] != (css.Attr{Name: "data-id", Value: "c1", Exact: true}) {
		t.Errorf("unexpected attrs %+v", first.Selector.Attrs)
	}
	bg := first.Properties["background-color"]
	if !bg.Important || bg.Keyword != "#fffacf" {
		t.Errorf("expected important #fffacf, got %+v", bg)
	}

	if got := sheet.Rules[1].Selector.Raw; got != `.comments-enabled .comment[data-id="c1"] .comment` {
		t.Errorf("unexpected raw selector %q", got)
	}
	if sheet.Rules[2].Properties["background-color"].Important {
		t.Error("neutral rule must not be important")
	}
}

func TestParser_UnsupportedSelectors(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`div > p {color: red;} a:hover {color: blue;} p[title~="x"] {color: green;} p {color: black;}`))

	if len(sheet.Rules) != 1 || sheet.Rules[0].Selector.Element != "p" {
		t.Fatalf("expected only 'p' rule, got %+v", sheet.Rules)
	}
	if len(sheet.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %v", sheet.Warnings)
	}
}

func TestParser_SkipsAtRules(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`@import "x.css"; @media print { .a {color: red;} } .b {margin-top: 1em;}`))

	if len(sheet.Rules) != 1 || sheet.RulesBySelector(".b") == nil {
		t.Fatalf("expected only .b rule, got %+v", sheet.Rules)
	}
}

func TestSelector_Matches(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`.comments-enabled .comment[data-id="c1"] {background-color: #fffacf;} div.margin-box:nth-of-type(2) {margin-top: 5px;}`))
	if len(sheet.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(sheet.Rules))
	}

	root := &css.Element{Name: "body", Classes: []string{"comments-enabled"}}
	para := &css.Element{Name: "p", Parent: root}
	span := &css.Element{Name: "span", Classes: []string{"comment"}, Attrs: map[string]string{"data-id": "c1"}, Parent: para}
	other := &css.Element{Name: "span", Classes: []string{"comment"}, Attrs: map[string]string{"data-id": "c2"}, Parent: para}
	detached := &css.Element{Name: "span", Classes: []string{"comment"}, Attrs: map[string]string{"data-id": "c1"}}

	highlight := sheet.Rules[0].Selector
	if !highlight.Matches(span) {
		t.Error("expected highlight to match c1 span")
	}
	if highlight.Matches(other) || highlight.Matches(detached) {
		t.Error("highlight must not match other comment or element outside comments-enabled")
	}

	placement := sheet.Rules[1].Selector
	box := func(n int) *css.Element {
		return &css.Element{Name: "div", Classes: []string{"margin-box", "comment"}, NthOfType: n}
	}
	if !placement.Matches(box(2)) || placement.Matches(box(1)) {
		t.Error("nth-of-type must select only the second box")
	}
}

func TestStylesheet_Lookup(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`
.comment {background-color: #f2f2f2 !important;}
.comment[data-id="c1"] {background-color: #fffacf;}
.x .comment {color: red;}
.comment {color: blue;}
`))

	e := &css.Element{Name: "span", Classes: []string{"comment"}, Attrs: map[string]string{"data-id": "c1"}, Parent: &css.Element{Classes: []string{"x"}}}

	v, ok := sheet.Lookup(e, "background-color")
	if !ok || v.Keyword != "#f2f2f2" {
		t.Errorf("important must win, got %+v", v)
	}
	v, ok = sheet.Lookup(e, "color")
	if !ok || v.Keyword != "red" {
		t.Errorf("more specific selector must win, got %+v", v)
	}
	if _, ok := sheet.Lookup(e, "margin-top"); ok {
		t.Error("unexpected margin-top")
	}
}

func TestStylesheet_String(t *testing.T) {
	p := css.NewParser(zap.NewNop())
	sheet := p.Parse([]byte(`.a{margin-top:10px;color:red !important}`))
	got := sheet.String()
	want := ".a { color: red !important; margin-top: 10px; }\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("missing trailing newline")
	}
}
