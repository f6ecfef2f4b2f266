// Package css reads back the small stylesheets margin box layout produces:
// class, element, attribute, :nth-of-type() and descendant selectors with
// plain declarations.
package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Rules with selectors it does not
// understand are dropped with a warning.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Rules:    make([]Rule, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.BeginRulesetGrammar:
			selectors := p.parseSelectors(data, parser.Values())
			props := p.parseDeclarations(parser)

			for _, selStr := range selectors {
				sel, ok := p.parseSelector(selStr, sheet)
				if !ok {
					continue
				}
				// Clone properties for each rule
				propsCopy := make(map[string]Value, len(props))
				maps.Copy(propsCopy, props)
				sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Properties: propsCopy})
			}
		}
	}
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for _, s := range splitTopLevel(sb.String(), func(r rune) bool { return r == ',' }) {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			values := parser.Values()
			if len(values) > 0 {
				props[strings.ToLower(string(data))] = p.parsePropertyValue(values)
			}
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	var val Value
	tokens, val.Important = stripImportant(tokens)

	var (
		rawParts []string
		meaning  []css.Token
	)
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
			meaning = append(meaning, t)
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	val.Raw = strings.TrimSpace(strings.Join(rawParts, ""))

	if len(meaning) != 1 {
		// Multi-value properties - store as keyword with raw value
		val.Keyword = val.Raw
		return val
	}

	t := meaning[0]
	switch t.TokenType {
	case css.DimensionToken:
		val.Value, val.Unit = parseDimension(string(t.Data))
	case css.PercentageToken:
		val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
		val.Unit = "%"
	case css.NumberToken:
		val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
	case css.IdentToken:
		val.Keyword = strings.ToLower(string(t.Data))
	case css.StringToken:
		val.Keyword = unquote(string(t.Data))
	default:
		// colours, functions
		val.Keyword = val.Raw
	}
	return val
}

// stripImportant removes trailing "!important" from declaration tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end == 0 {
		return tokens, false
	}
	last := tokens[end-1]
	if strings.EqualFold(string(last.Data), "!important") {
		return tokens[:end-1], true
	}
	if last.TokenType != css.IdentToken || !strings.EqualFold(string(last.Data), "important") {
		return tokens, false
	}
	i := end - 2
	for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
		i--
	}
	if i >= 0 && tokens[i].TokenType == css.DelimToken && string(tokens[i].Data) == "!" {
		return tokens[:i], true
	}
	return tokens, false
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	return num, strings.ToLower(s[numEnd:])
}

// parseSelector parses a single selector string into a Selector.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) (Selector, bool) {
	selStr = strings.TrimSpace(selStr)

	if strings.ContainsAny(stripBracketed(selStr), "+~>") {
		sheet.Warnings = append(sheet.Warnings, "unsupported combinator selector: "+selStr)
		p.log.Debug("Skipping combinator selector", zap.String("selector", selStr))
		return Selector{Raw: selStr}, false
	}

	parts := splitTopLevel(selStr, unicode.IsSpace)
	var sel *Selector
	for _, part := range parts {
		if part == "" {
			continue
		}
		compound, ok := parseCompound(part)
		if !ok {
			sheet.Warnings = append(sheet.Warnings, "unsupported selector: "+selStr)
			p.log.Debug("Skipping unsupported selector", zap.String("selector", selStr), zap.String("part", part))
			return Selector{Raw: selStr}, false
		}
		compound.Ancestor = sel
		sel = &compound
	}
	if sel == nil {
		return Selector{Raw: selStr}, false
	}
	sel.Raw = selStr
	return *sel, true
}

// parseCompound parses selector without combinators, e.g. div.a.b[data-id="x"]:nth-of-type(2).
func parseCompound(s string) (Selector, bool) {
	sel := Selector{Raw: s}
	i := identEnd(s, 0)
	if i == 0 && strings.HasPrefix(s, "*") {
		i = 1
	} else {
		sel.Element = s[:i]
	}

	for i < len(s) {
		switch s[i] {
		case '.':
			end := identEnd(s, i+1)
			if end == i+1 {
				return sel, false
			}
			sel.Classes = append(sel.Classes, s[i+1:end])
			i = end
		case '#':
			end := identEnd(s, i+1)
			if end == i+1 {
				return sel, false
			}
			sel.Attrs = append(sel.Attrs, Attr{Name: "id", Value: s[i+1 : end], Exact: true})
			i = end
		case '[':
			end := closing(s, i)
			if end < 0 {
				return sel, false
			}
			name, value, exact := strings.Cut(s[i+1:end], "=")
			name = strings.TrimSpace(name)
			if name == "" || strings.ContainsAny(name, "~|^$*") {
				return sel, false
			}
			sel.Attrs = append(sel.Attrs, Attr{Name: name, Value: unquote(value), Exact: exact})
			i = end + 1
		case ':':
			arg, ok := strings.CutPrefix(strings.ToLower(s[i:]), ":nth-of-type(")
			if !ok {
				return sel, false
			}
			num, rest, ok := strings.Cut(arg, ")")
			if !ok {
				return sel, false
			}
			n, err := strconv.Atoi(strings.TrimSpace(num))
			if err != nil || n < 1 {
				return sel, false
			}
			sel.NthOfType = n
			i = len(s) - len(rest)
		default:
			return sel, false
		}
	}
	return sel, true
}

func identEnd(s string, start int) int {
	i := start
	for i < len(s) {
		c := s[i]
		if c == '-' || c == '_' || c >= 0x80 || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			i++
			continue
		}
		break
	}
	return i
}

// closing returns index of ']' matching '[' at start, respecting quotes.
func closing(s string, start int) int {
	var quote byte
	for i := start + 1; i < len(s); i++ {
		switch c := s[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ']':
			return i
		}
	}
	return -1
}

// splitTopLevel splits s at runes accepted by sep which are not inside
// brackets, parentheses or quotes.
func splitTopLevel(s string, sep func(rune) bool) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			depth--
		case depth == 0 && sep(r):
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}

// stripBracketed removes attribute selector contents, so their values are
// not mistaken for combinators.
func stripBracketed(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '[' {
			sb.WriteByte(s[i])
			continue
		}
		end := closing(s, i)
		if end < 0 {
			break
		}
		i = end
	}
	return sb.String()
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
