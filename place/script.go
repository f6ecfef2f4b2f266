package place

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"marginbox/editor"
)

// DraftStep starts composing a new comment over a document range.
type DraftStep struct {
	From int    `yaml:"from"`
	To   int    `yaml:"to"`
	Text string `yaml:"text,omitempty"`
}

// Step is a single user interaction, every step is followed by a layout pass.
// Only one action per step is expected, when several are present they are
// applied in field order.
type Step struct {
	Select      *int       `yaml:"select,omitempty"`
	Activate    string     `yaml:"activate,omitempty"`
	Answer      string     `yaml:"answer,omitempty"`
	Draft       *DraftStep `yaml:"draft,omitempty"`
	CancelDraft bool       `yaml:"cancel_draft,omitempty"`
	Editing     *bool      `yaml:"editing,omitempty"`
	Scroll      *int       `yaml:"scroll,omitempty"`
}

// Script describes an editing session to replay against a document.
type Script struct {
	User    editor.User    `yaml:"user"`
	DocInfo editor.DocInfo `yaml:"doc_info"`
	Steps   []Step         `yaml:"steps"`
}

// ReadScript decodes session script, unknown fields are rejected.
func ReadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("unable to decode session script: %w", err)
	}
	return &s, nil
}

func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open session script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// ParseRange parses "FROM:TO" or "FROM" (empty range).
func ParseRange(s string) (editor.Range, error) {
	from, to, found := strings.Cut(s, ":")
	var (
		r   editor.Range
		err error
	)
	if r.From, err = strconv.Atoi(strings.TrimSpace(from)); err != nil {
		return r, fmt.Errorf("bad range start %q: %w", s, err)
	}
	r.To = r.From
	if found {
		if r.To, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
			return r, fmt.Errorf("bad range end %q: %w", s, err)
		}
	}
	if r.From < 0 || r.To < r.From {
		return r, fmt.Errorf("bad range %q", s)
	}
	return r, nil
}
