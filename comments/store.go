// Package comments keeps comment threads referenced by comment marks of the
// document and the user's interaction with them.
package comments

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/maruel/natural"
)

// Answer is a reply in a comment thread.
type Answer struct {
	ID       string `yaml:"id"`
	UserID   string `yaml:"user"`
	Username string `yaml:"username"`
	Date     int64  `yaml:"date"`
	Text     string `yaml:"text"`
}

// Comment is a thread anchored to document by comment marks carrying its ID.
// Comments are compared by identity.
type Comment struct {
	ID       string   `yaml:"id"`
	UserID   string   `yaml:"user"`
	Username string   `yaml:"username"`
	Date     int64    `yaml:"date"`
	Text     string   `yaml:"text"`
	Resolved bool     `yaml:"resolved,omitempty"`
	IsMajor  bool     `yaml:"major,omitempty"`
	Answers  []Answer `yaml:"answers,omitempty"`
}

// Draft is a comment being composed. It is not referenced by any mark yet,
// editor shows its range with a decoration instead.
type Draft struct {
	Comment *Comment
	// InDOM is set once the draft box has been placed on the page.
	InDOM bool
}

var ErrDuplicateID = errors.New("duplicate comment id")

// Store holds comments by ID and at most one draft.
type Store struct {
	comments map[string]*Comment
	draft    *Draft
}

func NewStore() *Store {
	return &Store{comments: make(map[string]*Comment)}
}

// Add puts comment into the store. ID must be unique and not empty.
func (s *Store) Add(c *Comment) error {
	if c == nil || c.ID == "" {
		return errors.New("comment without id")
	}
	if _, exists := s.comments[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
	}
	s.comments[c.ID] = c
	return nil
}

// FindComment returns comment by ID or nil when mark references comment
// store does not know about.
func (s *Store) FindComment(id string) *Comment {
	return s.comments[id]
}

func (s *Store) Len() int {
	return len(s.comments)
}

// IDs returns known comment IDs in natural order.
func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.comments))
	for id := range s.comments {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})
	return ids
}

// CommentDuringCreation returns current draft or nil.
func (s *Store) CommentDuringCreation() *Draft {
	return s.draft
}

// StartCreation makes comment the current draft, replacing previous one.
// Comment without ID gets a time ordered one.
func (s *Store) StartCreation(c *Comment) (*Draft, error) {
	if c.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate comment id: %w", err)
		}
		c.ID = id.String()
	}
	s.draft = &Draft{Comment: c}
	return s.draft, nil
}

func (s *Store) CancelCreation() {
	s.draft = nil
}
