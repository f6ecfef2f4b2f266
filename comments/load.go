package comments

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var ErrUnknownFormat = errors.New("unknown comment store format")

type storeFile struct {
	Comments []*Comment `yaml:"comments"`
}

// Load reads comment store from file. SQLite databases are recognized by
// content, anything else is expected to be YAML.
func Load(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read comments: %w", err)
	}
	var store *Store
	if filetype.Is(data, "sqlite") {
		log.Debug("Loading comments from SQLite database", zap.String("path", path))
		store, err = ReadSQLite(data)
	} else {
		log.Debug("Loading comments from YAML", zap.String("path", path))
		store, err = ReadYAML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load comments from '%s': %w", path, err)
	}
	log.Debug("Comments loaded", zap.Int("count", store.Len()), zap.Strings("ids", store.IDs()))
	return store, nil
}

// ReadYAML decodes comment store, unknown fields are rejected.
func ReadYAML(r io.Reader) (*Store, error) {
	var f storeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return NewStore(), nil
		}
		return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	s := NewStore()
	for _, c := range f.Comments {
		if err := s.Add(c); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadSQLite loads comment store from an in memory copy of SQLite database
// with "comments" and "answers" tables.
func ReadSQLite(data []byte) (*Store, error) {
	conn, err := sqlite.OpenConn(":memory:", sqlite.OpenReadWrite, sqlite.OpenMemory)
	if err != nil {
		return nil, fmt.Errorf("open in-memory db: %w", err)
	}
	defer conn.Close()

	if err := conn.Deserialize("main", data); err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}

	s := NewStore()
	err = sqlitex.Execute(conn, `SELECT id, user_id, username, date, text, resolved, is_major FROM comments ORDER BY rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			return s.Add(&Comment{
				ID:       stmt.ColumnText(0),
				UserID:   stmt.ColumnText(1),
				Username: stmt.ColumnText(2),
				Date:     stmt.ColumnInt64(3),
				Text:     stmt.ColumnText(4),
				Resolved: stmt.ColumnBool(5),
				IsMajor:  stmt.ColumnBool(6),
			})
		}})
	if err != nil {
		return nil, fmt.Errorf("read comments: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT id, comment_id, user_id, username, date, text FROM answers ORDER BY date, rowid`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			c := s.FindComment(stmt.ColumnText(1))
			if c == nil {
				// answer to a comment which is gone
				return nil
			}
			c.Answers = append(c.Answers, Answer{
				ID:       stmt.ColumnText(0),
				UserID:   stmt.ColumnText(2),
				Username: stmt.ColumnText(3),
				Date:     stmt.ColumnInt64(4),
				Text:     stmt.ColumnText(5),
			})
			return nil
		}})
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return s, nil
}
