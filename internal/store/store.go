// Package store persists prep sessions as flat JSON files, one
// <id>.json per session.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibbslab/prepdeck/internal/session"
)

// ErrNotFound is returned when no session exists for an id.
var ErrNotFound = errors.New("session not found")

var validIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Store is a flat-file session store rooted at a single directory.
type Store struct {
	dir string
}

// New opens (creating if needed) a session store at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sessions dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// List returns all sessions sorted by modified date, newest first.
// Files that fail to decode are skipped.
func (s *Store) List() ([]*session.Session, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read sessions dir: %w", err)
	}

	sessions := []*session.Session{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}
		var sess session.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		sessions = append(sessions, &sess)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sortKey(sessions[i]) > sortKey(sessions[j])
	})
	return sessions, nil
}

func sortKey(sess *session.Session) string {
	if sess.Modified != "" {
		return sess.Modified
	}
	return sess.Created
}

// Get loads a single session by id.
func (s *Store) Get(id string) (*session.Session, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", id, err)
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Save writes a session to disk, assigning an id and created stamp if
// missing and refreshing the modified stamp.
func (s *Store) Save(sess *session.Session) error {
	if sess.ID == "" {
		sess.ID = newID()
	}
	now := time.Now().Format(time.RFC3339)
	if sess.Created == "" {
		sess.Created = now
	}
	sess.Modified = now

	path, err := s.path(sess.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write session %s: %w", sess.ID, err)
	}
	return nil
}

// Delete removes a session. Deleting an absent session is not an error.
func (s *Store) Delete(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Duplicate copies a session under a fresh id with " (Copy)" appended
// to the title.
func (s *Store) Duplicate(id string) (*session.Session, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	sess.ID = ""
	sess.Created = ""
	sess.Title += " (Copy)"
	if err := s.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) path(id string) (string, error) {
	if !validIDRe.MatchString(id) {
		return "", fmt.Errorf("invalid session id %q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
