// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/danielhkuo/mock-me/models"
)

// Version is the on-disk schema version
const Version = 1

// Storage keys
const (
	KeyQuestions = "interviewQuestions"
	KeyAnswers   = "interviewAnswers"
	KeyRole      = "authRole"
	KeyEmail     = "authEmail"
	KeyDemoID    = "demoId"
)

var (
	ErrNotFound = errors.New("key not found")
	ErrCorrupt  = errors.New("corrupt stored state")
)

type document struct {
	Version int                        `json:"version"`
	Keys    map[string]json.RawMessage `json:"keys"`
}

// Store is a small key/value document persisted as one JSON file.
// Each write replaces the value of its key wholesale and rewrites the file.
type Store struct {
	mu   sync.Mutex
	path string
	keys map[string]json.RawMessage
}

// NewMemory returns a store that is never written to disk
func NewMemory() *Store {
	return &Store{keys: make(map[string]json.RawMessage)}
}

// Open loads the store at path. A missing file yields an empty store.
// A file that does not parse, or carries another version, returns ErrCorrupt
// together with an empty store so the caller can start over.
func Open(path string) (*Store, error) {
	s := &Store{path: path, keys: make(map[string]json.RawMessage)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return s, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != Version {
		return s, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}
	if doc.Keys != nil {
		s.keys = doc.Keys
	}
	return s, nil
}

// Path is the backing file, empty for memory stores
func (s *Store) Path() string {
	return s.path
}

// Get decodes the value stored under key into v
func (s *Store) Get(key string, v any) error {
	s.mu.Lock()
	raw, ok := s.keys[key]
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: key %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Set replaces the value under key and persists the store
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key] = raw
	return s.flush()
}

// Delete removes key; deleting a missing key is not an error
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; !ok {
		return nil
	}
	delete(s.keys, key)
	return s.flush()
}

// Reset drops every key
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]json.RawMessage)
	return s.flush()
}

// flush writes the document atomically. Caller holds mu.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(document{Version: Version, Keys: s.keys}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".mock-me-state-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Typed accessors for the interview flow

func (s *Store) Questions() ([]models.Question, error) {
	var qs []models.Question
	if err := s.Get(KeyQuestions, &qs); err != nil {
		return nil, err
	}
	return qs, nil
}

func (s *Store) SetQuestions(qs []models.Question) error {
	return s.Set(KeyQuestions, qs)
}

func (s *Store) Answers() (models.AnswersMap, error) {
	var answers models.AnswersMap
	if err := s.Get(KeyAnswers, &answers); err != nil {
		return nil, err
	}
	if answers == nil {
		return nil, fmt.Errorf("%w: key %s is null", ErrCorrupt, KeyAnswers)
	}
	return answers, nil
}

func (s *Store) SetAnswers(answers models.AnswersMap) error {
	return s.Set(KeyAnswers, answers)
}

// SetAuth records the signed-in role and email
func (s *Store) SetAuth(role, email string) error {
	if err := s.Set(KeyRole, role); err != nil {
		return err
	}
	return s.Set(KeyEmail, email)
}

// Auth returns the stored role and email, empty when absent
func (s *Store) Auth() (role, email string) {
	_ = s.Get(KeyRole, &role)
	_ = s.Get(KeyEmail, &email)
	return role, email
}

func (s *Store) SetDemoID(id string) error {
	return s.Set(KeyDemoID, id)
}

// DemoID returns the selected demo, empty when none is stored
func (s *Store) DemoID() string {
	var id string
	if err := s.Get(KeyDemoID, &id); err != nil {
		return ""
	}
	return id
}
