// Package store owns the live resume document and its persisted snapshot.
//
// All mutation helpers in this package are pure: they take a document and
// return a new one. Store is the single place where the current document is
// advanced and written to the snapshot slot.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultKey is the snapshot slot name
const DefaultKey = "resumeData"

// Store sequences reads and writes of the current document
type Store struct {
	mu      sync.Mutex
	snap    Snapshotter
	key     string
	current types.ResumeDocument
}

// New creates a store over snap. The current document is the default
// template until Load is called.
func New(snap Snapshotter, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{
		snap:    snap,
		key:     key,
		current: types.DefaultDocument(),
	}
}

// Load reads the snapshot and makes it current. A missing, unreadable or
// corrupt snapshot is logged and replaced by the default template; Load
// never fails.
func (s *Store) Load(ctx context.Context) types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			log.Printf("[store] no snapshot %q, starting from default template", s.key)
		} else {
			log.Printf("[store] discarding snapshot %q, falling back to default template: %v", s.key, err)
		}
		doc = types.DefaultDocument()
	}

	s.current = doc
	return doc.Clone()
}

func (s *Store) read(ctx context.Context) (types.ResumeDocument, error) {
	data, err := s.snap.ReadSnapshot(ctx, s.key)
	if err != nil {
		return types.ResumeDocument{}, err
	}
	return Decode(data)
}

// Decode parses and validates a serialized document
func Decode(data []byte) (types.ResumeDocument, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return types.ResumeDocument{}, err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.ResumeDocument{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return types.ResumeDocument{}, err
	}
	return doc, nil
}

// Encode serializes a document for the snapshot slot
func Encode(doc types.ResumeDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return data, nil
}

// Save serializes and persists doc without changing the current document
func (s *Store) Save(ctx context.Context, doc types.ResumeDocument) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := s.snap.WriteSnapshot(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Current returns a copy of the current document
func (s *Store) Current() types.ResumeDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Commit persists doc and makes it current. When the write fails the
// current document is unchanged.
func (s *Store) Commit(ctx context.Context, doc types.ResumeDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, doc)
}

func (s *Store) commitLocked(ctx context.Context, doc types.ResumeDocument) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("refusing to commit invalid document: %w", err)
	}
	if err := s.Save(ctx, doc); err != nil {
		log.Printf("[store] %v", err)
		return err
	}
	s.current = doc.Clone()
	return nil
}

// Update applies fn to the current document and commits the result. fn runs
// under the store lock, so concurrent updates are serialized. When fn
// returns an error nothing is committed.
func (s *Store) Update(ctx context.Context, fn func(types.ResumeDocument) (types.ResumeDocument, error)) (types.ResumeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.current.Clone())
	if err != nil {
		return s.current.Clone(), err
	}
	if err := s.commitLocked(ctx, next); err != nil {
		return s.current.Clone(), err
	}
	return next.Clone(), nil
}

// Reset replaces the current document with the default template
func (s *Store) Reset(ctx context.Context) (types.ResumeDocument, error) {
	doc := types.DefaultDocument()
	if err := s.Commit(ctx, doc); err != nil {
		return doc, err
	}
	return doc, nil
}
