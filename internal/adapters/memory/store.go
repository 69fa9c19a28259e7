// Package memory holds the reference data of one running instance. Records
// live only for the lifetime of the process.
package memory

import (
	"fmt"
	"sync"

	apperrors "github.com/zatekoja/doseordering/pkg/errors"
)

// orderedStore keeps records in insertion order and hands out copies so that
// callers never share state with the store.
type orderedStore[T any] struct {
	mu    sync.RWMutex
	kind  string
	order []string
	items map[string]*T
	clone func(*T) *T

	// key, when set, must be unique across records
	key     func(*T) string
	keyName string
}

func newOrderedStore[T any](kind string, clone func(*T) *T) *orderedStore[T] {
	return &orderedStore[T]{
		kind:  kind,
		items: make(map[string]*T),
		clone: clone,
	}
}

// uniqueBy makes create and update reject a record whose key matches another
// record's key. Empty keys are not checked.
func (s *orderedStore[T]) uniqueBy(name string, key func(*T) string) *orderedStore[T] {
	s.key = key
	s.keyName = name
	return s
}

// checkKeyLocked must be called with the write lock held
func (s *orderedStore[T]) checkKeyLocked(id string, item *T) error {
	if s.key == nil {
		return nil
	}
	k := s.key(item)
	if k == "" {
		return nil
	}
	for otherID, other := range s.items {
		if otherID != id && s.key(other) == k {
			return apperrors.NewConflictError(fmt.Sprintf("%s with %s %q already exists", s.kind, s.keyName, k))
		}
	}
	return nil
}

func (s *orderedStore[T]) create(id string, item *T) error {
	if id == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s id is required", s.kind))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("%s with id %s already exists", s.kind, id))
	}
	if err := s.checkKeyLocked(id, item); err != nil {
		return err
	}
	s.items[id] = s.clone(item)
	s.order = append(s.order, id)
	return nil
}

func (s *orderedStore[T]) get(id string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", s.kind, id))
	}
	return s.clone(item), nil
}

func (s *orderedStore[T]) update(id string, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", s.kind, id))
	}
	if err := s.checkKeyLocked(id, item); err != nil {
		return err
	}
	s.items[id] = s.clone(item)
	return nil
}

func (s *orderedStore[T]) delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", s.kind, id))
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *orderedStore[T]) list(match func(*T) bool) []*T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*T, 0, len(s.order))
	for _, id := range s.order {
		item := s.items[id]
		if match != nil && !match(item) {
			continue
		}
		result = append(result, s.clone(item))
	}
	return result
}
