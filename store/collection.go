// Package store provides the in-memory key-indexed collections backing the
// REST and GraphQL interfaces. Each entity kind lives in its own Collection
// exposing the uniform find/create/change/delete shape; the store guarantees
// its own internal consistency and nothing beyond that.
package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/memberhub/errors"
)

// Record is implemented by every entity kind held in a Collection
type Record[T any] interface {
	GetID() string
	WithID(id string) T
	Clone() T
}

// Filter selects records by a single field. Exactly one of Equals,
// EqualsAnyOf or InArray should be set:
//   - Equals: string field == Equals
//   - EqualsAnyOf: string field is a member of the set
//   - InArray: []string field contains InArray
type Filter struct {
	Key         string
	Equals      string
	EqualsAnyOf []string
	InArray     string
}

// matches reports whether the field value satisfies the filter
func (f Filter) matches(value any) bool {
	switch v := value.(type) {
	case string:
		if f.EqualsAnyOf != nil {
			return slices.Contains(f.EqualsAnyOf, v)
		}
		return v == f.Equals
	case []string:
		if f.InArray != "" {
			return slices.Contains(v, f.InArray)
		}
	}
	return false
}

// FieldFunc resolves a filterable field of T by key
type FieldFunc[T any] func(item T, key string) (any, bool)

// Collection is an ordered in-memory map of records with uniform
// find/create/change/delete operations. All methods are safe for
// concurrent use and honor context cancellation.
type Collection[T Record[T]] struct {
	name  string
	field FieldFunc[T]

	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewCollection creates an empty collection
func NewCollection[T Record[T]](name string, field FieldFunc[T]) *Collection[T] {
	return &Collection[T]{
		name:  name,
		field: field,
		items: make(map[string]T),
	}
}

// FindAll returns every record in insertion order
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapTransient(err, c.name, "FindAll", "context check")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.items[id].Clone())
	}
	return result, nil
}

// FindOne returns the first record matching the filter in insertion order.
// A missing record is not an error: found is false and the zero value is
// returned.
func (c *Collection[T]) FindOne(ctx context.Context, f Filter) (item T, found bool, err error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return item, false, errors.WrapTransient(ctxErr, c.name, "FindOne", "context check")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		candidate := c.items[id]
		if value, ok := c.field(candidate, f.Key); ok && f.matches(value) {
			return candidate.Clone(), true, nil
		}
	}
	return item, false, nil
}

// FindByID returns the record with the given id
func (c *Collection[T]) FindByID(ctx context.Context, id string) (item T, found bool, err error) {
	return c.FindOne(ctx, Filter{Key: "id", Equals: id})
}

// FindMany returns all records matching the filter in insertion order.
// The result is never nil; no matches yield an empty slice.
func (c *Collection[T]) FindMany(ctx context.Context, f Filter) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapTransient(err, c.name, "FindMany", "context check")
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]T, 0)
	for _, id := range c.order {
		candidate := c.items[id]
		if value, ok := c.field(candidate, f.Key); ok && f.matches(value) {
			result = append(result, candidate.Clone())
		}
	}
	return result, nil
}

// Create stores a new record, assigning a fresh id when none is set,
// and returns the stored record
func (c *Collection[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, errors.WrapTransient(err, c.name, "Create", "context check")
	}

	if item.GetID() == "" {
		item = item.WithID(uuid.NewString())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := item.GetID()
	if _, exists := c.items[id]; exists {
		return zero, errors.WrapInvalid(errors.ErrConflict, c.name, "Create", "duplicate id")
	}

	c.items[id] = item.Clone()
	c.order = append(c.order, id)
	return item.Clone(), nil
}

// Change applies a partial update to the record with the given id and
// returns the updated record. A missing id is an error, unlike FindOne.
func (c *Collection[T]) Change(ctx context.Context, id string, apply func(T) T) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, errors.WrapTransient(err, c.name, "Change", "context check")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	current, exists := c.items[id]
	if !exists {
		return zero, errors.WrapInvalid(errors.ErrNotFound, c.name, "Change", "id lookup")
	}

	// The id is immutable through patches
	updated := apply(current.Clone()).WithID(id)
	c.items[id] = updated.Clone()
	return updated, nil
}

// Delete removes the record with the given id and returns it.
// A missing id is an error.
func (c *Collection[T]) Delete(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, errors.WrapTransient(err, c.name, "Delete", "context check")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[id]
	if !exists {
		return zero, errors.WrapInvalid(errors.ErrNotFound, c.name, "Delete", "id lookup")
	}

	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == id })
	return item.Clone(), nil
}

// Len returns the number of stored records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
