// Package store provides the generic keyed-table layer the entity
// repositories are built on. Every table is a homogeneous collection of
// records addressed by a string primary key, persisted in the embedded
// SQLite database.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned by Add when the primary key is taken.
	ErrDuplicateKey = errors.New("duplicate primary key")
	// ErrNotFound is returned by Update when the record does not exist.
	ErrNotFound = errors.New("record not found")
)

// Table wraps one persisted table of T records. The zero value is not
// usable; construct with New.
type Table[T any] struct {
	db  *gorm.DB
	key func(*T) string
}

// New builds a table handle over db. key extracts a record's primary key;
// records with an empty key get one assigned by the caller before Add.
func New[T any](db *gorm.DB, key func(*T) string) *Table[T] {
	return &Table[T]{db: db, key: key}
}

// WithTx rebinds the table to a transaction handle so multi-table writes
// commit or roll back together.
func (t *Table[T]) WithTx(tx *gorm.DB) *Table[T] {
	return &Table[T]{db: tx, key: t.key}
}

// Add inserts rec, failing with ErrDuplicateKey when the key already exists.
func (t *Table[T]) Add(ctx context.Context, rec *T) error {
	id := t.key(rec)
	if id != "" {
		existing, err := t.Get(ctx, id)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s", ErrDuplicateKey, id)
		}
	}
	return t.db.WithContext(ctx).Create(rec).Error
}

// Get returns the record with the given key, or nil when absent. A missing
// key is not an error.
func (t *Table[T]) Get(ctx context.Context, id string) (*T, error) {
	var rec T
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update merges fields (keyed by column name) into the stored record and
// returns the result. Fails with ErrNotFound when the key is absent.
func (t *Table[T]) Update(ctx context.Context, id string, fields map[string]any) (*T, error) {
	existing, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(fields) > 0 {
		err = t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, id)
		}
		if err != nil {
			return nil, err
		}
	}
	return t.Get(ctx, id)
}

// JSONColumn encodes v for use as an Update value on a column whose struct
// field carries the gorm JSON serializer. Map-form updates hand values to the
// driver without running field serializers, so such values must arrive
// pre-encoded.
func JSONColumn(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// Delete removes the record with the given key. Deleting an absent key is a
// no-op, not an error.
func (t *Table[T]) Delete(ctx context.Context, id string) error {
	return t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

// ByField returns all records whose column matches value exactly, in
// insertion order (created_at, then id).
func (t *Table[T]) ByField(ctx context.Context, column string, value any) ([]T, error) {
	var recs []T
	err := t.db.WithContext(ctx).
		Where(map[string]any{column: value}).
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	return recs, err
}

// DeleteByField removes every record whose column matches value.
func (t *Table[T]) DeleteByField(ctx context.Context, column string, value any) error {
	return t.db.WithContext(ctx).Where(map[string]any{column: value}).Delete(new(T)).Error
}

// CountByField counts records whose column matches value.
func (t *Table[T]) CountByField(ctx context.Context, column string, value any) (int64, error) {
	var n int64
	err := t.db.WithContext(ctx).Model(new(T)).Where(map[string]any{column: value}).Count(&n).Error
	return n, err
}

// All returns every record in insertion order.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	var recs []T
	err := t.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&recs).Error
	return recs, err
}

// Filter returns every record for which pred is true, in insertion order.
// Used for compound conditions the indexed lookups cannot express; the scan
// is fine at local-survey scale.
func (t *Table[T]) Filter(ctx context.Context, pred func(*T) bool) ([]T, error) {
	all, err := t.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for i := range all {
		if pred(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}
