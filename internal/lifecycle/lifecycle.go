// Package lifecycle coordinates a database record with the stored file it
// references. One Manager is instantiated per resource kind instead of
// repeating the same create/update/delete shape in every handler.
//
// The row is the source of truth: a delete removes the row first and only
// then unlinks the file, so a reader can never resolve a reference to a
// file that is already gone. The reverse mismatch (row gone, file still on
// disk) is tolerated as an orphan.
package lifecycle

import (
	"context"

	"gorm.io/gorm"

	"github.com/eduforge/lms/internal/logging"
	"github.com/eduforge/lms/internal/storage"
)

type Manager[T any] struct {
	DB    *gorm.DB
	Files *storage.Store // nil when the resource carries no file

	// FileRef extracts the stored-file reference from a record. nil when
	// the resource carries no file.
	FileRef func(*T) string

	// ListOrder is an optional ORDER BY clause for List.
	ListOrder string
}

// Create inserts the record. The caller has already written any file the
// record references; if the insert fails, that file is unlinked best-effort
// so it does not linger as an orphan.
func (m *Manager[T]) Create(ctx context.Context, rec *T) error {
	if err := m.DB.WithContext(ctx).Create(rec).Error; err != nil {
		m.cleanupFile(ctx, m.ref(rec))
		return err
	}
	return nil
}

func (m *Manager[T]) Get(ctx context.Context, id uint) (*T, error) {
	var rec T
	if err := m.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (m *Manager[T]) List(ctx context.Context) ([]T, error) {
	q := m.DB.WithContext(ctx)
	if m.ListOrder != "" {
		q = q.Order(m.ListOrder)
	}
	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies a metadata mutation and saves. Stored files are never
// replaced or deleted here, even if the mutation swaps the reference.
func (m *Manager[T]) Update(ctx context.Context, id uint, apply func(*T)) (*T, error) {
	var rec T
	if err := m.DB.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, err
	}
	apply(&rec)
	if err := m.DB.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the row, then unlinks the referenced file best-effort.
// File-cleanup failure is logged and swallowed; the record is gone either
// way. Returns gorm.ErrRecordNotFound when no row matched.
func (m *Manager[T]) Delete(ctx context.Context, id uint) error {
	ref := ""
	if m.FileRef != nil {
		var rec T
		if err := m.DB.WithContext(ctx).First(&rec, id).Error; err == nil {
			ref = m.ref(&rec)
		}
	}

	res := m.DB.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	m.cleanupFile(ctx, ref)
	return nil
}

func (m *Manager[T]) ref(rec *T) string {
	if m.FileRef == nil {
		return ""
	}
	return m.FileRef(rec)
}

func (m *Manager[T]) cleanupFile(ctx context.Context, ref string) {
	if ref == "" || m.Files == nil || !m.Files.Owns(ref) {
		return
	}
	if err := m.Files.Delete(ref); err != nil {
		logging.FromContext(ctx).Warn("file cleanup failed", "ref", ref, "error", err)
	}
}
