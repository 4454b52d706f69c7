package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore is a key-value substrate where every write replaces the whole value.
type DocumentStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// documentModel maps to the documents table.
type documentModel struct {
	Key       string `gorm:"column:doc_key;primaryKey;size:255"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (documentModel) TableName() string {
	return "documents"
}

// documentRepo stores documents in a SQL table.
type documentRepo struct {
	db *gorm.DB
}

// NewDocumentRepo returns a DocumentStore backed by db.
func NewDocumentRepo(db *gorm.DB) DocumentStore {
	return &documentRepo{db: db}
}

func (r *documentRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var model documentModel
	err := r.db.WithContext(ctx).Where("doc_key = ?", key).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get document %s: %w", key, err)
	}
	return model.Value, true, nil
}

func (r *documentRepo) Put(ctx context.Context, key, value string) error {
	record := documentModel{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to put document %s: %w", key, err)
	}
	return nil
}

func (r *documentRepo) Delete(ctx context.Context, key string) error {
	if err := r.db.WithContext(ctx).Where("doc_key = ?", key).Delete(&documentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}

// memoryDocuments keeps documents in process memory.
type memoryDocuments struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryDocuments returns an empty in-memory DocumentStore.
func NewMemoryDocuments() DocumentStore {
	return &memoryDocuments{docs: make(map[string]string)}
}

func (m *memoryDocuments) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.docs[key]
	return value, ok, nil
}

func (m *memoryDocuments) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = value
	return nil
}

func (m *memoryDocuments) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}
