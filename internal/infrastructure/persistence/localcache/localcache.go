package localcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// snapshotRow is one cached collection snapshot
type snapshotRow struct {
	UserID     string    `gorm:"primaryKey;column:user_id"`
	Collection string    `gorm:"primaryKey;column:collection"`
	Payload    []byte    `gorm:"column:payload"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// Cache persists the latest collection snapshots to a local sqlite file so
// the books stay readable when the document store is unreachable. Reads
// served from here are stale by definition; callers surface that to the user.
type Cache struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open creates or opens the cache file and migrates its schema
func Open(path string, log *zap.Logger) (*Cache, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate cache: %w", err)
	}
	return &Cache{db: db, log: log.Named("localcache")}, nil
}

// Save upserts the latest snapshot of a collection
func (c *Cache) Save(ctx context.Context, userID, collection string, docs []ledger.Document) error {
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	row := snapshotRow{
		UserID:     userID,
		Collection: collection,
		Payload:    payload,
		UpdatedAt:  time.Now(),
	}
	err = c.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot of a collection and when it was written.
// Returns ErrOfflineNoCache when the collection was never cached.
func (c *Cache) Load(ctx context.Context, userID, collection string) ([]ledger.Document, time.Time, error) {
	var row snapshotRow
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND collection = ?", userID, collection).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, time.Time{}, shared.ErrOfflineNoCache
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}

	var docs []ledger.Document
	if err := json.Unmarshal(row.Payload, &docs); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return docs, row.UpdatedAt, nil
}

// Purge drops every cached snapshot for a user
func (c *Cache) Purge(ctx context.Context, userID string) error {
	return c.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&snapshotRow{}).Error
}
