package db

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/hubs-storefront/pkg/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is a row of the storefront_kv table.
type KVEntry struct {
	Key       string     `gorm:"column:entry_key;primaryKey"`
	Value     string     `gorm:"column:entry_value;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string { return "storefront_kv" }

var _ kv.Store = (*KVStore)(nil)

// KVStore persists session state in SQL for deployments without Redis
// persistence.
type KVStore struct {
	client *Client
	now    func() time.Time
}

func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client, now: func() time.Time { return time.Now().UTC() }}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	err := s.client.DB().WithContext(ctx).
		Where("entry_key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	now := s.now()
	entry := KVEntry{Key: key, Value: value, UpdatedAt: now}
	if ttl > 0 {
		exp := now.Add(ttl)
		entry.ExpiresAt = &exp
	}
	return s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"entry_value", "expires_at", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *KVStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.DB().WithContext(ctx).
		Where("entry_key IN ?", keys).
		Delete(&KVEntry{}).Error
}

// PurgeExpired removes expired rows and reports how many were deleted.
func (s *KVStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.client.DB().WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&KVEntry{})
	return res.RowsAffected, res.Error
}
