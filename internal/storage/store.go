// Package storage provides the durable key-value slot behind the user
// state persistence boundary. Each slot holds one full serialized
// snapshot under a fixed namespace key; every mutation writes the
// whole snapshot back, which is simple and safe at this data scale.
package storage

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lexshelf/lexshelf/internal/entities"
)

type Store struct {
	db *gorm.DB
}

// NewStore opens (or creates) the SQLite database at the given path
// and migrates the state blob table.
func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.AutoMigrate(&entities.StateBlob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate state database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Slot returns a handle bound to one namespace key. It satisfies the
// user state store's Persister contract.
func (s *Store) Slot(key string) *Slot {
	return &Slot{store: s, key: key}
}

type Slot struct {
	store *Store
	key   string
}

// Save writes the blob for the slot's key, creating or replacing the
// row as needed.
func (s *Slot) Save(data []byte) error {
	var blob entities.StateBlob
	result := s.store.db.Where("key = ?", s.key).First(&blob)

	if result.Error == gorm.ErrRecordNotFound {
		blob = entities.StateBlob{
			Key:   s.key,
			Value: data,
		}
		return s.store.db.Create(&blob).Error
	} else if result.Error != nil {
		return result.Error
	}

	blob.Value = data
	return s.store.db.Save(&blob).Error
}

// Load reads the blob for the slot's key. A key that was never written
// yields (nil, nil).
func (s *Slot) Load() ([]byte, error) {
	var blob entities.StateBlob
	err := s.store.db.Where("key = ?", s.key).First(&blob).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return blob.Value, nil
}
