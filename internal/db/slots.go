package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/vanops/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Slots reads and writes named storage slots.
type Slots struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSlots returns a Slots backed by db. The table must already exist; see
// AutoMigrate.
func NewSlots(db *gorm.DB) *Slots {
	return &Slots{db: db, now: time.Now}
}

// Get returns the raw content of key. A missing slot is reported as
// ok == false with a nil error.
func (s *Slots) Get(key string) (value []byte, ok bool, err error) {
	var slot models.StorageSlot
	err = s.db.Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("db: get slot %q: %w", key, err)
	}
	return []byte(slot.Value), true, nil
}

// Put replaces the content of key, creating the slot if needed.
func (s *Slots) Put(key string, value []byte) error {
	slot := models.StorageSlot{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: s.now().UTC(),
	}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot)
	if result.Error != nil {
		return fmt.Errorf("db: put slot %q: %w", key, result.Error)
	}
	return nil
}

// Delete removes key. Deleting a missing slot is not an error.
func (s *Slots) Delete(key string) error {
	if err := s.db.Where("slot_key = ?", key).Delete(&models.StorageSlot{}).Error; err != nil {
		return fmt.Errorf("db: delete slot %q: %w", key, err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Slots) UpdatedAt(key string) (time.Time, bool, error) {
	var slot models.StorageSlot
	err := s.db.Select("updated_at").Where("slot_key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("db: stat slot %q: %w", key, err)
	}
	return slot.UpdatedAt, true, nil
}
