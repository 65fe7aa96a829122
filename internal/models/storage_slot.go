package models

import (
	"time"

	"gorm.io/datatypes"
)

// StorageSlot is a named cell holding one JSON document. The application
// keeps its whole Ops aggregate in a single slot.
type StorageSlot struct {
	Key       string         `gorm:"column:slot_key;primaryKey;size:128"`
	Value     datatypes.JSON `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name across drivers.
func (StorageSlot) TableName() string { return "storage_slots" }
