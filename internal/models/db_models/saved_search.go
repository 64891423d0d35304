package db_models

import "github.com/google/uuid"

// SavedSearch is an ingestion search an admin asked to re-run on schedule.
type SavedSearch struct {
	BaseModel
	AdminID  uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Source   JobSource `gorm:"size:20;not null" json:"source"`
	Keywords string    `gorm:"size:100" json:"keywords"`
	Location string    `gorm:"size:100" json:"location,omitempty"`
	FullTime bool      `json:"full_time,omitempty"`
	Category string    `gorm:"size:100" json:"category,omitempty"`
	Level    string    `gorm:"size:50" json:"level,omitempty"`
	Page     int       `json:"page,omitempty"`
	Active   bool      `gorm:"not null;default:true" json:"active"`

	LastRunAt    *int64 `json:"last_run_at,omitempty"`
	LastInserted int    `json:"last_inserted"`
}
