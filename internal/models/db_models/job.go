package db_models

import "github.com/google/uuid"

// JobSource names the adapter a listing was ingested through.
type JobSource string

const (
	SourceGitHub JobSource = "GitHub Jobs"
	SourceMuse   JobSource = "TheMuse Jobs"
)

func (s JobSource) Valid() bool {
	switch s {
	case SourceGitHub, SourceMuse:
		return true
	}
	return false
}

type Job struct {
	BaseModel
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CompanyName string    `json:"company_name"`
	DatePosted  string    `json:"date_posted"`
	Link        string    `gorm:"type:text" json:"link"`
	Source      JobSource `gorm:"size:20;not null;index" json:"source"`
	Approved    bool      `gorm:"not null;default:false" json:"approved"`
	AdminID     uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
}

// Favorite is the (user, job) bookmark join row. The composite key keeps one
// row per pair.
type Favorite struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	JobID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"job_id"`
	CreatedAt int64     `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Job  Job  `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}
