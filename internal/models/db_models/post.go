package db_models

import "github.com/google/uuid"

type Post struct {
	BaseModel
	ImageAddress string    `gorm:"size:255" json:"image_address"`
	Hyperlink    string    `gorm:"size:255" json:"hyperlink"`
	Title        string    `gorm:"size:100;not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	AdminID      uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
}
