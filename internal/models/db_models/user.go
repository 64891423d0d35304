package db_models

import "time"

type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

type Entitlement string

const (
	EntitlementRegular   Entitlement = "Regular"
	EntitlementExclusive Entitlement = "Exclusive"
)

const DefaultImageFile = "default.jpg"

type User struct {
	BaseModel
	FirstName    string      `gorm:"size:20;not null" json:"first_name"`
	LastName     string      `gorm:"size:20;not null" json:"last_name"`
	Street       string      `gorm:"size:100" json:"street"`
	City         string      `gorm:"size:50" json:"city"`
	Zipcode      int         `json:"zipcode"`
	Phone        string      `gorm:"size:10" json:"phone"`
	Email        string      `gorm:"size:120;uniqueIndex;not null" json:"email"`
	DateOfBirth  time.Time   `gorm:"type:date" json:"date_of_birth"`
	Gender       string      `gorm:"size:10" json:"gender"`
	VisaStatus   string      `gorm:"size:10" json:"visa_status"`
	Username     string      `gorm:"size:20;uniqueIndex;not null" json:"username"`
	ImageFile    string      `gorm:"size:50;not null;default:'default.jpg'" json:"image_file"`
	PasswordHash string      `gorm:"size:60;not null" json:"-"`
	Role         Role        `gorm:"size:10;not null;default:'User'" json:"role"`
	Status       Entitlement `gorm:"size:10;not null;default:'Regular'" json:"status"`

	Jobs  []Job  `gorm:"foreignKey:AdminID" json:"-"`
	Posts []Post `gorm:"foreignKey:AdminID" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
