package models

import "time"

type User struct {
	Username     string    `gorm:"primarykey;type:varchar(20)" json:"username"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Email        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"type:varchar(30);not null" json:"first_name"`
	LastName     string    `gorm:"type:varchar(30);not null" json:"last_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Notes []Note `gorm:"foreignKey:Owner;references:Username;constraint:OnDelete:CASCADE" json:"-"`
}
