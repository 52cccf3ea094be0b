package models

import "time"

type Note struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Owner     string    `gorm:"type:varchar(20);not null;index" json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
