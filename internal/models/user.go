package models

import (
	"time"
)

type User struct {
	ID        uint   `gorm:"primarykey"`
	AccountID string `gorm:"uniqueIndex;not null"` // public account identifier, e.g. "ACC00421337"
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"`
	Status    string `gorm:"default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
