package model

import "time"

type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Username     string `gorm:"type:varchar(30);not null;uniqueIndex:idx_user_username"`
	PasswordHash string `gorm:"not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100)"`
	LastName     string `gorm:"type:varchar(100)"`
	Email        string `gorm:"type:varchar(255)"`
	// SessionID binds outstanding tokens to this user; rotating it on an
	// account edit invalidates every previously issued token.
	SessionID string `gorm:"type:uuid;not null" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
