package model

import "time"

// Goal is a savings target attached to a piggy bank. TargetAmount is in the
// smallest currency unit and must be positive.
type Goal struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	BankID       string `gorm:"type:uuid;not null;uniqueIndex:idx_goal_bank_name,priority:1"`
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex:idx_goal_bank_name,priority:2"`
	Description  string `gorm:"type:varchar(500)"`
	TargetAmount int64  `gorm:"not null"`
	Deadline     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Bank PiggyBank `gorm:"foreignKey:BankID"`
}
