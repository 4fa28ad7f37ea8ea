package model

import "time"

// PiggyBank is a savings pool owned by a group. Names are unique within the
// owning group, not globally.
type PiggyBank struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	GroupID     string `gorm:"type:uuid;not null;uniqueIndex:idx_bank_group_name,priority:1"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_bank_group_name,priority:2"`
	Description string `gorm:"type:varchar(500)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Group Group `gorm:"foreignKey:GroupID"`
}
