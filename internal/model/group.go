package model

import "time"

type Group struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_group_name"`
	Description string `gorm:"type:varchar(500)"`
	OwnerID     string `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   User         `gorm:"foreignKey:OwnerID"`
	Members []Membership `gorm:"foreignKey:GroupID"`
}
