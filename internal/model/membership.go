package model

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Membership links one user to one group. The composite primary key keeps
// at most one row per (group, user) pair.
type Membership struct {
	GroupID   string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;primaryKey"`
	Role      string `gorm:"type:varchar(20);default:'member'"`
	CreatedAt time.Time

	Group Group `gorm:"foreignKey:GroupID"`
	User  User  `gorm:"foreignKey:UserID"`
}
