package repository

import (
	"errors"

	"piggybank/internal/model"
	"piggybank/pkg/db"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{db: db.DB}
}

// Add inserts a membership row. The composite primary key rejects a second
// row for the same (group, user) pair.
func (r *MembershipRepository) Add(groupID, userID, role string) error {
	if role == "" {
		role = model.RoleMember
	}
	member := &model.Membership{
		GroupID: groupID,
		UserID:  userID,
		Role:    role,
	}
	return r.db.Create(member).Error
}

func (r *MembershipRepository) Remove(groupID, userID string) error {
	return r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.Membership{}).Error
}

// Find returns the membership row for the pair, or nil when the user is not
// a member.
func (r *MembershipRepository) Find(groupID, userID string) (*model.Membership, error) {
	var member model.Membership
	err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

// ListByGroup returns the group's members with their user rows preloaded.
func (r *MembershipRepository) ListByGroup(groupID string) ([]model.Membership, error) {
	var members []model.Membership
	err := r.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}
