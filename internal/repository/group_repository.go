package repository

import (
	"errors"

	"piggybank/internal/model"
	"piggybank/pkg/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository() *GroupRepository {
	return &GroupRepository{db: db.DB}
}

// Create inserts the group and records the owner as a member in the same
// transaction, so owner reads always pass the membership check.
func (r *GroupRepository) Create(group *model.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		ownerMember := &model.Membership{
			GroupID: group.ID,
			UserID:  group.OwnerID,
			Role:    model.RoleOwner,
		}
		return tx.Create(ownerMember).Error
	})
}

func (r *GroupRepository) FindByName(name string) (*model.Group, error) {
	var group model.Group
	err := r.db.Where("name = ?", name).Preload("Owner").First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // group does not exist
		}
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepository) FindByID(id string) (*model.Group, error) {
	var group model.Group
	err := r.db.Where("id = ?", id).Preload("Owner").First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// FindUserGroups lists the groups the user belongs to.
func (r *GroupRepository) FindUserGroups(userID string) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.Joins("JOIN memberships on groups.id = memberships.group_id").
		Where("memberships.user_id = ?", userID).
		Preload("Owner").
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *GroupRepository) Update(group *model.Group) error {
	return r.db.Save(group).Error
}

// Delete removes the group and everything it owns: memberships, banks, and
// the goals and transactions of those banks.
func (r *GroupRepository) Delete(group *model.Group) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		bankIDs := tx.Model(&model.PiggyBank{}).Select("id").Where("group_id = ?", group.ID)
		if err := tx.Where("bank_id IN (?)", bankIDs).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bank_id IN (?)", bankIDs).Delete(&model.Goal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&model.PiggyBank{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", group.ID).Delete(&model.Membership{}).Error; err != nil {
			return err
		}
		return tx.Delete(group).Error
	})
}
