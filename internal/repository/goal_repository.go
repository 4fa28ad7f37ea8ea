package repository

import (
	"errors"

	"piggybank/internal/model"
	"piggybank/pkg/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository() *GoalRepository {
	return &GoalRepository{db: db.DB}
}

func (r *GoalRepository) Create(goal *model.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}
	return r.db.Create(goal).Error
}

func (r *GoalRepository) FindByBankAndName(bankID, name string) (*model.Goal, error) {
	var goal model.Goal
	err := r.db.Where("bank_id = ? AND name = ?", bankID, name).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *GoalRepository) ListByBank(bankID string) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.db.Where("bank_id = ?", bankID).Order("created_at ASC").Find(&goals).Error
	return goals, err
}

func (r *GoalRepository) Update(goal *model.Goal) error {
	return r.db.Save(goal).Error
}

func (r *GoalRepository) Delete(goal *model.Goal) error {
	return r.db.Delete(goal).Error
}
