package repository

import (
	"errors"

	"piggybank/internal/model"
	"piggybank/pkg/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PiggyBankRepository struct {
	db *gorm.DB
}

func NewPiggyBankRepository() *PiggyBankRepository {
	return &PiggyBankRepository{db: db.DB}
}

func (r *PiggyBankRepository) Create(bank *model.PiggyBank) error {
	if bank.ID == "" {
		bank.ID = uuid.NewString()
	}
	return r.db.Create(bank).Error
}

// FindByGroupAndName resolves a bank by its name within the owning group.
func (r *PiggyBankRepository) FindByGroupAndName(groupID, name string) (*model.PiggyBank, error) {
	var bank model.PiggyBank
	err := r.db.Where("group_id = ? AND name = ?", groupID, name).First(&bank).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bank, nil
}

func (r *PiggyBankRepository) ListByGroup(groupID string) ([]model.PiggyBank, error) {
	var banks []model.PiggyBank
	err := r.db.Where("group_id = ?", groupID).Order("created_at ASC").Find(&banks).Error
	return banks, err
}

func (r *PiggyBankRepository) Update(bank *model.PiggyBank) error {
	return r.db.Save(bank).Error
}

// Delete removes the bank with its goals and transactions.
func (r *PiggyBankRepository) Delete(bank *model.PiggyBank) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bank_id = ?", bank.ID).Delete(&model.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bank_id = ?", bank.ID).Delete(&model.Goal{}).Error; err != nil {
			return err
		}
		return tx.Delete(bank).Error
	})
}
