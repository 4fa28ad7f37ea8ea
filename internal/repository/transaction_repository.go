package repository

import (
	"errors"

	"piggybank/internal/model"
	"piggybank/pkg/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionRepository persists deposits and withdrawals in a single store.
// Transactions are append-only: there is deliberately no Update or Delete.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{db: db.DB}
}

func (r *TransactionRepository) Create(tx *model.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	return r.db.Create(tx).Error
}

func (r *TransactionRepository) FindByID(id string) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.Where("id = ?", id).Preload("Payee").First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) ListByBank(bankID string) ([]model.Transaction, error) {
	var txs []model.Transaction
	err := r.db.Where("bank_id = ?", bankID).
		Preload("Payee").
		Order("created_at ASC").
		Find(&txs).Error
	return txs, err
}
