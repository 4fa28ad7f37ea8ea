package model

import "time"

const (
	KindDeposit    = "deposit"
	KindWithdrawal = "withdrawal"
)

// Transaction is a deposit or withdrawal against a piggy bank, tagged
// explicitly by Kind. Deposits carry a payee, withdrawals do not.
// Transactions are immutable once created: there is no update path anywhere.
type Transaction struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	BankID    string  `gorm:"type:uuid;not null;index"`
	Kind      string  `gorm:"type:varchar(10);not null"`
	Amount    int64   `gorm:"not null"`
	PayeeID   *string `gorm:"type:uuid"`
	Tags      string  `gorm:"type:varchar(500)"`
	CreatedAt time.Time

	Bank  PiggyBank `gorm:"foreignKey:BankID"`
	Payee *User     `gorm:"foreignKey:PayeeID"`
}
