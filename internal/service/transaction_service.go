package service

import (
	"piggybank/internal/apperr"
	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/logger"

	"go.uber.org/zap"
)

// TransactionService records and reads deposits and withdrawals. There is no
// update or delete: transactions are append-only.
type TransactionService struct {
	txRepo    *repository.TransactionRepository
	bankRepo  *repository.PiggyBankRepository
	groupRepo *repository.GroupRepository
	userRepo  *repository.UserRepository
	authz     *AuthzService
}

func NewTransactionService(
	txRepo *repository.TransactionRepository,
	bankRepo *repository.PiggyBankRepository,
	groupRepo *repository.GroupRepository,
	userRepo *repository.UserRepository,
	authz *AuthzService,
) *TransactionService {
	return &TransactionService{
		txRepo:    txRepo,
		bankRepo:  bankRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		authz:     authz,
	}
}

// CreateTransactionRequest carries an explicit kind so deposits and
// withdrawals need no decode-retry to tell apart. Payee is required for
// deposits and rejected for withdrawals. Amount is validated in Create so
// a zero amount reports the business rule, not a parse failure.
type CreateTransactionRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=deposit withdrawal"`
	Amount int64  `json:"amount"`
	Payee  string `json:"payee"`
	Tags   string `json:"tags"`
}

func (s *TransactionService) resolvePath(groupName, bankName string) (*model.Group, *model.PiggyBank, *apperr.Error) {
	group, err := s.groupRepo.FindByName(groupName)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "failed to look up group")
	}
	if group == nil {
		return nil, nil, apperr.NotFoundEntity("group", groupName)
	}

	bank, err := s.bankRepo.FindByGroupAndName(group.ID, bankName)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "failed to look up piggy bank")
	}
	if bank == nil {
		return nil, nil, apperr.NotFoundEntity("piggy bank", bankName)
	}
	return group, bank, nil
}

func (s *TransactionService) List(requester *model.User, groupName, bankName string) ([]model.Transaction, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	txs, err := s.txRepo.ListByBank(bank.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list transactions")
	}
	return txs, nil
}

// Get resolves a transaction by ID within the named bank. An ID that exists
// but belongs to another bank is reported as not found.
func (s *TransactionService) Get(requester *model.User, groupName, bankName, txID string) (*model.Transaction, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	tx, err := s.txRepo.FindByID(txID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up transaction")
	}
	if tx == nil || tx.BankID != bank.ID {
		return nil, apperr.NotFoundEntity("transaction", txID)
	}
	return tx, nil
}

func (s *TransactionService) Create(requester *model.User, groupName, bankName string, req CreateTransactionRequest) (*model.Transaction, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	if req.Amount <= 0 {
		return nil, apperr.New(apperr.Validation, "transaction amount must be positive")
	}

	tx := &model.Transaction{
		BankID: bank.ID,
		Kind:   req.Kind,
		Amount: req.Amount,
		Tags:   req.Tags,
	}

	switch req.Kind {
	case model.KindDeposit:
		if req.Payee == "" {
			return nil, apperr.New(apperr.Validation, "a deposit requires a payee")
		}
		payee, err := s.userRepo.FindByUsername(req.Payee)
		if err != nil {
			return nil, apperr.Wrap(err, "failed to look up payee")
		}
		if payee == nil {
			return nil, apperr.NotFoundEntity("payee", req.Payee)
		}
		tx.PayeeID = &payee.ID
		tx.Payee = payee
	case model.KindWithdrawal:
		if req.Payee != "" {
			return nil, apperr.New(apperr.Validation, "a withdrawal does not take a payee")
		}
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown transaction kind %q", req.Kind)
	}

	if err := s.txRepo.Create(tx); err != nil {
		return nil, apperr.Wrap(err, "failed to record transaction")
	}

	logger.L.Info("transaction recorded",
		zap.String("group", group.Name),
		zap.String("bank", bank.Name),
		zap.String("kind", tx.Kind),
		zap.Int64("amount", tx.Amount))
	return tx, nil
}
