package service

import (
	"testing"

	"piggybank/internal/apperr"
	"piggybank/internal/model"
)

func setupTxEnv(t *testing.T) *testEnv {
	t.Helper()
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	mustCreateGroup(t, env, alice, "Trip")
	if _, aerr := env.banks.Create(alice, "Trip", CreateBankRequest{Name: "Fund"}); aerr != nil {
		t.Fatalf("bank create: %v", aerr)
	}
	return env
}

func TestTransactionService_Create(t *testing.T) {
	env := setupTxEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")

	tests := []struct {
		name     string
		req      CreateTransactionRequest
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "Deposit with payee",
			req:  CreateTransactionRequest{Kind: model.KindDeposit, Amount: 2500, Payee: "alice", Tags: "birthday"},
		},
		{
			name: "Withdrawal",
			req:  CreateTransactionRequest{Kind: model.KindWithdrawal, Amount: 1000},
		},
		{
			name:     "Deposit without payee",
			req:      CreateTransactionRequest{Kind: model.KindDeposit, Amount: 100},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
		{
			name:     "Withdrawal with payee",
			req:      CreateTransactionRequest{Kind: model.KindWithdrawal, Amount: 100, Payee: "alice"},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
		{
			name:     "Deposit to unknown payee",
			req:      CreateTransactionRequest{Kind: model.KindDeposit, Amount: 100, Payee: "ghost"},
			wantErr:  true,
			wantKind: apperr.NotFound,
		},
		{
			name:     "Zero amount",
			req:      CreateTransactionRequest{Kind: model.KindWithdrawal, Amount: 0},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
		{
			name:     "Negative amount",
			req:      CreateTransactionRequest{Kind: model.KindDeposit, Amount: -50, Payee: "alice"},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, aerr := env.txs.Create(alice, "Trip", "Fund", tt.req)
			if (aerr != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", aerr, tt.wantErr)
			}
			if tt.wantErr {
				if aerr.Kind != tt.wantKind {
					t.Errorf("Create() kind = %v, want %v", aerr.Kind, tt.wantKind)
				}
				return
			}
			if tx.ID == "" || tx.Kind != tt.req.Kind || tx.Amount != tt.req.Amount {
				t.Errorf("unexpected transaction: %+v", tx)
			}
		})
	}
}

func TestTransactionService_WritesOwnerOnly(t *testing.T) {
	env := setupTxEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")
	bob := mustRegister(t, env, "bob")
	mustJoin(t, env, alice, bob, "Trip")

	req := CreateTransactionRequest{Kind: model.KindWithdrawal, Amount: 100}
	if _, aerr := env.txs.Create(bob, "Trip", "Fund", req); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Create() as member: got %v, want Forbidden", aerr)
	}

	// members may read
	if _, aerr := env.txs.List(bob, "Trip", "Fund"); aerr != nil {
		t.Fatalf("List() as member: %v", aerr)
	}
}

// Transactions are append-only: a created transaction reads back with the
// exact values supplied at creation, and the service offers no mutation.
func TestTransactionService_ReadBackExactValues(t *testing.T) {
	env := setupTxEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")

	created, aerr := env.txs.Create(alice, "Trip", "Fund", CreateTransactionRequest{
		Kind:   model.KindDeposit,
		Amount: 2500,
		Payee:  "alice",
		Tags:   "gift,birthday",
	})
	if aerr != nil {
		t.Fatalf("Create() error = %v", aerr)
	}

	got, aerr := env.txs.Get(alice, "Trip", "Fund", created.ID)
	if aerr != nil {
		t.Fatalf("Get() error = %v", aerr)
	}
	if got.Kind != model.KindDeposit || got.Amount != 2500 || got.Tags != "gift,birthday" {
		t.Errorf("values changed after creation: %+v", got)
	}
	if got.Payee == nil || got.Payee.Username != "alice" {
		t.Errorf("payee not preserved: %+v", got.Payee)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("timestamp changed: %v vs %v", got.CreatedAt, created.CreatedAt)
	}
}

func TestTransactionService_GetScopedToBank(t *testing.T) {
	env := setupTxEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")
	if _, aerr := env.banks.Create(alice, "Trip", CreateBankRequest{Name: "Other"}); aerr != nil {
		t.Fatalf("bank create: %v", aerr)
	}

	tx, aerr := env.txs.Create(alice, "Trip", "Fund", CreateTransactionRequest{Kind: model.KindWithdrawal, Amount: 10})
	if aerr != nil {
		t.Fatalf("Create() error = %v", aerr)
	}

	// the ID exists, but not under this bank
	_, aerr = env.txs.Get(alice, "Trip", "Other", tx.ID)
	if aerr == nil || aerr.Kind != apperr.NotFound {
		t.Fatalf("Get() under wrong bank: got %v, want NotFound", aerr)
	}
}
