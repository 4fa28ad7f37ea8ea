package service

import (
	"testing"

	"piggybank/internal/apperr"
)

func setupGoalEnv(t *testing.T) *testEnv {
	t.Helper()
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	mustCreateGroup(t, env, alice, "Trip")
	if _, aerr := env.banks.Create(alice, "Trip", CreateBankRequest{Name: "Fund"}); aerr != nil {
		t.Fatalf("bank create: %v", aerr)
	}
	return env
}

func TestGoalService_Create(t *testing.T) {
	env := setupGoalEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")

	tests := []struct {
		name     string
		req      CreateGoalRequest
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name: "Valid goal",
			req:  CreateGoalRequest{Name: "Flights", TargetAmount: 50000, Deadline: futureDeadline()},
		},
		{
			name:     "Zero target amount",
			req:      CreateGoalRequest{Name: "Nothing", TargetAmount: 0, Deadline: futureDeadline()},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
		{
			name:     "Negative target amount",
			req:      CreateGoalRequest{Name: "Debt", TargetAmount: -5, Deadline: futureDeadline()},
			wantErr:  true,
			wantKind: apperr.Validation,
		},
		{
			name:     "Duplicate name in bank",
			req:      CreateGoalRequest{Name: "Flights", TargetAmount: 100, Deadline: futureDeadline()},
			wantErr:  true,
			wantKind: apperr.Duplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal, aerr := env.goals.Create(alice, "Trip", "Fund", tt.req)
			if (aerr != nil) != tt.wantErr {
				t.Fatalf("Create() error = %v, wantErr %v", aerr, tt.wantErr)
			}
			if tt.wantErr {
				if aerr.Kind != tt.wantKind {
					t.Errorf("Create() kind = %v, want %v", aerr.Kind, tt.wantKind)
				}
				return
			}
			if goal.TargetAmount != tt.req.TargetAmount {
				t.Errorf("target amount = %d, want %d", goal.TargetAmount, tt.req.TargetAmount)
			}
		})
	}
}

func TestGoalService_WritesOwnerOnly(t *testing.T) {
	env := setupGoalEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")
	bob := mustRegister(t, env, "bob")
	mustJoin(t, env, alice, bob, "Trip")

	req := CreateGoalRequest{Name: "Flights", TargetAmount: 50000, Deadline: futureDeadline()}
	if _, aerr := env.goals.Create(bob, "Trip", "Fund", req); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Create() as member: got %v, want Forbidden", aerr)
	}

	if _, aerr := env.goals.Create(alice, "Trip", "Fund", req); aerr != nil {
		t.Fatalf("Create() as owner: %v", aerr)
	}

	amount := int64(60000)
	if _, aerr := env.goals.Update(bob, "Trip", "Fund", "Flights", UpdateGoalRequest{TargetAmount: &amount}); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Update() as member: got %v, want Forbidden", aerr)
	}

	goal, aerr := env.goals.Update(alice, "Trip", "Fund", "Flights", UpdateGoalRequest{TargetAmount: &amount})
	if aerr != nil {
		t.Fatalf("Update() as owner: %v", aerr)
	}
	if goal.TargetAmount != 60000 {
		t.Errorf("target amount = %d, want 60000", goal.TargetAmount)
	}

	// members may read
	goals, aerr := env.goals.List(bob, "Trip", "Fund")
	if aerr != nil {
		t.Fatalf("List() as member: %v", aerr)
	}
	if len(goals) != 1 {
		t.Errorf("got %d goals, want 1", len(goals))
	}

	if aerr := env.goals.Delete(bob, "Trip", "Fund", "Flights"); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Delete() as member: got %v, want Forbidden", aerr)
	}
	if aerr := env.goals.Delete(alice, "Trip", "Fund", "Flights"); aerr != nil {
		t.Fatalf("Delete() as owner: %v", aerr)
	}
}

func TestGoalService_UpdateRejectsNonPositiveTarget(t *testing.T) {
	env := setupGoalEnv(t)
	alice, _ := env.userRepo.FindByUsername("alice")
	if _, aerr := env.goals.Create(alice, "Trip", "Fund", CreateGoalRequest{Name: "Flights", TargetAmount: 50000, Deadline: futureDeadline()}); aerr != nil {
		t.Fatalf("create: %v", aerr)
	}

	zero := int64(0)
	_, aerr := env.goals.Update(alice, "Trip", "Fund", "Flights", UpdateGoalRequest{TargetAmount: &zero})
	if aerr == nil || aerr.Kind != apperr.Validation {
		t.Fatalf("Update() with zero target: got %v, want Validation", aerr)
	}
}
