package service

import (
	"testing"
	"time"

	"piggybank/internal/invite"
	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/config"
	"piggybank/pkg/db"
)

type testEnv struct {
	userRepo   *repository.UserRepository
	memberRepo *repository.MembershipRepository
	invites    *invite.Manager
	authz      *AuthzService

	auth   *AuthService
	groups *GroupService
	banks  *BankService
	goals  *GoalService
	txs    *TransactionService
}

// setupTestEnv opens a fresh in-memory database and wires the full service
// stack against it.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if err := config.InitTest(); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}
	if err := db.InitTestDB(); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	userRepo := repository.NewUserRepository()
	groupRepo := repository.NewGroupRepository()
	memberRepo := repository.NewMembershipRepository()
	bankRepo := repository.NewPiggyBankRepository()
	goalRepo := repository.NewGoalRepository()
	txRepo := repository.NewTransactionRepository()

	invites := invite.NewManager()
	authz := NewAuthzService(memberRepo)

	return &testEnv{
		userRepo:   userRepo,
		memberRepo: memberRepo,
		invites:    invites,
		authz:      authz,
		auth:       NewAuthService(userRepo),
		groups:     NewGroupService(groupRepo, memberRepo, userRepo, authz, invites),
		banks:      NewBankService(bankRepo, groupRepo, authz),
		goals:      NewGoalService(goalRepo, bankRepo, groupRepo, authz),
		txs:        NewTransactionService(txRepo, bankRepo, groupRepo, userRepo, authz),
	}
}

func mustRegister(t *testing.T, env *testEnv, username string) *model.User {
	t.Helper()
	user, _, aerr := env.auth.Register(RegisterRequest{Username: username, Password: "password123"})
	if aerr != nil {
		t.Fatalf("Failed to register %s: %v", username, aerr)
	}
	return user
}

func mustCreateGroup(t *testing.T, env *testEnv, owner *model.User, name string) *model.Group {
	t.Helper()
	group, aerr := env.groups.Create(owner, CreateGroupRequest{Name: name})
	if aerr != nil {
		t.Fatalf("Failed to create group %s: %v", name, aerr)
	}
	return group
}

func mustJoin(t *testing.T, env *testEnv, owner, joiner *model.User, groupName string) {
	t.Helper()
	inv, aerr := env.groups.CreateInvite(owner, groupName)
	if aerr != nil {
		t.Fatalf("Failed to create invite: %v", aerr)
	}
	if aerr := env.groups.Join(joiner, groupName, inv.ID); aerr != nil {
		t.Fatalf("Failed to join group: %v", aerr)
	}
}

func futureDeadline() time.Time {
	return time.Now().Add(30 * 24 * time.Hour)
}
