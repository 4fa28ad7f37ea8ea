package service

import (
	"testing"

	"piggybank/internal/apperr"
)

func TestGroupService_CreateOwnerIsMember(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")

	group, aerr := env.groups.Create(alice, CreateGroupRequest{Name: "Trip", Description: "holiday fund"})
	if aerr != nil {
		t.Fatalf("Create() error = %v", aerr)
	}
	if group.ID == "" {
		t.Fatal("Create() returned group without ID")
	}

	if !env.authz.IsOwner(alice.ID, group) {
		t.Error("creator should be the owner")
	}
	isMember, err := env.authz.IsMember(alice.ID, group)
	if err != nil {
		t.Fatalf("IsMember: %v", err)
	}
	if !isMember {
		t.Error("creator should be auto-joined as a member")
	}
}

func TestGroupService_CreateDuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	mustCreateGroup(t, env, alice, "Trip")

	_, aerr := env.groups.Create(bob, CreateGroupRequest{Name: "Trip"})
	if aerr == nil || aerr.Kind != apperr.Duplicate {
		t.Fatalf("Create() duplicate name: got %v, want Duplicate", aerr)
	}
}

// A non-member with a valid token must not read group state; after redeeming
// an invite the same read succeeds.
func TestGroupService_MembershipGatesReads(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	mustCreateGroup(t, env, alice, "Trip")

	_, _, aerr := env.groups.Get(bob, "Trip")
	if aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Get() as non-member: got %v, want Forbidden", aerr)
	}

	mustJoin(t, env, alice, bob, "Trip")

	_, members, aerr := env.groups.Get(bob, "Trip")
	if aerr != nil {
		t.Fatalf("Get() as member: %v", aerr)
	}
	if len(members) != 2 {
		t.Errorf("got %d members, want 2", len(members))
	}
}

func TestGroupService_Join(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	group := mustCreateGroup(t, env, alice, "Trip")

	inv, aerr := env.groups.CreateInvite(alice, "Trip")
	if aerr != nil {
		t.Fatalf("CreateInvite() error = %v", aerr)
	}

	t.Run("Unknown invite ID", func(t *testing.T) {
		aerr := env.groups.Join(bob, "Trip", "not-a-real-invite")
		if aerr == nil || aerr.Kind != apperr.NotFound {
			t.Fatalf("Join() with bogus invite: got %v, want NotFound", aerr)
		}
	})

	t.Run("First redemption succeeds", func(t *testing.T) {
		if aerr := env.groups.Join(bob, "Trip", inv.ID); aerr != nil {
			t.Fatalf("Join() error = %v", aerr)
		}
		member, err := env.memberRepo.Find(group.ID, bob.ID)
		if err != nil || member == nil {
			t.Fatalf("membership row not created: %v", err)
		}
	})

	t.Run("Joining again fails", func(t *testing.T) {
		aerr := env.groups.Join(bob, "Trip", inv.ID)
		if aerr == nil || aerr.Kind != apperr.Duplicate {
			t.Fatalf("Join() as member: got %v, want Duplicate", aerr)
		}
	})

	t.Run("Invite stays redeemable by others", func(t *testing.T) {
		carol := mustRegister(t, env, "carol")
		if aerr := env.groups.Join(carol, "Trip", inv.ID); aerr != nil {
			t.Fatalf("Join() by second user: %v", aerr)
		}
	})
}

func TestGroupService_InvitesOwnerOnly(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	mustCreateGroup(t, env, alice, "Trip")
	mustJoin(t, env, alice, bob, "Trip")

	if _, aerr := env.groups.CreateInvite(bob, "Trip"); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Errorf("CreateInvite() as member: got %v, want Forbidden", aerr)
	}
	if _, aerr := env.groups.ListInvites(bob, "Trip"); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Errorf("ListInvites() as member: got %v, want Forbidden", aerr)
	}

	invites, aerr := env.groups.ListInvites(alice, "Trip")
	if aerr != nil {
		t.Fatalf("ListInvites() as owner: %v", aerr)
	}
	if len(invites) != 1 {
		t.Errorf("got %d invites, want 1", len(invites))
	}
}

func TestGroupService_UpdateOwnerOnly(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	mustCreateGroup(t, env, alice, "Trip")
	mustJoin(t, env, alice, bob, "Trip")

	desc := "changed"
	if _, aerr := env.groups.Update(bob, "Trip", UpdateGroupRequest{Description: &desc}); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Update() as member: got %v, want Forbidden", aerr)
	}

	newName := "World Trip"
	group, aerr := env.groups.Update(alice, "Trip", UpdateGroupRequest{Name: &newName, Description: &desc})
	if aerr != nil {
		t.Fatalf("Update() as owner: %v", aerr)
	}
	if group.Name != "World Trip" || group.Description != "changed" {
		t.Errorf("Update() did not apply: %+v", group)
	}

	// the old name no longer resolves
	if _, _, aerr := env.groups.Get(alice, "Trip"); aerr == nil || aerr.Kind != apperr.NotFound {
		t.Errorf("Get() by old name: got %v, want NotFound", aerr)
	}
}

func TestGroupService_DeletePurges(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	group := mustCreateGroup(t, env, alice, "Trip")
	mustJoin(t, env, alice, bob, "Trip")

	if _, aerr := env.banks.Create(alice, "Trip", CreateBankRequest{Name: "Fund"}); aerr != nil {
		t.Fatalf("bank create: %v", aerr)
	}

	if aerr := env.groups.Delete(bob, "Trip"); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("Delete() as member: got %v, want Forbidden", aerr)
	}
	if aerr := env.groups.Delete(alice, "Trip"); aerr != nil {
		t.Fatalf("Delete() as owner: %v", aerr)
	}

	members, err := env.memberRepo.ListByGroup(group.ID)
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("memberships survived group deletion: %d", len(members))
	}
	if _, _, aerr := env.groups.Get(alice, "Trip"); aerr == nil || aerr.Kind != apperr.NotFound {
		t.Errorf("group still resolvable after delete: %v", aerr)
	}
}

func TestGroupService_RemoveMember(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	carol := mustRegister(t, env, "carol")
	group := mustCreateGroup(t, env, alice, "Trip")
	mustJoin(t, env, alice, bob, "Trip")
	mustJoin(t, env, alice, carol, "Trip")

	t.Run("Owner cannot leave", func(t *testing.T) {
		aerr := env.groups.RemoveMember(alice, "Trip", "alice")
		if aerr == nil || aerr.Kind != apperr.Forbidden {
			t.Fatalf("got %v, want Forbidden", aerr)
		}
	})

	t.Run("Member cannot remove another member", func(t *testing.T) {
		aerr := env.groups.RemoveMember(bob, "Trip", "carol")
		if aerr == nil || aerr.Kind != apperr.Forbidden {
			t.Fatalf("got %v, want Forbidden", aerr)
		}
	})

	t.Run("Member leaves on their own", func(t *testing.T) {
		if aerr := env.groups.RemoveMember(bob, "Trip", "bob"); aerr != nil {
			t.Fatalf("self-leave failed: %v", aerr)
		}
		member, err := env.memberRepo.Find(group.ID, bob.ID)
		if err != nil || member != nil {
			t.Errorf("membership should be gone, got %v (%v)", member, err)
		}
	})

	t.Run("Owner removes a member", func(t *testing.T) {
		if aerr := env.groups.RemoveMember(alice, "Trip", "carol"); aerr != nil {
			t.Fatalf("owner removal failed: %v", aerr)
		}
	})
}

func TestGroupService_UserGroupsSelfOnly(t *testing.T) {
	env := setupTestEnv(t)
	alice := mustRegister(t, env, "alice")
	bob := mustRegister(t, env, "bob")
	mustCreateGroup(t, env, alice, "Trip")
	mustCreateGroup(t, env, alice, "House")

	if _, aerr := env.groups.UserGroups(bob, "alice"); aerr == nil || aerr.Kind != apperr.Forbidden {
		t.Fatalf("UserGroups() for another user: got %v, want Forbidden", aerr)
	}

	groups, aerr := env.groups.UserGroups(alice, "alice")
	if aerr != nil {
		t.Fatalf("UserGroups() error = %v", aerr)
	}
	if len(groups) != 2 {
		t.Errorf("got %d groups, want 2", len(groups))
	}
}
