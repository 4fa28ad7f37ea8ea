package service

import (
	"strings"

	"piggybank/internal/apperr"
	"piggybank/internal/invite"
	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/logger"

	"go.uber.org/zap"
)

type GroupService struct {
	groupRepo  *repository.GroupRepository
	memberRepo *repository.MembershipRepository
	userRepo   *repository.UserRepository
	authz      *AuthzService
	invites    *invite.Manager
}

func NewGroupService(
	groupRepo *repository.GroupRepository,
	memberRepo *repository.MembershipRepository,
	userRepo *repository.UserRepository,
	authz *AuthzService,
	invites *invite.Manager,
) *GroupService {
	return &GroupService{
		groupRepo:  groupRepo,
		memberRepo: memberRepo,
		userRepo:   userRepo,
		authz:      authz,
		invites:    invites,
	}
}

type CreateGroupRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description"`
}

type UpdateGroupRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// resolveGroup looks the group up by its human-readable name, the first
// path segment of every group-scoped route.
func (s *GroupService) resolveGroup(name string) (*model.Group, *apperr.Error) {
	group, err := s.groupRepo.FindByName(name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up group")
	}
	if group == nil {
		return nil, apperr.NotFoundEntity("group", name)
	}
	return group, nil
}

// Create makes the requester the owner; the repository records them as a
// member in the same transaction.
func (s *GroupService) Create(requester *model.User, req CreateGroupRequest) (*model.Group, *apperr.Error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "group name must not be empty")
	}

	existing, err := s.groupRepo.FindByName(name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check group name")
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.Duplicate, "group name %q is already taken", name)
	}

	group := &model.Group{
		Name:        name,
		Description: req.Description,
		OwnerID:     requester.ID,
	}
	if err := s.groupRepo.Create(group); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "group name %q is already taken", name)
		}
		return nil, apperr.Wrap(err, "failed to create group")
	}
	group.Owner = *requester

	logger.L.Info("group created", zap.String("group", group.Name), zap.String("owner", requester.Username))
	return group, nil
}

func (s *GroupService) Get(requester *model.User, groupName string) (*model.Group, []model.Membership, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, nil, aerr
	}

	members, err := s.memberRepo.ListByGroup(group.ID)
	if err != nil {
		return nil, nil, apperr.Wrap(err, "failed to list members")
	}
	return group, members, nil
}

func (s *GroupService) Update(requester *model.User, groupName string, req UpdateGroupRequest) (*model.Group, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, apperr.New(apperr.Validation, "group name must not be empty")
		}
		if newName != group.Name {
			existing, err := s.groupRepo.FindByName(newName)
			if err != nil {
				return nil, apperr.Wrap(err, "failed to check group name")
			}
			if existing != nil {
				return nil, apperr.Newf(apperr.Duplicate, "group name %q is already taken", newName)
			}
			// invites reference the old name and die with it
			s.invites.DropGroup(group.Name)
			group.Name = newName
		}
	}
	if req.Description != nil {
		group.Description = *req.Description
	}

	if err := s.groupRepo.Update(group); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "group name %q is already taken", group.Name)
		}
		return nil, apperr.Wrap(err, "failed to update group")
	}
	return group, nil
}

func (s *GroupService) Delete(requester *model.User, groupName string) *apperr.Error {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return aerr
	}

	if err := s.groupRepo.Delete(group); err != nil {
		return apperr.Wrap(err, "failed to delete group")
	}
	s.invites.DropGroup(group.Name)

	logger.L.Info("group deleted", zap.String("group", groupName))
	return nil
}

// CreateInvite issues a new invite for the group. Owner only.
func (s *GroupService) CreateInvite(requester *model.User, groupName string) (invite.Invite, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return invite.Invite{}, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return invite.Invite{}, aerr
	}
	return s.invites.Create(group.Name), nil
}

func (s *GroupService) ListInvites(requester *model.User, groupName string) ([]invite.Invite, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}
	return s.invites.List(group.Name), nil
}

// Join redeems an invite. The invite must have been issued for this exact
// group; unknown invite IDs are rejected. Invites stay redeemable by further
// users afterwards.
func (s *GroupService) Join(requester *model.User, groupName, inviteID string) *apperr.Error {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return aerr
	}

	if !s.invites.Exists(group.Name, inviteID) {
		return apperr.NotFoundEntity("invite", inviteID)
	}

	member, err := s.memberRepo.Find(group.ID, requester.ID)
	if err != nil {
		return apperr.Wrap(err, "failed to check membership")
	}
	if member != nil {
		return apperr.Newf(apperr.Duplicate, "you are already a member of group %q", group.Name)
	}

	if err := s.memberRepo.Add(group.ID, requester.ID, model.RoleMember); err != nil {
		if repository.IsDuplicate(err) {
			return apperr.Newf(apperr.Duplicate, "you are already a member of group %q", group.Name)
		}
		return apperr.Wrap(err, "failed to join group")
	}

	logger.L.Info("user joined group", zap.String("group", group.Name), zap.String("username", requester.Username))
	return nil
}

// RemoveMember covers both self-leave and the owner removing a member. The
// owner cannot leave their own group.
func (s *GroupService) RemoveMember(requester *model.User, groupName, username string) *apperr.Error {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return aerr
	}

	target, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return apperr.Wrap(err, "failed to look up user")
	}
	if target == nil {
		return apperr.NotFoundEntity("user", username)
	}

	if requester.ID != target.ID {
		if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
			return aerr
		}
	}
	if target.ID == group.OwnerID {
		return apperr.New(apperr.Forbidden, "the group owner cannot leave the group")
	}

	member, err := s.memberRepo.Find(group.ID, target.ID)
	if err != nil {
		return apperr.Wrap(err, "failed to check membership")
	}
	if member == nil {
		return apperr.Newf(apperr.NotFound, "user %q is not a member of group %q", username, group.Name)
	}

	if err := s.memberRepo.Remove(group.ID, target.ID); err != nil {
		return apperr.Wrap(err, "failed to remove member")
	}
	return nil
}

// UserGroups lists the groups a user belongs to. Self only.
func (s *GroupService) UserGroups(requester *model.User, username string) ([]model.Group, *apperr.Error) {
	if requester.Username != username {
		return nil, apperr.New(apperr.Forbidden, "you may only list your own groups")
	}
	groups, err := s.groupRepo.FindUserGroups(requester.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list groups")
	}
	return groups, nil
}

// Members lists a group's members. Any member may read the list.
func (s *GroupService) Members(requester *model.User, groupName string) ([]model.Membership, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	members, err := s.memberRepo.ListByGroup(group.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list members")
	}
	return members, nil
}
