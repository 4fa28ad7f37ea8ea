package service

import (
	"piggybank/internal/apperr"
	"piggybank/internal/model"
	"piggybank/internal/repository"
)

// AuthzService answers the two questions every protected endpoint asks:
// is the caller a member of the group (reads), is the caller its owner
// (writes). Ownership is the higher tier; the creator is auto-joined as a
// member at group creation so owner reads pass the membership check too.
type AuthzService struct {
	memberRepo *repository.MembershipRepository
}

func NewAuthzService(memberRepo *repository.MembershipRepository) *AuthzService {
	return &AuthzService{memberRepo: memberRepo}
}

func (s *AuthzService) IsMember(userID string, group *model.Group) (bool, error) {
	member, err := s.memberRepo.Find(group.ID, userID)
	if err != nil {
		return false, err
	}
	return member != nil, nil
}

func (s *AuthzService) IsOwner(userID string, group *model.Group) bool {
	return group.OwnerID == userID
}

// RequireMember fails with a privilege error naming the missing tier.
func (s *AuthzService) RequireMember(userID string, group *model.Group) *apperr.Error {
	ok, err := s.IsMember(userID, group)
	if err != nil {
		return apperr.Wrap(err, "failed to check group membership")
	}
	if !ok {
		return apperr.Newf(apperr.Forbidden, "you are not a member of group %q", group.Name)
	}
	return nil
}

func (s *AuthzService) RequireOwner(userID string, group *model.Group) *apperr.Error {
	if !s.IsOwner(userID, group) {
		return apperr.Newf(apperr.Forbidden, "only the owner of group %q may do this", group.Name)
	}
	return nil
}
