package service

import (
	"strings"

	"piggybank/internal/apperr"
	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/logger"

	"go.uber.org/zap"
)

type BankService struct {
	bankRepo  *repository.PiggyBankRepository
	groupRepo *repository.GroupRepository
	authz     *AuthzService
}

func NewBankService(
	bankRepo *repository.PiggyBankRepository,
	groupRepo *repository.GroupRepository,
	authz *AuthzService,
) *BankService {
	return &BankService{bankRepo: bankRepo, groupRepo: groupRepo, authz: authz}
}

type CreateBankRequest struct {
	Name        string `json:"name" binding:"max=100"`
	Description string `json:"description"`
}

type UpdateBankRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// resolveGroup resolves the first path segment. Resolution happens before
// any authorization check, so a missing group is reported as such.
func (s *BankService) resolveGroup(name string) (*model.Group, *apperr.Error) {
	group, err := s.groupRepo.FindByName(name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up group")
	}
	if group == nil {
		return nil, apperr.NotFoundEntity("group", name)
	}
	return group, nil
}

func (s *BankService) resolveBank(group *model.Group, name string) (*model.PiggyBank, *apperr.Error) {
	bank, err := s.bankRepo.FindByGroupAndName(group.ID, name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up piggy bank")
	}
	if bank == nil {
		return nil, apperr.NotFoundEntity("piggy bank", name)
	}
	return bank, nil
}

func (s *BankService) List(requester *model.User, groupName string) ([]model.PiggyBank, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	banks, err := s.bankRepo.ListByGroup(group.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list piggy banks")
	}
	return banks, nil
}

func (s *BankService) Get(requester *model.User, groupName, bankName string) (*model.PiggyBank, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}
	return s.resolveBank(group, bankName)
}

func (s *BankService) Create(requester *model.User, groupName string, req CreateBankRequest) (*model.PiggyBank, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "piggy bank name must not be empty")
	}

	existing, err := s.bankRepo.FindByGroupAndName(group.ID, name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check piggy bank name")
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.Duplicate, "piggy bank %q already exists in group %q", name, group.Name)
	}

	bank := &model.PiggyBank{
		GroupID:     group.ID,
		Name:        name,
		Description: req.Description,
	}
	if err := s.bankRepo.Create(bank); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "piggy bank %q already exists in group %q", name, group.Name)
		}
		return nil, apperr.Wrap(err, "failed to create piggy bank")
	}

	logger.L.Info("piggy bank created", zap.String("group", group.Name), zap.String("bank", bank.Name))
	return bank, nil
}

func (s *BankService) Update(requester *model.User, groupName, bankName string, req UpdateBankRequest) (*model.PiggyBank, *apperr.Error) {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}
	bank, aerr := s.resolveBank(group, bankName)
	if aerr != nil {
		return nil, aerr
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, apperr.New(apperr.Validation, "piggy bank name must not be empty")
		}
		if newName != bank.Name {
			existing, err := s.bankRepo.FindByGroupAndName(group.ID, newName)
			if err != nil {
				return nil, apperr.Wrap(err, "failed to check piggy bank name")
			}
			if existing != nil {
				return nil, apperr.Newf(apperr.Duplicate, "piggy bank %q already exists in group %q", newName, group.Name)
			}
			bank.Name = newName
		}
	}
	if req.Description != nil {
		bank.Description = *req.Description
	}

	if err := s.bankRepo.Update(bank); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "piggy bank %q already exists in group %q", bank.Name, group.Name)
		}
		return nil, apperr.Wrap(err, "failed to update piggy bank")
	}
	return bank, nil
}

func (s *BankService) Delete(requester *model.User, groupName, bankName string) *apperr.Error {
	group, aerr := s.resolveGroup(groupName)
	if aerr != nil {
		return aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return aerr
	}
	bank, aerr := s.resolveBank(group, bankName)
	if aerr != nil {
		return aerr
	}

	if err := s.bankRepo.Delete(bank); err != nil {
		return apperr.Wrap(err, "failed to delete piggy bank")
	}
	logger.L.Info("piggy bank deleted", zap.String("group", groupName), zap.String("bank", bankName))
	return nil
}
