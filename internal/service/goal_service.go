package service

import (
	"strings"
	"time"

	"piggybank/internal/apperr"
	"piggybank/internal/model"
	"piggybank/internal/repository"
)

type GoalService struct {
	goalRepo  *repository.GoalRepository
	bankRepo  *repository.PiggyBankRepository
	groupRepo *repository.GroupRepository
	authz     *AuthzService
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	bankRepo *repository.PiggyBankRepository,
	groupRepo *repository.GroupRepository,
	authz *AuthzService,
) *GoalService {
	return &GoalService{goalRepo: goalRepo, bankRepo: bankRepo, groupRepo: groupRepo, authz: authz}
}

type CreateGoalRequest struct {
	Name         string    `json:"name" binding:"max=100"`
	Description  string    `json:"description"`
	TargetAmount int64     `json:"targetAmount"`
	Deadline     time.Time `json:"deadline" binding:"required"`
}

type UpdateGoalRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	TargetAmount *int64     `json:"targetAmount"`
	Deadline     *time.Time `json:"deadline"`
}

// resolvePath resolves group then bank, in path order, failing on the first
// missing segment.
func (s *GoalService) resolvePath(groupName, bankName string) (*model.Group, *model.PiggyBank, *apperr.Error) {
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

func (s *GoalService) List(requester *model.User, groupName, bankName string) ([]model.Goal, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	goals, err := s.goalRepo.ListByBank(bank.ID)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to list goals")
	}
	return goals, nil
}

func (s *GoalService) Get(requester *model.User, groupName, bankName, goalName string) (*model.Goal, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireMember(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	goal, err := s.goalRepo.FindByBankAndName(bank.ID, goalName)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up goal")
	}
	if goal == nil {
		return nil, apperr.NotFoundEntity("goal", goalName)
	}
	return goal, nil
}

func (s *GoalService) Create(requester *model.User, groupName, bankName string, req CreateGoalRequest) (*model.Goal, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.Validation, "goal name must not be empty")
	}
	if req.TargetAmount <= 0 {
		return nil, apperr.New(apperr.Validation, "target amount must be positive")
	}

	existing, err := s.goalRepo.FindByBankAndName(bank.ID, name)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to check goal name")
	}
	if existing != nil {
		return nil, apperr.Newf(apperr.Duplicate, "goal %q already exists in piggy bank %q", name, bank.Name)
	}

	goal := &model.Goal{
		BankID:       bank.ID,
		Name:         name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
	}
	if err := s.goalRepo.Create(goal); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "goal %q already exists in piggy bank %q", name, bank.Name)
		}
		return nil, apperr.Wrap(err, "failed to create goal")
	}
	return goal, nil
}

func (s *GoalService) Update(requester *model.User, groupName, bankName, goalName string, req UpdateGoalRequest) (*model.Goal, *apperr.Error) {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return nil, aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return nil, aerr
	}

	goal, err := s.goalRepo.FindByBankAndName(bank.ID, goalName)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up goal")
	}
	if goal == nil {
		return nil, apperr.NotFoundEntity("goal", goalName)
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, apperr.New(apperr.Validation, "goal name must not be empty")
		}
		if newName != goal.Name {
			existing, err := s.goalRepo.FindByBankAndName(bank.ID, newName)
			if err != nil {
				return nil, apperr.Wrap(err, "failed to check goal name")
			}
			if existing != nil {
				return nil, apperr.Newf(apperr.Duplicate, "goal %q already exists in piggy bank %q", newName, bank.Name)
			}
			goal.Name = newName
		}
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount <= 0 {
			return nil, apperr.New(apperr.Validation, "target amount must be positive")
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.Deadline != nil {
		goal.Deadline = *req.Deadline
	}

	if err := s.goalRepo.Update(goal); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperr.Newf(apperr.Duplicate, "goal %q already exists in piggy bank %q", goal.Name, bank.Name)
		}
		return nil, apperr.Wrap(err, "failed to update goal")
	}
	return goal, nil
}

func (s *GoalService) Delete(requester *model.User, groupName, bankName, goalName string) *apperr.Error {
	group, bank, aerr := s.resolvePath(groupName, bankName)
	if aerr != nil {
		return aerr
	}
	if aerr := s.authz.RequireOwner(requester.ID, group); aerr != nil {
		return aerr
	}

	goal, err := s.goalRepo.FindByBankAndName(bank.ID, goalName)
	if err != nil {
		return apperr.Wrap(err, "failed to look up goal")
	}
	if goal == nil {
		return apperr.NotFoundEntity("goal", goalName)
	}

	if err := s.goalRepo.Delete(goal); err != nil {
		return apperr.Wrap(err, "failed to delete goal")
	}
	return nil
}
