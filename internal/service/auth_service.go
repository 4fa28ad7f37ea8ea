package service

import (
	"strings"

	"piggybank/internal/apperr"
	"piggybank/internal/model"
	"piggybank/internal/repository"
	"piggybank/pkg/logger"
	"piggybank/pkg/token"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and self-service account
// management.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterRequest leaves username and password presence to the service
// layer, so an empty value gets the business-rule message rather than the
// parse-failure one.
type RegisterRequest struct {
	Username  string `json:"username" binding:"max=30"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries the self-service edit fields. Nil pointers leave
// the stored value untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates the user and logs them in, returning a session token.
func (s *AuthService) Register(req RegisterRequest) (*model.User, string, *apperr.Error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, "", apperr.New(apperr.Validation, "username must not be empty")
	}
	if req.Password == "" {
		return nil, "", apperr.New(apperr.Validation, "password must not be empty")
	}

	existing, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to check username")
	}
	if existing != nil {
		return nil, "", apperr.Newf(apperr.Duplicate, "username %q is already taken", username)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to hash password")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
	}
	if err := s.userRepo.Create(user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, "", apperr.Newf(apperr.Duplicate, "username %q is already taken", username)
		}
		return nil, "", apperr.Wrap(err, "failed to create user")
	}

	tok, err := token.Generate(user)
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to issue token")
	}

	logger.L.Info("user registered", zap.String("username", user.Username))
	return user, tok, nil
}

func (s *AuthService) Login(req LoginRequest) (*model.User, string, *apperr.Error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to look up user")
	}
	if user == nil {
		return nil, "", apperr.NotFoundEntity("user", req.Username)
	}

	if !checkPassword(req.Password, user.PasswordHash) {
		return nil, "", apperr.New(apperr.Forbidden, "wrong password")
	}

	tok, err := token.Generate(user)
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to issue token")
	}
	return user, tok, nil
}

// Update edits the caller's own account and re-issues the session token.
// The stored session ID is rotated, so every previously issued token for
// this user stops verifying.
func (s *AuthService) Update(requester *model.User, username string, req UpdateUserRequest) (*model.User, string, *apperr.Error) {
	user, aerr := s.requireSelf(requester, username)
	if aerr != nil {
		return nil, "", aerr
	}

	if req.Username != nil {
		newName := strings.TrimSpace(*req.Username)
		if newName == "" {
			return nil, "", apperr.New(apperr.Validation, "username must not be empty")
		}
		if newName != user.Username {
			existing, err := s.userRepo.FindByUsername(newName)
			if err != nil {
				return nil, "", apperr.Wrap(err, "failed to check username")
			}
			if existing != nil {
				return nil, "", apperr.Newf(apperr.Duplicate, "username %q is already taken", newName)
			}
			user.Username = newName
		}
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, "", apperr.New(apperr.Validation, "password must not be empty")
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, "", apperr.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	// revoke outstanding sessions
	user.SessionID = uuid.NewString()

	if err := s.userRepo.Update(user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, "", apperr.Newf(apperr.Duplicate, "username %q is already taken", user.Username)
		}
		return nil, "", apperr.Wrap(err, "failed to update user")
	}

	tok, err := token.Generate(user)
	if err != nil {
		return nil, "", apperr.Wrap(err, "failed to issue token")
	}
	return user, tok, nil
}

// Delete removes the caller's own account and their memberships.
func (s *AuthService) Delete(requester *model.User, username string) *apperr.Error {
	user, aerr := s.requireSelf(requester, username)
	if aerr != nil {
		return aerr
	}
	if err := s.userRepo.Delete(user); err != nil {
		return apperr.Wrap(err, "failed to delete user")
	}
	logger.L.Info("user deleted", zap.String("username", username))
	return nil
}

// GetProfile returns the named user. Whether the caller sees the full
// profile is decided at the handler, which knows the caller's identity.
func (s *AuthService) GetProfile(username string) (*model.User, *apperr.Error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up user")
	}
	if user == nil {
		return nil, apperr.NotFoundEntity("user", username)
	}
	return user, nil
}

func (s *AuthService) requireSelf(requester *model.User, username string) (*model.User, *apperr.Error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, apperr.Wrap(err, "failed to look up user")
	}
	if user == nil {
		return nil, apperr.NotFoundEntity("user", username)
	}
	if requester.ID != user.ID {
		return nil, apperr.New(apperr.Forbidden, "you may only manage your own account")
	}
	return user, nil
}
