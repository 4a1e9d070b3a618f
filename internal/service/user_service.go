package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account signup and login.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Signup validates the fields and creates a new account. Duplicate
// usernames and emails surface as field errors, not internal errors.
func (s *UserService) Signup(ctx context.Context, username, email, password string) (*models.User, validation.FieldErrors, error) {
	errs := validation.SignupForm(username, email, password)

	if _, ok := errs["username"]; !ok {
		if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
			errs["username"] = "Username is already taken"
		} else if !models.IsNotFound(err) {
			return nil, nil, err
		}
	}
	if _, ok := errs["email"]; !ok {
		if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
			errs["email"] = "Email is already registered"
		} else if !models.IsNotFound(err) {
			return nil, nil, err
		}
	}
	if !errs.Valid() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	return user, nil, nil
}

// Login checks the credentials and returns the account. An unknown
// username and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewUnauthorizedError("Invalid username or password")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid username or password")
	}
	return user, nil
}
