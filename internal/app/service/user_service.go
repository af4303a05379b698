package service

import (
	"context"
	"errors"
	"fmt"

	"fitcontest/internal/common"
	"fitcontest/internal/common/security"
	"fitcontest/internal/domain/model"
	"fitcontest/internal/domain/repository"
)

const MsgPasswordMismatch = "password does not match"

type UserService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
}

func NewUserService(userRepo repository.UserRepository, tokens *security.TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) ListSummaries(ctx context.Context) ([]model.UserSummary, error) {
	return s.userRepo.ListSummaries(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

// Create stores the user with a bcrypt hash in place of the supplied password.
func (s *UserService) Create(ctx context.Context, in model.NewUser) (*model.User, error) {
	hashed, err := security.HashPassword(*in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	in.Password = &hashed

	user, err := s.userRepo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (int64, error) {
	if patch.Password != nil && *patch.Password != "" {
		hashed, err := security.HashPassword(*patch.Password)
		if err != nil {
			return 0, fmt.Errorf("failed to hash password: %w", err)
		}
		patch.Password = &hashed
	}
	return s.userRepo.Update(ctx, id, patch.Assignments())
}

func (s *UserService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.userRepo.Delete(ctx, id)
}

// Login checks password against the stored hash of username. An unknown username yields
// common.ErrNotFound, a wrong password a common.UnauthorizedError.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(password, user.Password) {
		return nil, common.Unauthorized(MsgPasswordMismatch)
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.LoginResult{UserID: user.UserID, Password: user.Password, Token: token}, nil
}
