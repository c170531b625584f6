package services

import (
	"context"
	"fmt"

	"theater-backend/internal/auth"
	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type UserService struct {
	Repo         *repositories.UserRepository
	LoginLogRepo *repositories.LoginLogRepository
	JWT          *auth.JWTManager
	AuditService *AuditService
}

func NewUserService(repo *repositories.UserRepository, loginLogRepo *repositories.LoginLogRepository, jwt *auth.JWTManager, auditService *AuditService) *UserService {
	return &UserService{Repo: repo, LoginLogRepo: loginLogRepo, JWT: jwt, AuditService: auditService}
}

// LoginResult carries either a session token or, for 2FA accounts, a
// short-lived temp token that must be exchanged with a TOTP code.
type LoginResult struct {
	Token        string       `json:"token,omitempty"`
	TempToken    string       `json:"temp_token,omitempty"`
	RequiresTOTP bool         `json:"requires_totp"`
	User         *models.User `json:"user,omitempty"`
}

func (s *UserService) logAttempt(ctx context.Context, userID *int, email string, success bool, ip, userAgent string) {
	_ = s.LoginLogRepo.Create(ctx, &models.LoginLog{
		UserID:    userID,
		Email:     email,
		Success:   success,
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ip, userAgent string) (*LoginResult, error) {
	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logAttempt(ctx, nil, req.Email, false, ip, userAgent)
		return nil, fmt.Errorf("invalid credentials")
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.logAttempt(ctx, &user.ID, req.Email, false, ip, userAgent)
		return nil, fmt.Errorf("invalid credentials")
	}

	if !user.IsActive {
		s.logAttempt(ctx, &user.ID, req.Email, false, ip, userAgent)
		return nil, fmt.Errorf("account suspended")
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWT.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{TempToken: tempToken, RequiresTOTP: true}, nil
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logAttempt(ctx, &user.ID, req.Email, true, ip, userAgent)
	return &LoginResult{Token: token, User: user}, nil
}

// CompleteTOTPLogin exchanges a verified temp token for a full session.
// Code verification happens in the TOTP service before this is called.
func (s *UserService) CompleteTOTPLogin(ctx context.Context, userID int, ip, userAgent string) (*LoginResult, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	token, err := s.JWT.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	s.logAttempt(ctx, &user.ID, user.Email, true, ip, userAgent)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *UserService) Create(ctx context.Context, req *models.CreateUserRequest, actor string) (*models.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.AuditService.Record(ctx, actor, "user.created", "user", user.ID, fmt.Sprintf("%s (%s)", user.Email, user.Role))
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) SetActive(ctx context.Context, id int, active bool, actor string) error {
	if err := s.Repo.SetActive(ctx, id, active); err != nil {
		return err
	}
	s.AuditService.Record(ctx, actor, "user.status_changed", "user", id, fmt.Sprintf("active=%v", active))
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, id int, oldPassword, newPassword string) error {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, oldPassword) {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.Repo.UpdatePassword(ctx, id, hash)
}

func (s *UserService) LoginHistory(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	return s.LoginLogRepo.List(ctx, limit)
}
