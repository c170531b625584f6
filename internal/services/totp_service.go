package services

import (
	"context"
	"fmt"

	"github.com/pquerna/otp/totp"

	"theater-backend/internal/models"
	"theater-backend/internal/repositories"
)

type TOTPService struct {
	Repo         *repositories.TOTPRepository
	UserRepo     *repositories.UserRepository
	AuditService *AuditService
}

func NewTOTPService(repo *repositories.TOTPRepository, userRepo *repositories.UserRepository, auditService *AuditService) *TOTPService {
	return &TOTPService{Repo: repo, UserRepo: userRepo, AuditService: auditService}
}

// Setup generates a new secret for a user and returns the otpauth URL for
// the authenticator app. The secret stays unconfirmed until the first valid
// code is verified.
func (s *TOTPService) Setup(ctx context.Context, user *models.User) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "theater-backend",
		AccountName: user.Email,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	if err := s.Repo.SaveSecret(ctx, user.ID, key.Secret()); err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// ConfirmSetup verifies the first code and enables 2FA for the account.
func (s *TOTPService) ConfirmSetup(ctx context.Context, userID int, code string) error {
	secret, confirmed, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return fmt.Errorf("no pending TOTP setup: %w", err)
	}
	if confirmed {
		return fmt.Errorf("TOTP already enabled")
	}

	if !totp.Validate(code, secret) {
		return fmt.Errorf("invalid code")
	}

	if err := s.Repo.Confirm(ctx, userID); err != nil {
		return err
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, true); err != nil {
		return err
	}

	s.AuditService.Record(ctx, "system", "user.totp_enabled", "user", userID, "")
	return nil
}

// Verify checks a login code against the user's confirmed secret.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	secret, confirmed, err := s.Repo.GetSecret(ctx, userID)
	if err != nil {
		return fmt.Errorf("TOTP not set up: %w", err)
	}
	if !confirmed {
		return fmt.Errorf("TOTP setup not confirmed")
	}

	if !totp.Validate(code, secret) {
		return fmt.Errorf("invalid code")
	}
	return nil
}

// Disable removes 2FA from the account.
func (s *TOTPService) Disable(ctx context.Context, userID int, actor string) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}

	s.AuditService.Record(ctx, actor, "user.totp_disabled", "user", userID, "")
	return nil
}
