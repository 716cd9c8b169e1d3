// Package services holds the business logic of the auth subsystem. Services
// never touch HTTP types: credentials come in as plain values and leave as
// token pairs; the transport layer owns cookies and status codes.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/auth"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/mail"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/models"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/repositories/users"
)

// TokenPair is the result of a successful session mint: the access token is
// returned to the caller, the refresh token is written into its carrier by
// the transport layer.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccountService implements login, registration, session refresh, and
// passcode-gated password recovery over the credential store.
type AccountService struct {
	users  users.Repository
	issuer *auth.TokenIssuer
	sealer *auth.PasscodeSealer
	mailer mail.Mailer
}

func NewAccountService(users users.Repository, issuer *auth.TokenIssuer, sealer *auth.PasscodeSealer, mailer mail.Mailer) *AccountService {
	return &AccountService{users: users, issuer: issuer, sealer: sealer, mailer: mailer}
}

// Login verifies the credentials and mints a session. Unknown email and
// wrong password produce the identical generic error so the response cannot
// be used to enumerate accounts.
func (s *AccountService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash, user.Salt) {
		return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
	}

	return s.generateTokenPair(user)
}

// Register creates a credential for the email proven by the passcode record
// and mints the first session. The passcode carries the email, so control of
// the inbox is established before the account exists.
func (s *AccountService) Register(ctx context.Context, sealedRecord string, req *models.RegisterRequest) (*TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ValidationError(err.Error())
	}

	email, err := s.sealer.Verify(sealedRecord, req.Passcode)
	if err != nil {
		return nil, err
	}

	ph := auth.HashPassword(req.Password)
	user := &models.User{
		Email:        email,
		Username:     req.Username,
		PasswordHash: ph.Hash,
		Salt:         ph.Salt,
		Audience:     string(auth.AudienceUser),
	}

	user, err = s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.generateTokenPair(user)
}

// Refresh trades a still-valid refresh token for a fresh access token.
// The credential record is re-read so a refreshed session reflects the
// current username and audience, not the ones at mint time.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.AuthenticationError(common.MsgAuthenticationFailed)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	return s.issuer.IssueAccess(identityFor(user))
}

// RequestPasscode issues a one-time recovery code for an existing account:
// the code is emailed in plaintext and only its hash leaves this method,
// sealed inside the returned record. Unknown emails get the same generic
// authentication error as a failed login.
func (s *AccountService) RequestPasscode(ctx context.Context, email string) (string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.AuthenticationError(common.MsgAuthenticationFailed)
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	code, err := auth.NewPasscode()
	if err != nil {
		return "", fmt.Errorf("error generating passcode: %w", err)
	}

	sealed, err := s.sealer.Seal(email, code)
	if err != nil {
		return "", fmt.Errorf("error sealing passcode record: %w", err)
	}

	if err := s.mailer.SendPasscode(ctx, email, code); err != nil {
		return "", fmt.Errorf("error sending passcode: %w", err)
	}

	return sealed, nil
}

// ChangePassword replaces the credential's password after matching the
// supplied passcode against the sealed record, then mints a fresh session.
func (s *AccountService) ChangePassword(ctx context.Context, sealedRecord string, req *models.ChangePasswordRequest) (*TokenPair, error) {
	if err := req.Validate(); err != nil {
		return nil, common.ValidationError(err.Error())
	}

	email, err := s.sealer.Verify(sealedRecord, req.Passcode)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ph := auth.HashPassword(req.NewPassword)
	if err := s.users.UpdatePassword(ctx, user.ID, ph.Hash, ph.Salt); err != nil {
		return nil, fmt.Errorf("error updating password: %w", err)
	}

	return s.generateTokenPair(user)
}

func (s *AccountService) generateTokenPair(user *models.User) (*TokenPair, error) {
	identity := identityFor(user)

	accessToken, err := s.issuer.IssueAccess(identity)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := s.issuer.IssueRefresh(identity)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func identityFor(user *models.User) auth.Identity {
	return auth.Identity{
		SubjectID: user.ID,
		Audience:  auth.Audience(user.Audience),
		Username:  user.Username,
		ServiceID: user.ServiceID,
	}
}
