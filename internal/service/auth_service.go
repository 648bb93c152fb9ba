package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"tinymath/internal/credentials"
	"tinymath/internal/models"
	"tinymath/internal/repository"
	"tinymath/internal/security"
	"tinymath/internal/validation"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyVerified    = errors.New("user already verified")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("account not verified")

	// ErrVerificationResent signals a login rejected on an unverified account
	// after a fresh code was minted and delivered
	ErrVerificationResent = errors.New("account not verified, a new code has been sent")

	ErrEmailDelivery = errors.New("failed to send email")
)

// UnverifiedLoginPolicy selects how login treats an unverified account
type UnverifiedLoginPolicy string

const (
	// UnverifiedReject rejects the login outright
	UnverifiedReject UnverifiedLoginPolicy = "reject"

	// UnverifiedAutoResend mints and delivers a fresh verification code,
	// then rejects the login
	UnverifiedAutoResend UnverifiedLoginPolicy = "auto_resend"
)

// Policy holds the code-lifecycle knobs that varied across deployments of
// this system: validity windows, unverified-login handling, and whether a
// failed code email fails the surrounding request.
type Policy struct {
	VerificationWindow time.Duration
	ResetWindow        time.Duration
	UnverifiedLogin    UnverifiedLoginPolicy
	RegisterEmailFatal bool
	ForgotEmailFatal   bool
}

// DefaultPolicy mirrors the production deployment: hour-long verification
// codes, 15-minute reset codes, auto-resend on unverified login, and fatal
// email failures on the flows a parent cannot recover from by retrying.
func DefaultPolicy() Policy {
	return Policy{
		VerificationWindow: time.Hour,
		ResetWindow:        15 * time.Minute,
		UnverifiedLogin:    UnverifiedAutoResend,
		RegisterEmailFatal: true,
		ForgotEmailFatal:   true,
	}
}

// AuthService handles account registration, credential verification and the
// one-time code lifecycle
type AuthService struct {
	userRepo *repository.UserRepository
	email    EmailSender
	signer   *security.TokenSigner
	policy   Policy
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, email EmailSender, signer *security.TokenSigner, policy Policy) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		email:    email,
		signer:   signer,
		policy:   policy,
	}
}

// Register creates a new unverified parent account and emails its
// verification code. The account is persisted before delivery is attempted,
// so a failed send (surfaced as ErrEmailDelivery when the policy makes it
// fatal) still leaves a recoverable account behind: the code can be re-sent.
func (s *AuthService) Register(ctx context.Context, fullName, email, gender, password string) (*models.User, error) {
	if err := validation.ValidateName(fullName); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidateGender(gender); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	email = NormalizeEmail(email)

	// Check if email already exists
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	code, err := credentials.GenerateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := time.Now().Add(s.policy.VerificationWindow)

	user, err := s.userRepo.CreateUser(fullName, email, gender, passwordHash, code, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.email.SendVerificationCode(ctx, email, code, s.policy.VerificationWindow); err != nil {
		if s.policy.RegisterEmailFatal {
			return nil, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
		}
		log.Printf("Warning: verification email to %s failed: %v", email, err)
	}

	return user, nil
}

// VerifyEmail consumes a pending verification code, marking the account
// verified and clearing the code and its expiry together
func (s *AuthService) VerifyEmail(email, code string) error {
	user, err := s.userRepo.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	if !user.CodeMatches(code, time.Now()) {
		return ErrInvalidCode
	}

	ok, err := s.userRepo.MarkVerified(user.ID, code)
	if err != nil {
		return fmt.Errorf("failed to mark verified: %w", err)
	}
	if !ok {
		// The code was consumed between the read and the update
		return ErrInvalidCode
	}

	return nil
}

// Login authenticates a parent and issues a signed bearer token. An
// unverified account never receives a token; depending on policy it is
// either rejected outright or sent a fresh verification code first.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.Verified {
		if s.policy.UnverifiedLogin == UnverifiedAutoResend {
			if err := s.issueVerificationCode(ctx, user); err != nil {
				// Delivery problems never unblock an unverified login
				log.Printf("Warning: auto-resend to %s failed: %v", user.Email, err)
			}
			return "", nil, ErrVerificationResent
		}
		return "", nil, ErrNotVerified
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}

// ResendVerificationCode regenerates and re-delivers the verification code.
// Delivery failure is logged but does not fail the request; the parent can
// simply ask again.
func (s *AuthService) ResendVerificationCode(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	if err := s.issueVerificationCode(ctx, user); err != nil {
		log.Printf("Warning: resend to %s failed: %v", user.Email, err)
	}

	return nil
}

// ForgotPassword generates a password reset code with the shorter reset
// window and emails it. Unlike resend, a failed send fails the request under
// the default policy: the parent is stuck until the email arrives.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetUserByEmail(NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	code, err := credentials.GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := time.Now().Add(s.policy.ResetWindow)

	if err := s.userRepo.SetVerificationCode(user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.email.SendPasswordResetCode(ctx, user.Email, code, s.policy.ResetWindow); err != nil {
		if s.policy.ForgotEmailFatal {
			return fmt.Errorf("%w: %v", ErrEmailDelivery, err)
		}
		log.Printf("Warning: reset email to %s failed: %v", user.Email, err)
	}

	return nil
}

// ResetPassword replaces the password for the account matching email and an
// unexpired reset code. Match and consumption happen in a single filtered
// update, so two concurrent resets with the same code cannot both win.
func (s *AuthService) ResetPassword(email, code, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := s.userRepo.ResetPasswordByCode(NormalizeEmail(email), code, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	if !ok {
		return ErrInvalidCode
	}

	return nil
}

// issueVerificationCode mints a fresh code, persists it, then delivers it
func (s *AuthService) issueVerificationCode(ctx context.Context, user *models.User) error {
	code, err := credentials.GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	expiresAt := time.Now().Add(s.policy.VerificationWindow)

	if err := s.userRepo.SetVerificationCode(user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	return s.email.SendVerificationCode(ctx, user.Email, code, s.policy.VerificationWindow)
}

// NormalizeEmail lowercases and trims an email address. Uniqueness is
// case-insensitive: addresses are stored and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
