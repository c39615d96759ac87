package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pyramide/event-api/internal/domain"
	"github.com/pyramide/event-api/internal/pkg/clock"
	"github.com/pyramide/event-api/internal/repository"
)

//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks

var ErrLoginCodeNotFound = repository.ErrLoginCodeNotFound

type AuthAccountRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.Account, error)
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	SetRole(ctx context.Context, id uint, role domain.Role) error
}

type LoginCodeRepository interface {
	Save(ctx context.Context, code domain.LoginCode) error
	Find(ctx context.Context, username string) (domain.LoginCode, error)
	Delete(ctx context.Context, username string) error
	IncrementAttempts(ctx context.Context, username string) (int, error)
}

type AuthInvitations interface {
	FindByIdentity(ctx context.Context, identity string) (domain.Invitation, error)
	Accept(ctx context.Context, identity string) (bool, error)
}

type ParticipantRegistrar interface {
	Register(ctx context.Context, account domain.Account) error
}

// MessageSender delivers a text to a guest over the identity channel.
type MessageSender interface {
	Send(ctx context.Context, username, text string) error
}

type Alerter interface {
	Alert(ctx context.Context, text string) error
}

type AuthOptions struct {
	CodeTTL     time.Duration
	CodeLength  int
	MaxAttempts int
	SendTimeout time.Duration
	Production  bool
	IsAdmin     func(username string) bool
}

type AuthService struct {
	accounts    AuthAccountRepository
	codes       LoginCodeRepository
	invitations AuthInvitations
	capacity    ParticipantRegistrar
	sender      MessageSender
	alerter     Alerter
	clock       clock.Clock
	opts        AuthOptions
}

func NewAuthService(
	accounts AuthAccountRepository,
	codes LoginCodeRepository,
	invitations AuthInvitations,
	capacity ParticipantRegistrar,
	sender MessageSender,
	alerter Alerter,
	clk clock.Clock,
	opts AuthOptions,
) *AuthService {
	if opts.IsAdmin == nil {
		opts.IsAdmin = func(string) bool { return false }
	}

	return &AuthService{
		accounts:    accounts,
		codes:       codes,
		invitations: invitations,
		capacity:    capacity,
		sender:      sender,
		alerter:     alerter,
		clock:       clk,
		opts:        opts,
	}
}

// RequestCode stores a fresh login code for username and sends it over the
// identity channel. When delivery fails outside production the code is
// returned so the caller can log in anyway; in production the failure is
// reported and ops are alerted. The stored code is kept in both cases.
func (s *AuthService) RequestCode(ctx context.Context, username string) (string, error) {
	username = domain.NormalizeHandle(username)

	code, err := generateCode(s.opts.CodeLength)
	if err != nil {
		return "", fmt.Errorf("generateCode -> %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	err = s.codes.Save(ctx, domain.LoginCode{
		Username:  username,
		CodeHash:  string(hash),
		ExpiresAt: s.clock.Now().Add(s.opts.CodeTTL),
	})
	if err != nil {
		return "", fmt.Errorf("s.codes.Save -> %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.opts.SendTimeout)
	defer cancel()

	if err = s.sender.Send(sendCtx, username, codeMessage(code, s.opts.CodeTTL)); err != nil {
		zap.L().Warn("failed to deliver login code", zap.String("username", username), zap.Error(err))

		if !s.opts.Production {
			return code, nil
		}

		if alertErr := s.alerter.Alert(ctx, fmt.Sprintf("Login code delivery failed for @%s: %v", username, err)); alertErr != nil {
			zap.L().Error("failed to alert ops", zap.Error(alertErr))
		}

		return "", domain.ErrUpstreamUnavailable
	}

	return "", nil
}

// VerifyCode checks code for username and resolves the account it logs into.
// A code is single use: it is deleted on success, on expiry and once too many
// wrong attempts were made.
func (s *AuthService) VerifyCode(ctx context.Context, username, code string) (domain.Account, error) {
	username = domain.NormalizeHandle(username)

	stored, err := s.codes.Find(ctx, username)
	if err != nil {
		if errors.Is(err, ErrLoginCodeNotFound) {
			return domain.Account{}, domain.ErrInvalidCredential
		}
		return domain.Account{}, fmt.Errorf("s.codes.Find -> %w", err)
	}

	if stored.Expired(s.clock.Now()) {
		s.discardCode(ctx, username)
		return domain.Account{}, domain.ErrExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(stored.CodeHash), []byte(code)) != nil {
		attempts, err := s.codes.IncrementAttempts(ctx, username)
		if err != nil {
			return domain.Account{}, fmt.Errorf("s.codes.IncrementAttempts -> %w", err)
		}
		if attempts >= s.opts.MaxAttempts {
			s.discardCode(ctx, username)
		}

		return domain.Account{}, domain.ErrInvalidCredential
	}

	if err = s.codes.Delete(ctx, username); err != nil {
		return domain.Account{}, fmt.Errorf("s.codes.Delete -> %w", err)
	}

	account, err := s.resolveAccount(ctx, username)
	if err != nil {
		return domain.Account{}, err
	}

	if err = s.capacity.Register(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("s.capacity.Register -> %w", err)
	}
	account.Admitted = account.Admitted || !account.Role.Can(domain.CapBypassCapacity)

	// Accepting credits the inviter, so it only happens once the account is in.
	if _, err = s.invitations.Accept(ctx, username); err != nil {
		return domain.Account{}, fmt.Errorf("s.invitations.Accept -> %w", err)
	}

	return account, nil
}

func (s *AuthService) resolveAccount(ctx context.Context, username string) (domain.Account, error) {
	isAdmin := s.opts.IsAdmin(username)

	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return domain.Account{}, fmt.Errorf("s.accounts.FindByUsername -> %w", err)
	}

	if err == nil {
		if account.IsBanned {
			return domain.Account{}, domain.ErrBanned
		}

		if isAdmin && account.Role != domain.RoleAdmin {
			if err = s.accounts.SetRole(ctx, account.ID, domain.RoleAdmin); err != nil {
				return domain.Account{}, fmt.Errorf("s.accounts.SetRole -> %w", err)
			}
			account.Role = domain.RoleAdmin
		}

		if account.Role == domain.RoleGuest {
			invited, err := s.hasLiveInvitation(ctx, username)
			if err != nil {
				return domain.Account{}, err
			}
			if !invited {
				return domain.Account{}, domain.ErrNotInvited
			}
		}

		return account, nil
	}

	if isAdmin {
		created, err := s.accounts.Create(ctx, domain.Account{
			Username:   username,
			ExternalID: username,
			Role:       domain.RoleAdmin,
		})
		if err != nil {
			return domain.Account{}, fmt.Errorf("s.accounts.Create -> %w", err)
		}

		return created, nil
	}

	inv, err := s.invitations.FindByIdentity(ctx, username)
	if err != nil {
		if errors.Is(err, ErrInvitationNotFound) {
			return domain.Account{}, domain.ErrNotInvited
		}
		return domain.Account{}, fmt.Errorf("s.invitations.FindByIdentity -> %w", err)
	}
	if inv.Status == domain.InvitationCancelled {
		return domain.Account{}, domain.ErrNotInvited
	}

	inviterID := inv.InviterID
	created, err := s.accounts.Create(ctx, domain.Account{
		Username:   username,
		ExternalID: username,
		FullName:   inv.InviteeName,
		Role:       domain.RoleGuest,
		InvitedBy:  &inviterID,
	})
	if err != nil {
		return domain.Account{}, fmt.Errorf("s.accounts.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) hasLiveInvitation(ctx context.Context, username string) (bool, error) {
	inv, err := s.invitations.FindByIdentity(ctx, username)
	if err != nil {
		if errors.Is(err, ErrInvitationNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("s.invitations.FindByIdentity -> %w", err)
	}

	return inv.Status != domain.InvitationCancelled, nil
}

func (s *AuthService) discardCode(ctx context.Context, username string) {
	if err := s.codes.Delete(ctx, username); err != nil {
		zap.L().Warn("failed to delete login code", zap.String("username", username), zap.Error(err))
	}
}

func generateCode(length int) (string, error) {
	if length <= 0 {
		length = 6
	}

	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", length, n), nil
}

func codeMessage(code string, ttl time.Duration) string {
	return fmt.Sprintf("Event Pyramide\n\nYour verification code: %s\n\nValid for %d minutes.", code, int(ttl.Minutes()))
}
