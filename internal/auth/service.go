package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/SeasonLedger/internal/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminUsername is the only principal the ledger knows.
const AdminUsername = "admin"

const bcryptCost = 12

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInternalError      = errors.New("internal Server Error")
)

type BootstrapResult string

const (
	BootstrapCreated   BootstrapResult = "created"
	BootstrapUpdated   BootstrapResult = "updated"
	BootstrapUnchanged BootstrapResult = "unchanged"
)

type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, username, password string) (bool, error)
	EnsureAdmin(ctx context.Context, password string) (BootstrapResult, error)
	JWTAccessTokenMiddleware() func(http.Handler) http.Handler
}

type service struct {
	repo       CredentialRepository
	jwtManager JWTManagerInterface
	logger     *log.Logger
	cost       int
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
	dummyErr  error
}

func NewAuthService(repo CredentialRepository, jwtManager JWTManagerInterface, logger *log.Logger) Service {
	return newService(repo, jwtManager, logger, bcryptCost)
}

func newService(repo CredentialRepository, jwtManager JWTManagerInterface, logger *log.Logger, cost int) *service {
	return &service{
		repo:       repo,
		jwtManager: jwtManager,
		logger:     logger.WithComponent(log.ComponentAuth),
		cost:       cost,
		now:        time.Now,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	credential, err := s.authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.WarnContext(ctx, "login rejected", log.FieldOperation, log.OpLogin, log.FieldUsername, username)
		}
		return "", err
	}

	token, err := s.jwtManager.GenerateAccessJWT(credential.ID, credential.Username)
	if err != nil {
		s.logger.ErrorContext(ctx, "error during JWT generation", log.FieldOperation, log.OpLogin, log.FieldError, err)
		return "", ErrInternalError
	}
	s.logger.InfoContext(ctx, "login succeeded", log.FieldOperation, log.OpLogin, log.FieldUsername, credential.Username)
	return token, nil
}

func (s *service) Verify(ctx context.Context, username, password string) (bool, error) {
	_, err := s.authenticate(ctx, username, password)
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// authenticate runs exactly one bcrypt compare whether or not the user
// exists.
func (s *service) authenticate(ctx context.Context, username, password string) (*Credential, error) {
	credential, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			s.logger.ErrorContext(ctx, "error when getting user from database", log.FieldError, err)
			return nil, ErrInternalError
		}
		dummy, err := s.dummyPasswordHash()
		if err != nil {
			s.logger.ErrorContext(ctx, "could not prepare dummy hash", log.FieldError, err)
			return nil, ErrInternalError
		}
		_ = bcrypt.CompareHashAndPassword(dummy, []byte(password))
		return nil, ErrInvalidCredentials
	}

	if !doPasswordsMatch(credential.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return credential, nil
}

func (s *service) dummyPasswordHash() ([]byte, error) {
	s.dummyOnce.Do(func() {
		s.dummyHash, s.dummyErr = bcrypt.GenerateFromPassword([]byte("season-ledger-dummy-password"), s.cost)
	})
	return s.dummyHash, s.dummyErr
}

// EnsureAdmin makes the stored admin password match password. Running it
// again with the same password is a no-op.
func (s *service) EnsureAdmin(ctx context.Context, password string) (BootstrapResult, error) {
	if password == "" {
		return "", errors.New("admin password must not be empty")
	}

	existing, err := s.repo.FindByUsername(ctx, AdminUsername)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", fmt.Errorf("could not look up admin user: %w", err)
	}

	if existing != nil && doPasswordsMatch(existing.PasswordHash, password) {
		return BootstrapUnchanged, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("could not hash admin password: %w", err)
	}

	if existing != nil {
		if err := s.repo.UpdatePasswordHash(ctx, existing.ID, string(hash)); err != nil {
			return "", fmt.Errorf("could not update admin password: %w", err)
		}
		return BootstrapUpdated, nil
	}

	credential := &Credential{
		ID:           uuid.NewString(),
		Username:     AdminUsername,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, credential); err != nil {
		return "", fmt.Errorf("could not create admin user: %w", err)
	}
	return BootstrapCreated, nil
}

func doPasswordsMatch(hashedPassword, currPassword string) bool {
	err := bcrypt.CompareHashAndPassword(
		[]byte(hashedPassword), []byte(currPassword))
	return err == nil
}
