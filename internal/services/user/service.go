// Package user provisions platform accounts. Account creation assigns a
// unique public account ID and opens the member's wallet in the same unit of
// work.
package user

import (
	"context"
	"errors"

	"sprpay/internal/models"
	"sprpay/internal/repositories"
	"sprpay/internal/services/ledger"
	"sprpay/internal/services/referral"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service interface {
	Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type service struct {
	repos   repositories.Manager
	baseURL string
}

func NewService(repos repositories.Manager, baseURL string) Service {
	if repos == nil {
		panic("repository manager is required")
	}
	return &service{repos: repos, baseURL: baseURL}
}

func (s *service) Register(ctx context.Context, input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.repos.ExecuteInTransaction(func(m repositories.Manager) error {
		codes := referral.NewCodeGenerator(m.Users(), m.Subscriptions(), s.baseURL)
		accountID, err := codes.GenerateUniqueAccountID()
		if err != nil {
			return err
		}

		user = &models.User{
			AccountID: accountID,
			Name:      input.Name,
			Email:     input.Email,
			Password:  string(hashed),
			Status:    "active",
		}
		if err := m.Users().Create(user); err != nil {
			return err
		}

		led := ledger.NewService(m.Wallets(), nil, ledger.Config{}, nil)
		_, err = led.CreateWallet(ctx, user.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repos.Users().GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.repos.Users().GetByID(id)
}
