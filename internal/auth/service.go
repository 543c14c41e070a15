package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"
	"github.com/petermazzocco/temple-desk/internal/store"
	"github.com/petermazzocco/temple-desk/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountClass selects one of the disjoint account stores.
type AccountClass int

const (
	Users AccountClass = iota
	Admins
)

func (c AccountClass) String() string {
	if c == Admins {
		return "admin"
	}
	return "user"
}

func (c AccountClass) collection() string {
	if c == Admins {
		return store.Admins
	}
	return store.Users
}

// AccountService implements registration and login for every account class.
type AccountService struct {
	db       store.Database
	tokens   *TokenIssuer
	validate *validator.Validate
}

func NewAccountService(db store.Database, tokens *TokenIssuer) *AccountService {
	return &AccountService{
		db:       db,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Tokens exposes the issuer so callers can verify tokens it produced.
func (s *AccountService) Tokens() *TokenIssuer {
	return s.tokens
}

func (s *AccountService) Register(ctx context.Context, class AccountClass, req models.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	accounts := s.db.Collection(class.collection())

	var existing models.Account
	err := accounts.FindOne(ctx, bson.M{"email": req.Email}, &existing)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to look up %s: %w", class, err)
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = accounts.InsertOne(ctx, models.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", class, err)
	}
	return nil
}

func (s *AccountService) Login(ctx context.Context, class AccountClass, req models.LoginRequest) (models.LoginResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.LoginResponse{}, fmt.Errorf("%w: %v", ErrMissingFields, err)
	}

	var account models.Account
	err := s.db.Collection(class.collection()).FindOne(ctx, bson.M{"email": req.Email}, &account)
	if errors.Is(err, store.ErrNotFound) {
		return models.LoginResponse{}, ErrAccountNotFound
	}
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("failed to look up %s: %w", class, err)
	}

	if !CheckPassword(req.Password, account.Password) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID.Hex())
	if err != nil {
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{
		Token:  token,
		UserID: account.ID,
		Name:   account.Name,
	}, nil
}
