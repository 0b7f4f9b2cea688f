package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/divijg19/Physiolink/internal/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("role must be patient or pt")
	ErrNameRequired       = errors.New("first name and last name are required")
)

type Service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

// Register creates a user and returns it with a signed token. Admin accounts
// are provisioned out of band, not through self-registration.
func (s *Service) Register(ctx context.Context, email, password, role string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	if role != RolePatient && role != RoleTherapist {
		return nil, "", ErrInvalidRole
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return &u, token, nil
}

// Login verifies credentials and returns the user with a fresh token. Lookup
// and hash failures collapse into ErrInvalidCredentials so callers cannot
// probe which emails are registered.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("load user: %w", err)
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return u, token, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	p, err := s.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// SaveProfile creates or updates the caller's profile in place.
func (s *Service) SaveProfile(ctx context.Context, userID uuid.UUID, in ProfileInput) (*Profile, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, ErrNameRequired
	}

	p := Profile{
		ID:              uuid.New(),
		UserID:          userID,
		FirstName:       strings.TrimSpace(in.FirstName),
		LastName:        strings.TrimSpace(in.LastName),
		Age:             in.Age,
		Gender:          in.Gender,
		Condition:       in.Condition,
		Goals:           in.Goals,
		Specialty:       in.Specialty,
		Location:        in.Location,
		Bio:             in.Bio,
		Credentials:     in.Credentials,
		ProfileImageURL: in.ProfileImageURL,
	}

	saved, err := s.repo.UpsertProfile(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// ListTherapists pages through therapists matching the filter.
func (s *Service) ListTherapists(ctx context.Context, filter TherapistFilter) (*TherapistPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	page, err := s.repo.ListTherapists(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list therapists: %w", err)
	}
	return page, nil
}

func (s *Service) GetTherapist(ctx context.Context, id uuid.UUID, date string) (*TherapistCard, error) {
	card, err := s.repo.GetTherapistByID(ctx, id, date)
	if err != nil {
		if errors.Is(err, ErrTherapistNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load therapist: %w", err)
	}
	return card, nil
}
