package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

type RegisterUserInput struct {
	CenterID *uuid.UUID `json:"center_id,omitempty"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Role     string     `json:"role,omitempty"`
	Password string     `json:"password"`
}

// RegisterUser creates a staff account. The first account ever created
// becomes an admin regardless of the requested role, so a fresh
// deployment can bootstrap itself.
func (s *Service) RegisterUser(ctx context.Context, input RegisterUserInput) (models.User, error) {
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return models.User{}, fmt.Errorf("email and password required")
	}

	role := input.Role
	if role == "" {
		role = RoleStaff
	}
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return models.User{}, err
	}
	if count == 0 {
		role = RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	return s.repo.CreateUser(ctx, CreateUserInput{
		CenterID:     input.CenterID,
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: string(hash),
	})
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	hash, err := s.repo.GetPasswordHash(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}

	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}
