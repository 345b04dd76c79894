package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/political-canvas/canvass-api/internal/constants"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameRequired     = errors.New("username is required")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidRole          = errors.New("invalid role")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService is the credential service: it owns password hashing and
// username/password verification.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Register creates a volunteer. Open registration never grants a privileged
// role; see CreateUser for the admin path.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	return s.createUser(input.Username, input.Password, models.RoleVolunteer)
}

// CreateUserInput is the admin-only registration variant.
type CreateUserInput struct {
	Username string
	Password string
	Role     string
}

// CreateUser creates a user with any role. Callers must have checked the
// admin capability already.
func (s *AuthService) CreateUser(input CreateUserInput) (*models.User, error) {
	role := models.RoleVolunteer
	if input.Role != "" {
		parsed, err := models.ParseRole(input.Role)
		if err != nil {
			return nil, ErrInvalidRole
		}
		role = parsed
	}
	return s.createUser(input.Username, input.Password, role)
}

func (s *AuthService) createUser(rawUsername, password string, role models.Role) (*models.User, error) {
	username := strings.TrimSpace(rawUsername)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Authenticate verifies credentials and returns the user.
func (s *AuthService) Authenticate(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues a token for the user.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.Authenticate(input)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// ListVolunteers returns every user holding the volunteer role.
func (s *AuthService) ListVolunteers() ([]models.User, error) {
	users, err := s.userRepo.ListByRole(models.RoleVolunteer)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteers: %w", err)
	}
	return users, nil
}

// UpdateRole is the only path that changes a role after creation.
func (s *AuthService) UpdateRole(id uint64, rawRole string) (*models.User, error) {
	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, ErrInvalidRole
	}

	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRole(id, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	user.Role = role
	return user, nil
}
