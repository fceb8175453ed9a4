package services

import (
	"fmt"
	"log"
	"strings"

	"focusboard/internal/models"
	"focusboard/internal/repositories"
)

type UserService interface {
	Register(email, plainPassword string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService // nil when SMTP is not configured
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

// Register seeds the single dashboard account. The product is personal:
// once a user row exists, further registrations are rejected.
func (s *userService) Register(email, plainPassword string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(plainPassword) == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	count, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := s.authService.HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email); err != nil {
			// warn but do not fail registration
			log.Printf("[user][register] warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByEmail(email string) (*models.User, error) {
	return s.repo.GetByEmail(strings.TrimSpace(strings.ToLower(email)))
}
