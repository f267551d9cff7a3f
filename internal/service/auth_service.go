package service

import (
	"errors"

	"taraas/config"
	"taraas/internal/auth"
	"taraas/internal/domain"
	"taraas/internal/models"
	"taraas/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg          *config.Config
	customerRepo *repository.CustomerRepository
}

func NewAuthService(cfg *config.Config, customerRepo *repository.CustomerRepository) *AuthService {
	return &AuthService{cfg: cfg, customerRepo: customerRepo}
}

func (s *AuthService) Register(name, email, password, city string) (*models.Customer, string, string, error) {
	exists, err := s.customerRepo.ExistsByEmail(email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	c := &models.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		City:         city,
		Role:         domain.RoleCustomer,
	}
	if err := s.customerRepo.Create(c); err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, c.ID, c.Email, c.Role)
	if err != nil {
		return c, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, c.ID)
	if err != nil {
		return c, access, "", err
	}
	return c, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.Customer, string, string, error) {
	c, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, c.ID, c.Email, c.Role)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, c.ID)
	return c, access, refresh, nil
}

func (s *AuthService) Refresh(refreshToken string) (access, refresh string, err error) {
	customerID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	c, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return "", "", err
	}
	access, _ = auth.GenerateAccessToken(&s.cfg.JWT, c.ID, c.Email, c.Role)
	refresh, _ = auth.GenerateRefreshToken(&s.cfg.JWT, c.ID)
	return access, refresh, nil
}
