package services

import (
	"context"
	"time"

	"stratplan/apperrors"
	"stratplan/middlewares"
	"stratplan/models"
	repository "stratplan/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, input models.LoginInput) (string, *models.User, error)
}

type authService struct {
	users     repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(users repository.UserRepository, jwtSecret string, jwtExpiry time.Duration) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (s *authService) Login(ctx context.Context, input models.LoginInput) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			// Same message whether the account is missing or the
			// password is wrong.
			return "", nil, apperrors.Authentication("invalid email or password")
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return "", nil, apperrors.Authentication("invalid email or password")
	}

	now := time.Now()
	claims := middlewares.Claims{
		UserID:     user.ID.Hex(),
		Role:       user.Role,
		Department: user.Department,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", nil, apperrors.Storage(err)
	}

	return token, user, nil
}
