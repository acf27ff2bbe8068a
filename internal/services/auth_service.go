package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gamesync/internal/apperror"
	"gamesync/internal/models"
	"gamesync/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, credential verification and token
// issuance. It is the only service that touches password hashes.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: 24 * time.Hour,
	}
}

// Register creates a new account. Username, email and steam id are each
// checked for uniqueness, first collision reported. The password is stored
// only as a bcrypt hash and the account gets the default role set.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, error) {
	if _, err := s.userRepo.GetByUsername(req.Username); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("username '%s' already taken", req.Username))
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(req.Email); err == nil {
		return nil, apperror.Conflict(fmt.Sprintf("email '%s' already registered", req.Email))
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}
	if req.SteamID != "" {
		if _, err := s.userRepo.GetBySteamID(req.SteamID); err == nil {
			return nil, apperror.Conflict(fmt.Sprintf("steam id '%s' already registered", req.SteamID))
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Roles:    []string{models.RoleUser},
	}
	if req.SteamID != "" {
		steamID := req.SteamID
		user.SteamID = &steamID
	}

	if err := s.userRepo.Create(user); err != nil {
		// Existence checks above race against concurrent writes; the store's
		// unique indexes are the real guarantee.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict("username, email or steam id already registered")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token. Unknown users
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", apperror.Unauthenticated("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Unauthenticated("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, apperror.Unauthenticated("invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperror.Unauthenticated("invalid token")
}

// ResolveUser turns a bearer token into the account performing the call.
// Every authenticated operation starts here; the resolved user is then passed
// explicitly into the services instead of read from ambient state.
func (s *AuthService) ResolveUser(tokenString string) (*models.User, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, apperror.Unauthenticated("invalid token")
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.Unauthenticated("invalid token")
		}
		return nil, err
	}
	return user, nil
}
