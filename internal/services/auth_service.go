package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nonprofit-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

// AdminIdentity is a resolved, active user with the admin or super_admin role.
type AdminIdentity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
	now func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg, now: time.Now}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. It returns "" when the header has another shape.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// VerifyToken validates an HS256 access token and returns its subject.
func (s *AuthService) VerifyToken(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, ErrMissingToken
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// CheckActiveUser returns ErrInvalidToken unless id names an active account.
func (s *AuthService) CheckActiveUser(ctx context.Context, id uuid.UUID) error {
	var user models.User
	err := s.db.WithContext(ctx).Select("id", "is_active").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if !user.IsActive {
		return ErrInvalidToken
	}
	return nil
}

// VerifyUser is VerifyToken plus a check that the subject is still an active
// account, so a token for a deleted or disabled user is rejected with 401.
func (s *AuthService) VerifyUser(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.VerifyToken(token)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.CheckActiveUser(ctx, userID); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// VerifyAdminFromRequest resolves the bearer token of the request to an
// active admin. It returns nil on any failure and never logs; callers decide
// how to report the denial.
func (s *AuthService) VerifyAdminFromRequest(c *fiber.Ctx) *AdminIdentity {
	return s.VerifyAdmin(c.UserContext(), BearerToken(c.Get(fiber.HeaderAuthorization)))
}

func (s *AuthService) VerifyAdmin(ctx context.Context, token string) *AdminIdentity {
	userID, err := s.VerifyToken(token)
	if err != nil {
		return nil
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil
	}
	if !user.IsActive || !user.IsAdmin() {
		return nil
	}
	return &AdminIdentity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// Login checks credentials and issues an access token. Five consecutive
// failures lock the account for fifteen minutes.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, invalidArgument("email and password are required")
	}

	db := s.db.WithContext(ctx)
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.now()
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	if user.IsLocked(now) {
		return nil, ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, s.recordFailedLogin(db, &user, now)
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"login_attempts": 0,
		"locked_until":   nil,
		"last_login_at":  now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := s.GenerateAccessToken(&user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.cfg.JWTAccessExpiry.Seconds()),
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		},
	}, nil
}

func (s *AuthService) recordFailedLogin(db *gorm.DB, user *models.User, now time.Time) error {
	attempts := user.LoginAttempts + 1
	updates := map[string]interface{}{"login_attempts": attempts}
	locked := attempts >= maxLoginAttempts
	if locked {
		updates["login_attempts"] = 0
		updates["locked_until"] = now.Add(lockoutDuration)
	}

	if err := db.Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	if locked {
		return ErrAccountLocked
	}
	return ErrInvalidCredentials
}

func (s *AuthService) GenerateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
