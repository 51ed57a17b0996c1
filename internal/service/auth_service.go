package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SyaefulEffendi/bahasaku-server/internal/dto"
	"github.com/SyaefulEffendi/bahasaku-server/internal/model"
	"github.com/SyaefulEffendi/bahasaku-server/internal/repository"
	"github.com/SyaefulEffendi/bahasaku-server/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const birthDateLayout = "2006-01-02"

type AuthService interface {
	// Register creates an account and logs it in. callerID is the already
	// authenticated user when the request carried a token, which is what
	// allows an Admin to assign a role.
	Register(ctx context.Context, input dto.RegisterInput, callerID *uint) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	rdb         *redis.Client
	secret      string
	sessionTTL  time.Duration
	rememberTTL time.Duration
	lockWindow  time.Duration
}

func NewAuthService(repo repository.UserRepository, rdb *redis.Client, secret string, sessionTTL, rememberTTL, lockWindow time.Duration) AuthService {
	return &authService{
		repo:        repo,
		rdb:         rdb,
		secret:      secret,
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		lockWindow:  lockWindow,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput, callerID *uint) (*dto.AuthResponse, error) {
	if err := s.ensureUnique(ctx, input.Email, input.PhoneNumber); err != nil {
		return nil, err
	}

	birthDate, err := parseBirthDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	// Role defaults to User. An explicit role is honored only when the
	// request was made with a valid Admin token.
	role := model.RoleUser
	if input.Role != nil && *input.Role != "" && callerID != nil {
		caller, err := s.repo.FindByID(ctx, *callerID)
		if err == nil && caller.IsAdmin() && model.ValidRole(*input.Role) {
			role = *input.Role
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		FullName:      input.FullName,
		Email:         input.Email,
		PhoneNumber:   normalizeOptional(input.PhoneNumber),
		PasswordHash:  string(hashedPassword),
		UserType:      input.UserType,
		Role:          role,
		Location:      normalizeOptional(input.Location),
		BirthDate:     birthDate,
		ProfilePicURL: model.DefaultProfilePicURL,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or phone number is already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	token, err := s.issueToken(user.ID, s.sessionTTL)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{
		Message:     "registration successful",
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, input.Identifier, "login", s.lockWindow)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%w: too many login attempts, try again later", apperror.ErrRateLimitExceeded)
	}

	user, err := s.repo.FindByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so callers cannot probe
			// which part failed.
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, invalidCredentials()
	}

	if err := ClearRateLimit(ctx, s.rdb, input.Identifier, "login"); err != nil {
		return nil, err
	}

	ttl := s.sessionTTL
	if input.RememberMe {
		ttl = s.rememberTTL
	}

	token, err := s.issueToken(user.ID, ttl)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &dto.AuthResponse{
		Message:     "login successful",
		AccessToken: token,
		User:        user,
	}, nil
}

func (s *authService) ensureUnique(ctx context.Context, email string, phone *string) error {
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: email is already registered", apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if phone != nil && *phone != "" {
		if _, err := s.repo.FindByPhone(ctx, *phone); err == nil {
			return fmt.Errorf("%w: phone number is already registered", apperror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	return nil
}

// issueToken signs a token whose payload carries only the user id. Role and
// profile data are re-resolved from storage on every authorized request.
func (s *authService) issueToken(userID uint, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func invalidCredentials() error {
	return fmt.Errorf("%w: invalid email/phone or password", apperror.ErrUnauthorized)
}

func parseBirthDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(birthDateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date must use the YYYY-MM-DD format", apperror.ErrInvalidInput)
	}
	return &parsed, nil
}

func normalizeOptional(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
