package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/data/repos"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/dbctx"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/logger"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/requestdata"
)

const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
)

type RegisterInput struct {
	ChurchName string `json:"church_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	AccessTTL() time.Duration
}

type authService struct {
	log       *logger.Logger
	users     repos.UserRepo
	churches  repos.ChurchRepo
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(log *logger.Logger, users repos.UserRepo, churches repos.ChurchRepo, jwtSecret string, accessTTL time.Duration) AuthService {
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &authService{
		log:       log.With("service", "AuthService"),
		users:     users,
		churches:  churches,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

// Register creates a new church together with its first user, who becomes
// the church admin.
func (as *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	in.ChurchName = strings.TrimSpace(in.ChurchName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if in.ChurchName == "" {
		return nil, "", fmt.Errorf("church_name is required")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return nil, "", fmt.Errorf("valid email is required")
	}
	if len(in.Password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters")
	}

	dbc := dbctx.Context{Ctx: ctx}
	exists, err := as.users.EmailExists(dbc, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	churches, err := as.churches.Create(dbc, []*domain.Church{{Name: in.ChurchName}})
	if err != nil {
		return nil, "", fmt.Errorf("create church: %w", err)
	}

	users, err := as.users.Create(dbc, []*domain.User{{
		ChurchID: churches[0].ID,
		Email:    in.Email,
		Password: string(hash),
		FullName: in.FullName,
		Role:     RoleAdmin,
	}})
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := as.generateAccessToken(users[0])
	if err != nil {
		return nil, "", err
	}
	return users[0], token, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required")
	}

	user, err := as.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *authService) generateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"church_id": user.ChurchID.String(),
		"role":      user.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// SetContextFromToken validates the bearer token and attaches the caller's
// tenant scope to the context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return ctx, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}

	userID, err := parseUUIDClaim(claims, "sub")
	if err != nil {
		return ctx, err
	}
	churchID, err := parseUUIDClaim(claims, "church_id")
	if err != nil {
		return ctx, err
	}
	role, _ := claims["role"].(string)

	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		ChurchID:    churchID,
		Role:        role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func parseUUIDClaim(claims jwt.MapClaims, key string) (uuid.UUID, error) {
	raw, _ := claims[key].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s claim", key)
	}
	return id, nil
}
