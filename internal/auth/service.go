package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/menucraft/menucraft/internal/typeid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service authenticates restaurant staff against the staff table and issues
// short-lived bearer tokens for the admin API.
type Service struct {
	pool      *pgxpool.Pool
	jwtSecret []byte
}

func NewService(pool *pgxpool.Pool, jwtSecret string) *Service {
	return &Service{
		pool:      pool,
		jwtSecret: []byte(jwtSecret),
	}
}

type AuthResult struct {
	Token string `json:"token"`
	Staff Staff  `json:"staff"`
}

type Staff struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	staffID := typeid.NewStaffID()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO staff (id, email, password, name) VALUES ($1, $2, $3, $4)
	`, staffID, email, string(hash), name)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}

	token, err := s.issueToken(staffID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		Staff: Staff{ID: staffID, Email: email, Name: name},
	}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var staff Staff
	var hash string
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, password, name FROM staff WHERE email = $1
	`, email).Scan(&staff.ID, &staff.Email, &hash, &staff.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(staff.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, Staff: staff}, nil
}

func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	staffID, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid token subject")
	}
	return staffID, nil
}

// EnsureAdmin seeds the bootstrap account when the staff table is empty so
// a fresh install can log in.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM staff`).Scan(&count); err != nil {
		return fmt.Errorf("count staff: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.Register(ctx, email, password, "Admin")
	return err
}

func (s *Service) issueToken(staffID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": staffID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
