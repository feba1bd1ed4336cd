package jwt

import (
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var RoleValues = []string{string(RoleStaff), string(RoleManager), string(RoleAdmin)}

func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// CanManageShifts reports whether the role may schedule shifts and review attendance.
func (r Role) CanManageShifts() bool {
	return r == RoleManager || r == RoleAdmin
}

const TokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(staffID int64, role Role) (token string, expiresAt int64, err error)
	GenerateAccessTokenWithTTL(staffID int64, role Role, ttl time.Duration) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
	now                       func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New(jwa.HS256.String(), []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                       time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(staffID int64, role Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	return j.GenerateAccessTokenWithTTL(staffID, role, expDuration)
}

func (j *JWTService) GenerateAccessTokenWithTTL(staffID int64, role Role, ttl time.Duration) (string, int64, error) {
	if staffID <= 0 {
		return "", 0, fmt.Errorf("staff id must be positive, got %d", staffID)
	}
	if !role.Valid() {
		return "", 0, fmt.Errorf("unknown role %q", role)
	}
	if ttl <= 0 {
		return "", 0, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	issuedAt := j.now()
	expiresAt := issuedAt.Add(ttl).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"staff_id": staffID,
		"role":     string(role),
		"type":     TokenTypeAccess,
		"iat":      issuedAt.Unix(),
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}
