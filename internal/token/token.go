// Package token issues and verifies the signed claim bags used for access,
// refresh and password-reset credentials. Tokens share one HS256 secret and
// are told apart by a mandatory "type" claim: a refresh token can never pass
// where an access token is required.
package token

import (
	"net/http"
	"strconv"
	"time"

	"hubb-assist/internal/config"
	"hubb-assist/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
)

type Kind string

const (
	KindAccess        Kind = "access"
	KindRefresh       Kind = "refresh"
	KindPasswordReset Kind = "password_reset"
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed claims or kind mismatch. Callers get no finer detail.
var ErrInvalidToken = apperror.New(
	apperror.CodeUnauthorized,
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// Claims is the verified content of a token. UserID is set for access and
// refresh tokens; Email is set for password-reset tokens.
type Claims struct {
	UserID   uint
	TenantID uint
	Role     string
	Email    string
	Kind     Kind
}

type Issuer struct {
	cfg config.JWT
}

func NewIssuer(cfg config.JWT) *Issuer {
	return &Issuer{cfg: cfg}
}

// AccessTTL exposes the access token lifetime for expires_in responses.
func (i *Issuer) AccessTTL() time.Duration {
	return i.cfg.AccessTTL
}

func (i *Issuer) IssueAccess(userID, tenantID uint, role string) (string, error) {
	return i.sign(jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(userID), 10),
		"tenant_id": tenantID,
		"role":      role,
	}, KindAccess, i.cfg.AccessTTL)
}

func (i *Issuer) IssueRefresh(userID, tenantID uint) (string, error) {
	return i.sign(jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(userID), 10),
		"tenant_id": tenantID,
	}, KindRefresh, i.cfg.RefreshTTL)
}

// IssuePasswordReset binds the token to (email, tenant) so the reset phase
// can cross-check the stored user record.
func (i *Issuer) IssuePasswordReset(email string, tenantID uint) (string, error) {
	now := time.Now()
	return i.sign(jwt.MapClaims{
		"sub":       email,
		"tenant_id": tenantID,
		"nbf":       now.Unix(),
	}, KindPasswordReset, i.cfg.ResetTTL)
}

func (i *Issuer) sign(claims jwt.MapClaims, kind Kind, ttl time.Duration) (string, error) {
	claims["type"] = string(kind)
	claims["exp"] = time.Now().Add(ttl).Unix()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.cfg.Secret))
}

// Verify checks signature, expiry and kind, and returns the decoded claims.
func (i *Issuer) Verify(tokenString string, expected Kind) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(i.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	if kind, _ := mapClaims["type"].(string); kind != string(expected) {
		return nil, ErrInvalidToken
	}

	tenantFloat, ok := mapClaims["tenant_id"].(float64)
	if !ok || tenantFloat <= 0 {
		return nil, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		TenantID: uint(tenantFloat),
		Kind:     expected,
	}

	if expected == KindPasswordReset {
		claims.Email = sub
	} else {
		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || userID == 0 {
			return nil, ErrInvalidToken
		}
		claims.UserID = uint(userID)
	}

	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}
