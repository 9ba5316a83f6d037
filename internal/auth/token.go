package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"kamau_backend/internal/models"
)

var (
	// ErrTokenExpired is returned for structurally valid tokens whose
	// expiry has elapsed; the client should re-authenticate.
	ErrTokenExpired = errors.New("token expired")
	// ErrInvalidToken covers malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the signed assertion embedded in a bearer token. Permissions
// are snapshotted at issuance; liveness (isActive) is re-checked against
// the store on every protected request.
type Claims struct {
	AccountID   string           `json:"id"`
	Username    string           `json:"username,omitempty"`
	Email       string           `json:"email,omitempty"`
	Role        models.AdminRole `json:"role,omitempty"`
	Permissions []string         `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 session tokens. Admin and
// end-user sessions carry different validity windows.
type TokenManager struct {
	secret   []byte
	adminTTL time.Duration
	userTTL  time.Duration
}

func NewTokenManager(secret string, adminTTL, userTTL time.Duration) *TokenManager {
	if adminTTL <= 0 {
		adminTTL = 24 * time.Hour
	}
	if userTTL <= 0 {
		userTTL = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), adminTTL: adminTTL, userTTL: userTTL}
}

// IssueAdminToken signs a token embedding the admin's identity, role and
// permission set as they stand at issuance.
func (tm *TokenManager) IssueAdminToken(admin *models.Admin) (string, error) {
	return tm.sign(&Claims{
		AccountID:   admin.ID,
		Username:    admin.Username,
		Email:       admin.Email,
		Role:        admin.Role,
		Permissions: []string(admin.Permissions),
	}, tm.adminTTL)
}

// IssueUserToken signs a token for an end-user session.
func (tm *TokenManager) IssueUserToken(user *models.User) (string, error) {
	return tm.sign(&Claims{
		AccountID: user.ID,
		Username:  user.Username,
		Email:     user.Email,
	}, tm.userTTL)
}

func (tm *TokenManager) sign(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.AccountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// ParseToken validates signature and expiry. Expiry is reported as
// ErrTokenExpired, every other failure as ErrInvalidToken; callers must
// keep the two outcomes distinct.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
