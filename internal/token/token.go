package token // package token mints and verifies stateless session tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verification leeway applied to the exp claim. Matches the allowance the
// deployed clients were built against, so slightly skewed clocks do not
// bounce freshly issued tokens.
const Leeway = 5 * time.Minute

// Verification failure modes. There are exactly two: a token past its
// expiry, and everything else (bad signature, wrong algorithm, garbage).
var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("invalid token")
)

// Claims is the verified content of a session token: who the caller is and
// what role they held when the token was minted. IssuedAt feeds the
// revocation check in the auth middleware.
type Claims struct {
	UserID   uint64
	Role     string
	IssuedAt time.Time
}

// Service issues and verifies HS256-signed session tokens. Both access and
// refresh tokens carry the same claim set and differ only in TTL; a token
// is self-contained and never persisted, so validity is purely a function
// of signature and expiry.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// New builds a Service from the signing secret and the two TTLs expressed
// in the units the configuration uses (minutes for access, days for
// refresh). The caller guarantees the secret is non-empty; config.Load
// refuses to start the process without one.
func New(secret string, accessTTLMin, refreshTTLDays int) *Service {
	return &Service{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessTTLMin) * time.Minute,
		refreshTTL: time.Duration(refreshTTLDays) * 24 * time.Hour,
	}
}

// AccessTTL exposes the configured access token lifetime.
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL exposes the configured refresh token lifetime.
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueAccess mints a short-lived access token for the given identity.
func (s *Service) IssueAccess(userID uint64, role string) (string, error) {
	return s.issue(userID, role, s.accessTTL)
}

// IssueRefresh mints a long-lived refresh token for the given identity.
// Refresh tokens are not rotated: the same token may be exchanged for new
// access tokens repeatedly until it expires.
func (s *Service) IssueRefresh(userID uint64, role string) (string, error) {
	return s.issue(userID, role, s.refreshTTL)
}

// issue signs a token with the standard claim layout: sub carries the user
// id, role the role name, exp and iat the lifetime bounds.
func (s *Service) issue(userID uint64, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string. It returns ErrExpired when
// the token is structurally sound but past its expiry (beyond the leeway),
// and ErrInvalid for anything that cannot be trusted: wrong signature,
// unexpected algorithm, malformed payload. No other validity levels exist.
func (s *Service) Verify(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is ever used for signing; reject anything else before
		// looking at the payload.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return s.secret, nil
	}, jwt.WithLeeway(Leeway))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return Claims{}, ErrInvalid
	}

	out := Claims{}
	switch sub := mc["sub"].(type) {
	case float64:
		// JSON numbers decode as float64.
		out.UserID = uint64(sub)
	default:
		return Claims{}, ErrInvalid
	}
	role, ok := mc["role"].(string)
	if !ok || role == "" {
		return Claims{}, ErrInvalid
	}
	out.Role = role
	if iat, ok := mc["iat"].(float64); ok {
		out.IssuedAt = time.Unix(int64(iat), 0).UTC()
	}
	return out, nil
}
