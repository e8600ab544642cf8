package token

// Sessions are stateless, so rejecting a staff account or deleting a user
// cannot recall tokens that are already in the wild. The revocation list
// closes that window: it records, per user id, a cut-off instant, and the
// auth middleware rejects any token issued at or before it. Entries live in
// Redis with a TTL equal to the refresh token lifetime, after which every
// affected token has expired on its own anyway. Without Redis the list is
// a no-op and the staleness window is bounded by the access token TTL.

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokePrefix = "revoked:"

// RevocationList tracks per-user token cut-off timestamps in Redis.
// The zero-value-like form with a nil client disables all checks.
type RevocationList struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRevocationList builds a revocation list over the given client, which
// may be nil. ttl should be the refresh token lifetime so entries outlive
// every token they need to block.
func NewRevocationList(rdb *redis.Client, ttl time.Duration) *RevocationList {
	return &RevocationList{rdb: rdb, ttl: ttl}
}

// Revoke invalidates every token issued to userID up to now.
func (l *RevocationList) Revoke(ctx context.Context, userID uint64) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := revokePrefix + strconv.FormatUint(userID, 10)
	return l.rdb.Set(ctx, key, time.Now().UTC().Unix(), l.ttl).Err()
}

// IsRevoked reports whether a token issued at issuedAt for userID has been
// recalled. Lookup errors fail open: a Redis outage must not lock every
// authenticated caller out of the API.
func (l *RevocationList) IsRevoked(ctx context.Context, userID uint64, issuedAt time.Time) bool {
	if l == nil || l.rdb == nil || issuedAt.IsZero() {
		return false
	}
	key := revokePrefix + strconv.FormatUint(userID, 10)
	val, err := l.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	cutoff, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return false
	}
	return issuedAt.Unix() <= cutoff
}
