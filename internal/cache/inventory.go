package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	VerifyKeyPrefix = "verify:%s"
)

const (
	UserTTL = 5 * time.Minute
	// VerifyTTL bounds how long an email-verification link stays valid.
	VerifyTTL = 24 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func VerifyKey(token string) string {
	return fmt.Sprintf(VerifyKeyPrefix, token)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// StoreVerificationToken maps a one-time token to the pending user id.
func StoreVerificationToken(ctx context.Context, token string, userID uint) error {
	if client == nil {
		return fmt.Errorf("redis unavailable")
	}
	return client.Set(ctx, VerifyKey(token), userID, VerifyTTL).Err()
}

// ConsumeVerificationToken resolves and deletes a verification token.
// Returns (0, nil) when the token is unknown or expired.
func ConsumeVerificationToken(ctx context.Context, token string) (uint, error) {
	if client == nil {
		return 0, fmt.Errorf("redis unavailable")
	}
	key := VerifyKey(token)
	id, err := client.Get(ctx, key).Uint64()
	if err != nil {
		return 0, nil
	}
	client.Del(ctx, key)
	return uint(id), nil
}
