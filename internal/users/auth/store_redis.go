// Copyright (c) 2026 Truyen Thong. All rights reserved.
// Author: thai.dovan.mta@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dothai/truyenthong/internal/platform/apperr"
	"github.com/dothai/truyenthong/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository on top of Redis.
//
// # Key Layout
//
//   - auth:session:<tokenhash>    → JSON-encoded Session, expires with the token
//   - auth:usersessions:<userid>  → SET of the user's active token hashes
//
// The per-user set makes RevokeAll and RevokeOthers possible without a scan.
// Stale set members (sessions that expired naturally) resolve to missing keys
// and are pruned on the next revocation pass.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores the session under its token hash and indexes it by user.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Serialization or storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_repo_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return apperr.ValidationError("Session expiry must be in the future")
	}

	sessionKey := constants.RedisPrefixSession + session.TokenHash
	userKey := constants.RedisPrefixUserSessions + session.UserID

	// Session value and user index live and die together.
	pipe := repository.client.TxPipeline()
	pipe.Set(context, sessionKey, payload, ttl)
	pipe.SAdd(context, userKey, session.TokenHash)
	pipe.Expire(context, userKey, RefreshTokenTTL)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash resolves a token hash into its active session.

Description: Returns apperr.NotFound if the session is absent, expired, or revoked.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	sessionKey := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(context, sessionKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_repo_unmarshal_failed: %w", err)
	}

	session.TokenHash = tokenHash
	return session, nil
}

/*
Revoke deletes the session stored under the given token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		// Already gone: revocation is idempotent.
		if apperr.As(err) != nil {
			return nil
		}
		return err
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, constants.RedisPrefixSession+tokenHash)
	pipe.SRem(context, constants.RedisPrefixUserSessions+session.UserID, tokenHash)

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every active session belonging to the user.

Description: Security nuking of all active sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	return repository.revokeSet(context, userID, "")
}

/*
RevokeOthers deletes all of the user's sessions except the one to keep.

Parameters:
  - context: context.Context
  - userID: string
  - keepTokenHash: string

Returns:
  - error: Filtered revocation failures
*/
func (repository *RedisSessionRepository) RevokeOthers(context context.Context, userID, keepTokenHash string) error {
	return repository.revokeSet(context, userID, keepTokenHash)
}

// revokeSet removes every token hash in the user's index except keepTokenHash.
// An empty keepTokenHash removes everything including the index itself.
func (repository *RedisSessionRepository) revokeSet(context context.Context, userID, keepTokenHash string) error {
	userKey := constants.RedisPrefixUserSessions + userID

	hashes, err := repository.client.SMembers(context, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_list_failed: %w", err)
	}

	pipe := repository.client.TxPipeline()
	for _, hash := range hashes {
		if hash == keepTokenHash {
			continue
		}
		pipe.Del(context, constants.RedisPrefixSession+hash)
		pipe.SRem(context, userKey, hash)
	}
	if keepTokenHash == "" {
		pipe.Del(context, userKey)
	}

	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_set_failed: %w", err)
	}

	return nil
}
