// Package session persists per-browser state in Redis: one hash per session
// cookie holding the credential and queue-pass fields the upstream API
// expects its clients to carry (accessToken, user, userId, Queue-Token,
// Event-Id), plus a one-shot flash message and one-shot form tokens used to
// reject duplicate submits.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/molticket/webgate/internal/model"
)

// Hash field names. The four storage keys and userId are spelled exactly as
// the upstream contract expects them.
const (
	fieldAccessToken = "accessToken"
	fieldUser        = "user"
	fieldUserID      = "userId"
	fieldQueueToken  = "Queue-Token"
	fieldEventID     = "Event-Id"
	fieldFlash       = "flash"
)

// Session is a loaded snapshot of one browser's state. A session with an
// empty AccessToken is anonymous.
type Session struct {
	ID          string
	AccessToken string
	UserID      string
	QueueToken  string
	EventID     string
	User        *model.User
}

// Authenticated reports whether the session carries credentials.
func (s *Session) Authenticated() bool { return s != nil && s.AccessToken != "" }

// Role returns the user's role, or the empty role for anonymous sessions.
func (s *Session) Role() model.Role {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Role
}

// Expired reports whether the access token carries an exp claim that has
// already passed. Tokens without an exp claim never expire locally.
func (s *Session) Expired() bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	deadline, ok := tokenDeadline(s.AccessToken)
	return ok && !deadline.After(time.Now())
}

// Store reads and writes sessions.
type Store struct {
	rdb      *redis.Client
	ttl      time.Duration
	tokenTTL time.Duration // lifetime of one-shot form tokens
}

func NewStore(rdb *redis.Client, sessionTTL, formTokenTTL time.Duration) *Store {
	return &Store{rdb: rdb, ttl: sessionTTL, tokenTTL: formTokenTTL}
}

// NewID mints a session identifier for a fresh cookie.
func NewID() string { return uuid.NewString() }

func sessionKey(id string) string { return "session:" + id }

func formKey(id, token string) string { return "form:" + id + ":" + token }

// Load fetches the session hash. A missing hash yields an anonymous session
// with the same ID, so callers never deal with nil.
func (st *Store) Load(ctx context.Context, id string) (*Session, error) {
	fields, err := st.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:          id,
		AccessToken: fields[fieldAccessToken],
		UserID:      fields[fieldUserID],
		QueueToken:  fields[fieldQueueToken],
		EventID:     fields[fieldEventID],
	}
	if raw := fields[fieldUser]; raw != "" {
		var u model.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			s.User = &u
		}
	}
	return s, nil
}

// Login writes the credential triple in one pipeline so a half-written
// session (token present, user record missing) cannot be observed. The hash
// TTL is the configured session TTL, shortened to the access token's exp
// claim when the token carries one.
func (st *Store) Login(ctx context.Context, id string, res model.LoginResult) error {
	userJSON, err := json.Marshal(res.User())
	if err != nil {
		return err
	}
	ttl := st.ttl
	if deadline, ok := tokenDeadline(res.AccessToken); ok {
		if until := time.Until(deadline); until > 0 && until < ttl {
			ttl = until
		}
	}

	key := sessionKey(id)
	pipe := st.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		fieldAccessToken, res.AccessToken,
		fieldUser, string(userJSON),
		fieldUserID, strconv.FormatInt(res.UserID, 10),
	)
	pipe.Expire(ctx, key, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Clear drops the whole session hash: all five storage keys plus any flash.
func (st *Store) Clear(ctx context.Context, id string) error {
	return st.rdb.Del(ctx, sessionKey(id)).Err()
}

// SetQueuePass stores the queue admission pass granted when the user's turn
// became active. Queue-Token is the user id, Event-Id the admitted event.
func (st *Store) SetQueuePass(ctx context.Context, id, userID, eventID string) error {
	return st.rdb.HSet(ctx, sessionKey(id), fieldQueueToken, userID, fieldEventID, eventID).Err()
}

// ClearQueuePass removes the admission pass; called from the payment outcome
// pages and on logout.
func (st *Store) ClearQueuePass(ctx context.Context, id string) error {
	return st.rdb.HDel(ctx, sessionKey(id), fieldQueueToken, fieldEventID).Err()
}

// Touch extends the idle TTL on each request from an authenticated browser.
// The extension is clamped to the access token's exp claim, so touching a
// session never undoes the cap Login applied. A session whose token already
// expired is dropped instead of refreshed.
func (st *Store) Touch(ctx context.Context, s *Session) error {
	ttl := st.ttl
	if deadline, ok := tokenDeadline(s.AccessToken); ok {
		until := time.Until(deadline)
		if until <= 0 {
			return st.Clear(ctx, s.ID)
		}
		if until < ttl {
			ttl = until
		}
	}
	return st.rdb.Expire(ctx, sessionKey(s.ID), ttl).Err()
}

// Flash stores a one-shot notification to render on the next page. When the
// write recreates a hash that Clear just deleted, ExpireNX gives the stub a
// short lifetime instead of leaving it keyless forever; sessions that already
// carry a TTL keep it.
func (st *Store) Flash(ctx context.Context, id, message string) error {
	key := sessionKey(id)
	if err := st.rdb.HSet(ctx, key, fieldFlash, message).Err(); err != nil {
		return err
	}
	return st.rdb.ExpireNX(ctx, key, st.tokenTTL).Err()
}

// PopFlash returns and clears the pending notification, if any.
func (st *Store) PopFlash(ctx context.Context, id string) (string, error) {
	key := sessionKey(id)
	msg, err := st.rdb.HGet(ctx, key, fieldFlash).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if msg != "" {
		if err := st.rdb.HDel(ctx, key, fieldFlash).Err(); err != nil {
			return "", err
		}
	}
	return msg, nil
}

// IssueFormToken mints a one-shot token to embed in a form. Submitting the
// same form twice finds the token already consumed and is rejected.
func (st *Store) IssueFormToken(ctx context.Context, id string) (string, error) {
	token := uuid.NewString()
	if err := st.rdb.Set(ctx, formKey(id, token), "1", st.tokenTTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeFormToken atomically claims a form token. It returns false when the
// token is unknown or was already consumed.
func (st *Store) ConsumeFormToken(ctx context.Context, id, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := st.rdb.GetDel(ctx, formKey(id, token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// tokenDeadline reads the exp claim without verifying the signature; the
// gateway has no signing secret, it only needs the expiry to cap session
// lifetime.
func tokenDeadline(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
