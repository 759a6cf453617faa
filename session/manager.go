package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
	"github.com/rs/zerolog/log"
)

type contextKey struct{}

// ContextWithID returns a copy of ctx carrying the caller's session id.
func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IDFromContext returns the session id carried by ctx, if any.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}

// Manager runs the callback chain and keeps the resulting session tokens in a Store.
type Manager struct {
	chain *Chain
	codec *Codec
	store Store
}

// NewManager wires the chain, codec and store together.
func NewManager(chain *Chain, codec *Codec, store Store) *Manager {
	return &Manager{chain: chain, codec: codec, store: store}
}

// MaxAge is the lifetime of sessions issued by this manager.
func (m *Manager) MaxAge() int {
	return int(m.codec.MaxAge().Seconds())
}

// SignIn runs the sign-in gate and token enrichment for ev, then stores the sealed token
// under a new session id. A rejected event returns ErrSignInRejected and stores nothing.
func (m *Manager) SignIn(ctx context.Context, ev Event) (string, error) {
	if !m.chain.SignIn(ctx, ev) {
		return "", apperrors.Wrapf(apperrors.ErrSignInRejected, "[Manager SignIn] %s", ev.Kind)
	}

	tok := Enrich(Token{}, ev.User)
	if !tok.Authenticated() {
		return "", apperrors.Wrapf(apperrors.ErrSignInRejected, "[Manager SignIn] %s produced no access token", ev.Kind)
	}

	sealed, err := m.codec.Seal(tok)
	if err != nil {
		return "", fmt.Errorf("[Manager SignIn] %w", err)
	}

	id := uuid.NewString()
	if err := m.store.Save(ctx, id, sealed, m.codec.MaxAge()); err != nil {
		return "", fmt.Errorf("[Manager SignIn] %w", err)
	}

	log.Info().Str("kind", string(ev.Kind)).Str("user_id", tok.ID).Msg("session created")
	return id, nil
}

// Session loads and projects the session stored under id. Sessions whose token is
// expired, unreadable or carries no access token are reported as ErrSessionNotFound.
// An expired token also matches ErrSessionExpired.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperrors.ErrSessionNotFound
	}

	sealed, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	tok, err := m.codec.Open(sealed)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenExpired) {
			_ = m.store.Delete(ctx, id)
			return nil, fmt.Errorf("[Manager Session] %w: %w", apperrors.ErrSessionNotFound, apperrors.ErrSessionExpired)
		}
		if errors.Is(err, apperrors.ErrInvalidToken) {
			log.Debug().Err(err).Msg("discarding unreadable session")
			_ = m.store.Delete(ctx, id)
			return nil, apperrors.Wrapf(apperrors.ErrSessionNotFound, "[Manager Session] %v", err)
		}
		return nil, err
	}

	// Reads run enrichment without a user, which leaves the token as issued.
	tok = Enrich(tok, nil)
	if !tok.Authenticated() {
		return nil, apperrors.ErrSessionNotFound
	}
	return Project(tok), nil
}

// Current returns the session for the id carried on ctx.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	id, ok := IDFromContext(ctx)
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return m.Session(ctx, id)
}

// SignOut deletes the session stored under id.
func (m *Manager) SignOut(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return m.store.Delete(ctx, id)
}
