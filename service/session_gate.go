package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Edney2025/edyfinance-pro/client"
	"github.com/Edney2025/edyfinance-pro/domain"
)

// SessionGate resolves whether the current visitor holds an authenticated
// identity and, if so, the administrative role. Authorization failure is
// a normal outcome here, never an error: callers either render the portal
// or redirect to login.
type SessionGate struct {
	identity client.IdentityService
	admins   client.AdminDirectory
	logger   *zap.Logger
}

func NewSessionGate(
	identity client.IdentityService,
	admins client.AdminDirectory,
	logger *zap.Logger,
) *SessionGate {
	return &SessionGate{identity: identity, admins: admins, logger: logger}
}

// ResolveAccess resolves the visitor's authorization state. A failure to
// reach the identity service yields an unauthenticated Access.
func (g *SessionGate) ResolveAccess(ctx context.Context) domain.Access {
	session, err := g.identity.GetSession(ctx)
	if err != nil {
		g.logger.Warn("falha ao resolver sessão, tratando como anônimo", zap.Error(err))
		return domain.Access{}
	}
	return g.accessFor(ctx, session)
}

// accessFor derives Access from a session. The admin lookup is secondary
// and best-effort: on any ambiguous failure the role stays false.
func (g *SessionGate) accessFor(ctx context.Context, session *domain.Session) domain.Access {
	if session == nil {
		return domain.Access{}
	}

	access := domain.Access{Authenticated: true, UserID: session.UserID}

	isAdmin, err := g.admins.IsAdmin(ctx, session.UserID)
	switch {
	case err == nil:
		access.IsAdmin = isAdmin
	case errors.Is(err, client.ErrNoRecord):
		// clean miss: a regular customer
	default:
		g.logger.Warn("falha ao consultar papel administrativo",
			zap.String("user_id", session.UserID),
			zap.Error(err))
	}
	return access
}

// OnChange subscribes fn to future authorization transitions (login,
// logout, token refresh). The returned release cancels the subscription
// deterministically: fn is never invoked after release returns.
func (g *SessionGate) OnChange(fn func(domain.Access)) (release func()) {
	var mu sync.Mutex
	released := false

	unsubscribe := g.identity.OnAuthStateChange(func(session *domain.Session) {
		mu.Lock()
		done := released
		mu.Unlock()
		if done {
			return
		}
		fn(g.accessFor(context.Background(), session))
	})

	return func() {
		mu.Lock()
		released = true
		mu.Unlock()
		unsubscribe()
	}
}
