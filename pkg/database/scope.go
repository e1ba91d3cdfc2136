package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type contextKey string

const (
	// RequestScopeKey is the context key for storing the request-scoped
	// database connection.
	RequestScopeKey contextKey = "requestScope"
)

// RequestScope wraps one pooled connection for the duration of a request.
// Match runs and gate resolutions read across org boundaries, so scoping is
// per request rather than per tenant; every read sees the latest committed
// state and no engine state outlives the request.
type RequestScope struct {
	Conn *pgxpool.Conn
}

// Close releases the connection back to the pool.
func (s *RequestScope) Close() {
	if s.Conn == nil {
		return
	}
	s.Conn.Release()
}

// Acquire takes a connection from the pool for one request.
// The returned RequestScope MUST be closed with defer scope.Close().
func (db *DB) Acquire(ctx context.Context) (*RequestScope, error) {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return &RequestScope{Conn: conn}, nil
}

// GetRequestScope retrieves the request-scoped database connection from
// context. Returns nil and false if not present.
func GetRequestScope(ctx context.Context) (*RequestScope, bool) {
	scope, ok := ctx.Value(RequestScopeKey).(*RequestScope)
	return scope, ok
}

// SetRequestScope stores the request-scoped database connection in context.
func SetRequestScope(ctx context.Context, scope *RequestScope) context.Context {
	return context.WithValue(ctx, RequestScopeKey, scope)
}
