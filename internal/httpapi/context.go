package httpapi

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const ctxFields ctxKey = iota

// requestFields is a single mutable value installed once per request by
// requestLogger, which wraps every route (only chi's Recoverer sits
// outside it). Everything downstream —
// authenticate, gameIDFrom, handlers — resolves it via the same pointer
// and fills in what it learns, so requestLogger can read the final values
// back after next.ServeHTTP returns without needing its own *http.Request
// to have been swapped out by a deeper middleware's r.WithContext call.
type requestFields struct {
	userID uuid.UUID
	email  string
	gameID uuid.UUID
}

func withRequestFields(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxFields, &requestFields{})
}

func fieldsFrom(ctx context.Context) *requestFields {
	if f, ok := ctx.Value(ctxFields).(*requestFields); ok {
		return f
	}
	return &requestFields{}
}

func setIdentity(ctx context.Context, userID uuid.UUID, email string) {
	f := fieldsFrom(ctx)
	f.userID = userID
	f.email = email
}

func setGameID(ctx context.Context, id uuid.UUID) {
	fieldsFrom(ctx).gameID = id
}

func userIDFrom(ctx context.Context) uuid.UUID {
	return fieldsFrom(ctx).userID
}

func emailFrom(ctx context.Context) string {
	return fieldsFrom(ctx).email
}

func gameIDFromContext(ctx context.Context) uuid.UUID {
	return fieldsFrom(ctx).gameID
}
