package httpapi

import (
	"context"

	"github.com/weekendsync/availability-api/internal/domain"
)

type userKey struct{}

func WithUser(ctx context.Context, userID domain.UserID) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

func UserFromContext(ctx context.Context) (domain.UserID, bool) {
	v, ok := ctx.Value(userKey{}).(domain.UserID)
	return v, ok && v != ""
}
