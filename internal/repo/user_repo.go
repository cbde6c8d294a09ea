package repo

import (
	"context"

	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	// GetUserByIdentity resolves a login identity that may be either the
	// username or the email address.
	GetUserByIdentity(ctx context.Context, identity string) (model.User, error)

	UpdateUser(ctx context.Context, u model.User) error

	// SetRefreshToken unconditionally overwrites the persisted refresh token,
	// invalidating whatever session held the previous value.
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// ClearRefreshToken is idempotent; clearing an already clear value is not
	// an error.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error

	// RotateRefreshToken swaps the persisted value from presented to next in a
	// single compare-and-swap write. Returns ErrStaleToken when the persisted
	// value no longer equals presented, which is how a replayed or revoked
	// refresh token loses the race.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, presented, next string) error
}
