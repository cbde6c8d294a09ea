package postgres

import (
	"context"
	"errors"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

type PostgresUserRepo struct {
	db *gorm.DB
}

func NewPostgresUserRepo(db *gorm.DB) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (p *PostgresUserRepo) CreateUser(ctx context.Context, user model.User) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, customErrors.ErrAlreadyExists
		}
		return uuid.Nil, customErrors.WrapInternal(err, "CreateUser")
	}
	return user.ID, nil
}

func (p *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByID")
	}

	return u, nil
}

func (p *PostgresUserRepo) GetUserByIdentity(ctx context.Context, identity string) (model.User, error) {
	var u model.User
	res := p.db.WithContext(ctx).Where("username = ? OR email = ?", identity, identity).First(&u)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.User{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.User{}, customErrors.WrapInternal(err, "GetUserByIdentity")
	}

	return u, nil
}

func (p *PostgresUserRepo) UpdateUser(ctx context.Context, user model.User) error {
	res := p.db.WithContext(ctx).Save(&user)
	if err := res.Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return customErrors.ErrAlreadyExists
		}
		return customErrors.WrapInternal(err, "UpdateUser")
	}

	return nil
}

func (p *PostgresUserRepo) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "SetRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func (p *PostgresUserRepo) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("refresh_token", "")
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "ClearRefreshToken")
	}

	return nil
}

// RotateRefreshToken relies on the WHERE clause for atomicity: the UPDATE only
// lands when the stored value still equals the presented one, and postgres
// serializes writes to the row. The loser of a concurrent rotation sees zero
// rows affected.
func (p *PostgresUserRepo) RotateRefreshToken(ctx context.Context, id uuid.UUID, presented, next string) error {
	res := p.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND refresh_token = ?", id, presented).
		Update("refresh_token", next)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "RotateRefreshToken")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrStaleToken
	}

	return nil
}
