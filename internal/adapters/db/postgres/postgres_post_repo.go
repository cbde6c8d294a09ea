package postgres

import (
	"context"
	"errors"

	customErrors "github.com/clipstream/clipstream/internal/domain/errors"
	"github.com/clipstream/clipstream/internal/domain/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresPostRepo struct {
	db *gorm.DB
}

func NewPostgresPostRepo(db *gorm.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

func (p *PostgresPostRepo) CreatePost(ctx context.Context, post model.Post) (uuid.UUID, error) {
	res := p.db.WithContext(ctx).Create(&post)
	if err := res.Error; err != nil {
		return uuid.Nil, customErrors.WrapInternal(err, "CreatePost")
	}
	return post.ID, nil
}

func (p *PostgresPostRepo) GetPostByID(ctx context.Context, id uuid.UUID) (model.Post, error) {
	var post model.Post
	res := p.db.WithContext(ctx).Where("id = ?", id).First(&post)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Post{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Post{}, customErrors.WrapInternal(err, "GetPostByID")
	}

	return post, nil
}

func (p *PostgresPostRepo) UpdatePost(ctx context.Context, post model.Post) error {
	res := p.db.WithContext(ctx).Save(&post)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdatePost")
	}

	return nil
}

func (p *PostgresPostRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	res := p.db.WithContext(ctx).Delete(&model.Post{}, "id = ?", id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeletePost")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}

	return nil
}

func (p *PostgresPostRepo) ListPostsByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	res := p.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&posts)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListPostsByOwner")
	}

	return posts, nil
}
