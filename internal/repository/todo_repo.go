package repository

import (
	"context"

	"firetask-backend/internal/models"

	"gorm.io/gorm"
)

type TodoRepo struct {
	db *gorm.DB
}

func NewTodoRepo(db *gorm.DB) *TodoRepo {
	return &TodoRepo{db: db}
}

// ListActive returns the owner's active todos, newest first.
func (r *TodoRepo) ListActive(ctx context.Context, ownerID uint) ([]models.Todo, error) {
	var todos []models.Todo

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", ownerID, true).
		Order("id DESC").
		Find(&todos).Error

	if err != nil {
		return nil, err
	}

	return todos, nil
}

// FindActive returns the todo only if it belongs to the owner and has not
// been soft-deleted.
func (r *TodoRepo) FindActive(ctx context.Context, ownerID, id uint) (*models.Todo, error) {
	var todo models.Todo

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND active = ?", id, ownerID, true).
		First(&todo).Error

	if err != nil {
		return nil, err
	}

	return &todo, nil
}

func (r *TodoRepo) Create(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *TodoRepo) Update(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Save(todo).Error
}

// SoftDelete marks the todo inactive instead of removing the row.
func (r *TodoRepo) SoftDelete(ctx context.Context, todo *models.Todo) error {
	return r.db.WithContext(ctx).Model(todo).Update("active", false).Error
}
