package repository

import (
	"context"
	"errors"

	"firetask-backend/internal/models"

	"gorm.io/gorm"
)

// ErrEmailTaken is returned when the unique index on email rejects a create.
var ErrEmailTaken = errors.New("email already exists")

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}

	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserRepo) FindByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}
