package user

import (
	"context"

	"gorm.io/gorm"

	"payroll-receipts-backend/entities"
)

type (
	UserRepository interface {
		Create(ctx context.Context, user *entities.User) error
		GetByID(ctx context.Context, id string) (*entities.User, error)
		GetByEmail(ctx context.Context, email string) (*entities.User, error)
		Update(ctx context.Context, user *entities.User) error
		UpdatePassword(ctx context.Context, id string, hashed string) error
		MarkVerified(ctx context.Context, id string) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Update("password", hashed).Error
}

func (r *userRepository) MarkVerified(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Update("verified", true).Error
}
