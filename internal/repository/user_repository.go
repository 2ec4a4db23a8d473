package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitsync/internal/model"
)

// UserRepository defines persistence operations.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FirstOrCreate(ctx context.Context, user *model.User) (*model.User, error)
	UpdateRole(ctx context.Context, email string, role model.Role) (int64, error)
	List(ctx context.Context) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FirstOrCreate inserts user unless a user with the same email exists, then returns the stored row.
// Concurrent first sign-ins converge on one row through the unique email index.
func (r *userRepository) FirstOrCreate(ctx context.Context, user *model.User) (*model.User, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user).Error; err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, user.Email)
}

// UpdateRole sets the role of the user with email and returns the number of matched rows.
func (r *userRepository) UpdateRole(ctx context.Context, email string, role model.Role) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ?", email).
		Update("role", role)
	return res.RowsAffected, res.Error
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
