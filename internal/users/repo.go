package users

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/repo"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Store is the persistence surface the users service needs. Missing rows are
// reported as gorm.ErrRecordNotFound by every implementation.
type Store interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	FindByEmailOrLogin(ctx context.Context, email, login string, excludeID int64) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

var _ Store = (*Repository)(nil)

// Repository exposes user-related persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a new user and fills in its generated id.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	return r.DB(ctx).Create(user).Error
}

// Update overwrites the mutable columns of an existing user.
func (r *Repository) Update(ctx context.Context, user *models.User) error {
	res := r.DB(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":    user.Email,
			"login":    user.Login,
			"name":     user.Name,
			"birthday": user.Birthday,
		})
	return repo.RequireAffected(res)
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads the users with the given ids ordered by id. Unknown ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.DB(ctx).Where("id IN ?", ids).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// List returns every user ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := r.DB(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByEmailOrLogin returns a user other than excludeID whose email or login
// matches, ignoring case and surrounding whitespace.
func (r *Repository) FindByEmailOrLogin(ctx context.Context, email, login string, excludeID int64) (*models.User, error) {
	var user models.User
	err := r.DB(ctx).
		Where("(lower(email) = ? OR lower(login) = ?) AND id <> ?",
			strings.ToLower(strings.TrimSpace(email)),
			strings.ToLower(strings.TrimSpace(login)),
			excludeID).
		Order("id ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user with their likes and every friendship edge touching them.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return repo.RequireAffected(tx.Where("id = ?", id).Delete(&models.User{}))
	})
}
