package friends

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/filmorate-backend/internal/repo"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
)

// EdgeStore reads and writes directed friendship edges.
type EdgeStore interface {
	// Status returns FriendshipStatusNone when no edge row exists.
	Status(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error)
	Upsert(ctx context.Context, userID, friendID int64, status enums.FriendshipStatus) error
	// Delete reports how many rows were removed.
	Delete(ctx context.Context, userID, friendID int64) (int64, error)
	// FriendIDs lists the targets of userID's outgoing edges in id order.
	FriendIDs(ctx context.Context, userID int64, confirmedOnly bool) ([]int64, error)
}

// Store adds atomic multi-edge updates on top of EdgeStore.
type Store interface {
	EdgeStore
	// Atomic runs fn so that every edge read and write inside it is applied
	// as one unit. Calls for the same unordered pair of users run one after
	// another. It returns gorm.ErrRecordNotFound without calling fn when
	// either user no longer exists.
	Atomic(ctx context.Context, userID, friendID int64, fn func(EdgeStore) error) error
}

var _ Store = (*Repository)(nil)

// Repository manages friendship persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a friendships repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Atomic(ctx context.Context, userID, friendID int64, fn func(EdgeStore) error) error {
	return r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := lockPair(tx, userID, friendID); err != nil {
			return err
		}
		return fn(NewRepository(tx))
	})
}

// lockPair row-locks both users in id order. A missing reverse edge takes no
// lock under READ COMMITTED, so the user rows serialize requests on the pair.
// NO KEY UPDATE leaves foreign key checks from other tables unblocked. SQLite
// ignores the locking clause and serializes writers on its own.
func lockPair(tx *gorm.DB, userID, friendID int64) error {
	ids := []int64{userID, friendID}
	if ids[0] > ids[1] {
		ids[0], ids[1] = ids[1], ids[0]
	}
	var locked []int64
	err := tx.Model(&models.User{}).
		Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &locked).Error
	if err != nil {
		return err
	}
	want := 2
	if ids[0] == ids[1] {
		want = 1
	}
	if len(locked) != want {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Status(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error) {
	var edge models.Friendship
	err := r.DB(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Take(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return enums.FriendshipStatusNone, nil
	}
	if err != nil {
		return "", err
	}
	return edge.Status, nil
}

func (r *Repository) Upsert(ctx context.Context, userID, friendID int64, status enums.FriendshipStatus) error {
	edge := models.Friendship{UserID: userID, FriendID: friendID, Status: status}
	return r.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(&edge).Error
}

func (r *Repository) Delete(ctx context.Context, userID, friendID int64) (int64, error) {
	res := r.DB(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friendship{})
	return res.RowsAffected, res.Error
}

func (r *Repository) FriendIDs(ctx context.Context, userID int64, confirmedOnly bool) ([]int64, error) {
	ids := []int64{}
	q := r.DB(ctx).Model(&models.Friendship{}).Where("user_id = ?", userID)
	if confirmedOnly {
		q = q.Where("status = ?", enums.FriendshipStatusConfirmed)
	}
	if err := q.Order("friend_id ASC").Pluck("friend_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
