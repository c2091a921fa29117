// Package friends implements the directed friendship graph: requests with
// reciprocal confirmation, symmetric removal and common-friend lookups.
package friends

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/internal/users"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
)

// UserLookup resolves the users at either end of an edge.
type UserLookup interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

// ServiceParams groups dependencies for the friends service.
type ServiceParams struct {
	Store   Store
	Users   UserLookup
	Logger  *logger.Logger
	Metrics *metrics.DomainMetrics
	// CommonConfirmedOnly limits CommonFriends to CONFIRMED edges.
	CommonConfirmedOnly bool
}

// Service exposes the friendship state machine and graph queries.
type Service interface {
	RequestFriend(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error)
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	Status(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error)
	ListFriends(ctx context.Context, userID int64) ([]users.UserDTO, error)
	CommonFriends(ctx context.Context, userID, otherID int64) ([]users.UserDTO, error)
}

type service struct {
	store         Store
	users         UserLookup
	logg          *logger.Logger
	metrics       *metrics.DomainMetrics
	confirmedOnly bool
}

// NewService builds a friends service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "friendship store is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user lookup is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		store:         params.Store,
		users:         params.Users,
		logg:          params.Logger,
		metrics:       params.Metrics,
		confirmedOnly: params.CommonConfirmedOnly,
	}, nil
}

// RequestFriend records userID's request towards friendID. A pending request
// in the opposite direction is confirmed and the new edge is created already
// confirmed. The returned status is the one of the userID -> friendID edge.
func (s *service) RequestFriend(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error) {
	if err := s.ensurePair(ctx, userID, friendID); err != nil {
		return "", err
	}
	ctx = s.logg.WithPair(ctx, userID, friendID)

	var (
		result   enums.FriendshipStatus
		promoted bool
		created  bool
	)
	err := s.store.Atomic(ctx, userID, friendID, func(edges EdgeStore) error {
		reverse, err := edges.Status(ctx, friendID, userID)
		if err != nil {
			return err
		}
		if reverse == enums.FriendshipStatusPending {
			if err := edges.Upsert(ctx, friendID, userID, enums.FriendshipStatusConfirmed); err != nil {
				return err
			}
			promoted = true
		}

		forward, err := edges.Status(ctx, userID, friendID)
		if err != nil {
			return err
		}
		if forward != enums.FriendshipStatusNone {
			result = forward
			return nil
		}

		forward = enums.FriendshipStatusPending
		if promoted {
			forward = enums.FriendshipStatusConfirmed
		}
		if err := edges.Upsert(ctx, userID, friendID, forward); err != nil {
			return err
		}
		created = true
		result = forward
		return nil
	})
	if err != nil {
		return "", pairError(err, userID, friendID, "request friend")
	}

	if promoted {
		s.metrics.IncFriendship("confirmed")
		s.logg.Info(ctx, "friendship.reverse_confirmed")
	}
	if created {
		s.metrics.IncFriendship("created_" + strings.ToLower(result.String()))
		s.logg.Info(s.logg.WithField(ctx, "status", result.String()), "friendship.created")
	}
	return result, nil
}

// RemoveFriend deletes the edges in both directions. It fails with NotFound
// when neither edge existed.
func (s *service) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.ensurePair(ctx, userID, friendID); err != nil {
		return err
	}
	ctx = s.logg.WithPair(ctx, userID, friendID)

	var removed int64
	err := s.store.Atomic(ctx, userID, friendID, func(edges EdgeStore) error {
		forward, err := edges.Delete(ctx, userID, friendID)
		if err != nil {
			return err
		}
		reverse, err := edges.Delete(ctx, friendID, userID)
		if err != nil {
			return err
		}
		removed = forward + reverse
		return nil
	})
	if err != nil {
		return pairError(err, userID, friendID, "remove friend")
	}
	if removed == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "no friendship between users %d and %d", userID, friendID)
	}

	s.metrics.IncFriendship("removed")
	s.logg.Info(ctx, "friendship.removed")
	return nil
}

// Status returns the stored status of the userID -> friendID edge, or NONE.
func (s *service) Status(ctx context.Context, userID, friendID int64) (enums.FriendshipStatus, error) {
	status, err := s.store.Status(ctx, userID, friendID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load friendship status")
	}
	return status, nil
}

// ListFriends returns the users userID has an edge to, pending or confirmed.
func (s *service) ListFriends(ctx context.Context, userID int64) ([]users.UserDTO, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.store.FriendIDs(ctx, userID, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list friends")
	}
	return s.resolve(ctx, ids)
}

// CommonFriends intersects the friend lists of both users. An unknown user
// on either side yields an empty list.
func (s *service) CommonFriends(ctx context.Context, userID, otherID int64) ([]users.UserDTO, error) {
	for _, id := range []int64{userID, otherID} {
		if err := s.ensureUser(ctx, id); err != nil {
			if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
				return []users.UserDTO{}, nil
			}
			return nil, err
		}
	}

	left, err := s.store.FriendIDs(ctx, userID, s.confirmedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list friends")
	}
	right, err := s.store.FriendIDs(ctx, otherID, s.confirmedOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list friends")
	}
	return s.resolve(ctx, Intersect(left, right))
}

// Intersect returns the ids present in both slices, ascending and without duplicates.
func Intersect(left, right []int64) []int64 {
	set := make(map[int64]struct{}, len(left))
	for _, id := range left {
		set[id] = struct{}{}
	}
	out := make([]int64, 0)
	for _, id := range right {
		if _, ok := set[id]; ok {
			out = append(out, id)
			delete(set, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *service) resolve(ctx context.Context, ids []int64) ([]users.UserDTO, error) {
	if len(ids) == 0 {
		return []users.UserDTO{}, nil
	}
	list, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load users")
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return users.FromModels(list), nil
}

func (s *service) ensurePair(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return pkgerrors.New(pkgerrors.CodeValidation, "users cannot befriend themselves")
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.ensureUser(ctx, friendID)
}

// pairError maps an Atomic failure; a user deleted after ensurePair surfaces
// as gorm.ErrRecordNotFound.
func pairError(err error, userID, friendID int64, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("user %d or %d not found", userID, friendID))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func (s *service) ensureUser(ctx context.Context, id int64) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("user %d not found", id))
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return nil
}
