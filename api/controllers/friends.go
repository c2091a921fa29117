package controllers

import (
	"net/http"

	"github.com/angelmondragon/filmorate-backend/api/responses"
	"github.com/angelmondragon/filmorate-backend/api/validators"
	"github.com/angelmondragon/filmorate-backend/internal/friends"
	"github.com/angelmondragon/filmorate-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
)

type friendshipResponse struct {
	UserID   int64                  `json:"userId"`
	FriendID int64                  `json:"friendId"`
	Status   enums.FriendshipStatus `json:"status"`
}

// FriendRequest records a friendship request from id to friendId. When
// friendId already asked for it, both edges become CONFIRMED.
func FriendRequest(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friends service unavailable"))
			return
		}

		userID, friendID, err := userPairIDs(r, "friendId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := svc.RequestFriend(ctx, userID, friendID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, friendshipResponse{UserID: userID, FriendID: friendID, Status: status})
	}
}

func FriendRemove(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friends service unavailable"))
			return
		}

		userID, friendID, err := userPairIDs(r, "friendId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.RemoveFriend(ctx, userID, friendID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func FriendStatus(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friends service unavailable"))
			return
		}

		userID, friendID, err := userPairIDs(r, "friendId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := svc.Status(ctx, userID, friendID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, friendshipResponse{UserID: userID, FriendID: friendID, Status: status})
	}
}

func FriendList(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friends service unavailable"))
			return
		}

		userID, err := validators.PathID(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.ListFriends(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// FriendCommon lists users both sides are friends with. Unknown users yield
// an empty list rather than 404.
func FriendCommon(svc friends.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "friends service unavailable"))
			return
		}

		userID, otherID, err := userPairIDs(r, "otherId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.CommonFriends(ctx, userID, otherID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func userPairIDs(r *http.Request, otherKey string) (int64, int64, error) {
	userID, err := validators.PathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	otherID, err := validators.PathID(r, otherKey)
	if err != nil {
		return 0, 0, err
	}
	return userID, otherID, nil
}
