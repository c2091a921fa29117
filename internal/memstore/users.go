package memstore

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
)

// Users is the user view of the store.
type Users struct {
	s *Store
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if u.s.userTaken(user.Email, user.Login, 0) {
		return ErrDuplicateUser
	}
	u.s.userID++
	now := u.s.now()
	user.ID = u.s.userID
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.users[user.ID] = *user
	return nil
}

func (u *Users) Update(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	current, ok := u.s.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if u.s.userTaken(user.Email, user.Login, user.ID) {
		return ErrDuplicateUser
	}
	current.Email = user.Email
	current.Login = user.Login
	current.Name = user.Name
	current.Birthday = user.Birthday
	current.UpdatedAt = u.s.now()
	u.s.users[user.ID] = current
	*user = current
	return nil
}

func (u *Users) FindByID(_ context.Context, id int64) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (u *Users) FindByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	out := []models.User{}
	seen := map[int64]struct{}{}
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if user, ok := u.s.users[id]; ok {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u *Users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	out := make([]models.User, 0, len(u.s.users))
	for _, id := range sortedIDs(u.s.users) {
		out = append(out, u.s.users[id])
	}
	return out, nil
}

func (u *Users) FindByEmailOrLogin(_ context.Context, email, login string, excludeID int64) (*models.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()

	if id, ok := u.s.findUser(email, login, excludeID); ok {
		user := u.s.users[id]
		return &user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// Delete drops the user with their likes and every edge touching them.
func (u *Users) Delete(_ context.Context, id int64) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	if _, ok := u.s.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for key := range u.s.likes {
		if key.userID == id {
			delete(u.s.likes, key)
		}
	}
	for key := range u.s.edges {
		if key.userID == id || key.friendID == id {
			delete(u.s.edges, key)
		}
	}
	delete(u.s.users, id)
	return nil
}

func (s *Store) findUser(email, login string, excludeID int64) (int64, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	login = strings.ToLower(strings.TrimSpace(login))
	for _, id := range sortedIDs(s.users) {
		if id == excludeID {
			continue
		}
		user := s.users[id]
		if strings.ToLower(user.Email) == email || strings.ToLower(user.Login) == login {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) userTaken(email, login string, excludeID int64) bool {
	_, taken := s.findUser(email, login, excludeID)
	return taken
}
