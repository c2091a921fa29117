package users

import (
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

// UserDTO is the transport shape of a user.
type UserDTO struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email"`
	Login    string     `json:"login"`
	Name     string     `json:"name"`
	Birthday types.Date `json:"birthday"`
}

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Email    string
	Login    string
	Name     string
	Birthday types.Date
}

// UpdateUserInput replaces every mutable field of an existing user.
type UpdateUserInput struct {
	ID int64
	CreateUserInput
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: types.NewDate(u.Birthday),
	}
}

// FromModels keeps the input order and never returns nil.
func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}

func (c CreateUserInput) toModel() *models.User {
	return &models.User{
		Email:    c.Email,
		Login:    c.Login,
		Name:     c.Name,
		Birthday: c.Birthday.Time,
	}
}
