package users

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/angelmondragon/filmorate-backend/pkg/db"
	"github.com/angelmondragon/filmorate-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/filmorate-backend/pkg/errors"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/metrics"
)

// LoginPattern is the accepted shape of a login after trimming.
var LoginPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{4,20}$`)

var emailValidator = validator.New()

// ServiceParams groups dependencies for the users service.
type ServiceParams struct {
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.DomainMetrics
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service exposes business rules for user management.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error)
	Get(ctx context.Context, id int64) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.DomainMetrics
	now     func() time.Time
}

// NewService builds a users service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user store is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	normalized, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, normalized, 0); err != nil {
		return nil, err
	}

	user := normalized.toModel()
	if err := s.store.Create(ctx, user); err != nil {
		return nil, mapWriteError(err, "create user")
	}

	s.metrics.IncEntity("user", "created")
	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user.created")
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	if input.ID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	normalized, err := s.normalize(input.CreateUserInput)
	if err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, input.ID); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, normalized, input.ID); err != nil {
		return nil, err
	}

	user := normalized.toModel()
	user.ID = input.ID
	if err := s.store.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "user %d not found", input.ID)
		}
		return nil, mapWriteError(err, "update user")
	}

	s.metrics.IncEntity("user", "updated")
	s.logg.Info(s.logg.WithUserID(ctx, user.ID), "user.updated")
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return FromModels(list), nil
}

// Delete removes the user together with their likes and friendship edges.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "user %d not found", id)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	s.metrics.IncEntity("user", "deleted")
	s.logg.Info(s.logg.WithUserID(ctx, id), "user.deleted")
	return nil
}

func (s *service) load(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, fmt.Sprintf("user %d not found", id))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// normalize trims the input, defaults the name to the login and checks every field.
func (s *service) normalize(input CreateUserInput) (CreateUserInput, error) {
	out := CreateUserInput{
		Email:    strings.TrimSpace(input.Email),
		Login:    strings.TrimSpace(input.Login),
		Name:     strings.TrimSpace(input.Name),
		Birthday: input.Birthday,
	}
	if out.Name == "" {
		out.Name = out.Login
	}

	details := map[string]string{}
	if err := emailValidator.Var(out.Email, "required,email"); err != nil {
		details["email"] = "must be a valid email"
	}
	if !LoginPattern.MatchString(out.Login) {
		details["login"] = "must start with a letter and contain 5 to 21 letters, digits or underscores"
	}
	if out.Birthday.IsZero() {
		details["birthday"] = "is required"
	} else if !out.Birthday.Before(today(s.now())) {
		details["birthday"] = "must be in the past"
	}
	if len(details) > 0 {
		return CreateUserInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid user").WithDetails(details)
	}
	return out, nil
}

func (s *service) ensureUnique(ctx context.Context, input CreateUserInput, excludeID int64) error {
	existing, err := s.store.FindByEmailOrLogin(ctx, input.Email, input.Login, excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user uniqueness")
	}

	details := map[string]string{}
	if strings.EqualFold(existing.Email, input.Email) {
		details["email"] = "is already registered"
	}
	if strings.EqualFold(existing.Login, input.Login) {
		details["login"] = "is already taken"
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "user already exists").WithDetails(details)
}

func mapWriteError(err error, action string) error {
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "user already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

// today truncates t to midnight UTC of its calendar day.
func today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
