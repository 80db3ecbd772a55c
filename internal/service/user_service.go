package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"user-registry/internal/domain"
	"user-registry/internal/repository"
)

// UserService describes user lifecycle operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, data domain.Record) (*domain.User, error)
	// Update merges data over the stored user. Unlike Create it does not
	// re-check required fields or email/phone uniqueness.
	Update(ctx context.Context, id string, data domain.Record) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Save updates the user named by data's id when it exists and creates it otherwise.
	Save(ctx context.Context, data domain.Record) (*domain.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) UserService {
	if logger == nil {
		logger = logrus.New()
	}
	return &userService{
		users:  users,
		logger: logger,
	}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NotFound(id)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, data domain.Record) (*domain.User, error) {
	record := make(domain.Record, len(data)+1)
	for k, v := range data {
		record[k] = v
	}
	if record.Blank(domain.FieldID) {
		record[domain.FieldID] = uuid.NewString()
	}

	for _, field := range domain.RequiredFields {
		if record.Blank(field) {
			return nil, domain.MissingField(field)
		}
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(record.String(domain.FieldEmail))
	phone := normalizePhone(record.String(domain.FieldPhone))
	for _, u := range existing {
		if normalizeEmail(u.Email) == email {
			return nil, domain.DuplicateEmail()
		}
		if normalizePhone(u.Phone) == phone {
			return nil, domain.DuplicatePhone()
		}
	}

	created, err := s.users.Add(ctx, domain.UserFromRecord(record))
	if err != nil {
		return nil, err
	}
	s.logger.Infof("created user %s", created.ID)
	return created, nil
}

func (s *userService) Update(ctx context.Context, id string, data domain.Record) (*domain.User, error) {
	updated, err := s.users.Update(ctx, id, domain.PatchFromRecord(data))
	if err != nil {
		return nil, err
	}
	s.logger.Infof("updated user %s", id)
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infof("deleted user %s", id)
	return nil
}

func (s *userService) Save(ctx context.Context, data domain.Record) (*domain.User, error) {
	if id := data.String(domain.FieldID); id != "" {
		existing, err := s.users.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.Update(ctx, id, data)
		}
	}
	return s.Create(ctx, data)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
