package document

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"user-registry/internal/domain"
	"user-registry/internal/repository"
	"user-registry/internal/storage"
)

// UserRepository keeps the whole user collection as one JSON array in a blob.
// Every call reads the full document and every mutation rewrites it.
type UserRepository struct {
	blob   storage.Blob
	logger *logrus.Logger

	// serializes read-modify-write cycles within this process only
	mu sync.Mutex
}

func NewUserRepository(blob storage.Blob, logger *logrus.Logger) *UserRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &UserRepository{blob: blob, logger: logger}
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(users, id); i >= 0 {
		u := users[i]
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) Add(ctx context.Context, user domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(users, user.ID) >= 0 {
		return nil, domain.DuplicateID(user.ID)
	}
	users = append(users, user)
	if err := r.store(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, id)
	if i < 0 {
		return nil, domain.NotFound(id)
	}
	users[i] = users[i].Apply(patch)
	if err := r.store(ctx, users); err != nil {
		return nil, err
	}
	u := users[i]
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(users, id)
	if i < 0 {
		return domain.NotFound(id)
	}
	users = append(users[:i], users[i+1:]...)
	return r.store(ctx, users)
}

// load reads the collection. A missing document is an empty collection; so is
// a malformed one, which is logged because its contents will be overwritten by
// the next mutation. Entries are normalized on the way in so a hand-edited
// document with a string age still loads.
func (r *UserRepository) load(ctx context.Context) ([]domain.User, error) {
	data, err := r.blob.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("load users: %w", err)
	}

	var records []domain.Record
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Warnf("users document %s is unreadable, treating as empty: %v", r.blob.Location(), err)
		return []domain.User{}, nil
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		users = append(users, domain.UserFromRecord(rec))
	}
	return users, nil
}

func (r *UserRepository) store(ctx context.Context, users []domain.User) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(users); err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.blob.Save(ctx, buf.Bytes()); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexOf(users []domain.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

var _ repository.UserRepository = (*UserRepository)(nil)
