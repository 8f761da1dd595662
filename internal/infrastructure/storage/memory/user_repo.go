package memory

import (
	"context"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/audit"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/auth"
)

// UserRepo is the in-memory auth.Repository.
type UserRepo struct {
	users map[string]*auth.User // keyed by email
}

var _ auth.Repository = (*UserRepo)(nil)

// NewUserRepo creates an empty user repository.
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*auth.User)}
}

func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	clone := *user
	r.users[user.Email] = &clone
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	for _, user := range r.users {
		if user.ID == userID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

// AuditRecorder collects audit entries for inspection in tests.
type AuditRecorder struct {
	Entries []audit.Entry
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// NewAuditRecorder creates an empty recorder.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Log appends the entry.
func (r *AuditRecorder) Log(ctx context.Context, entry audit.Entry) error {
	r.Entries = append(r.Entries, entry)
	return nil
}
