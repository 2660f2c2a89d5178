package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"edutech_backend/internal/model"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"
)

// MemoryUserRepository 进程内存储，database.driver=memory 时使用
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return util.ErrUsernameTaken
	}
	user.EnsureID()
	if user.Interests == nil {
		user.Interests = []string{}
	}
	if user.Skills == nil {
		user.Skills = []scoring.Proficiency{}
	}
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[username]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByUsernameAndRole(ctx context.Context, username string, role model.UserRole) (*model.User, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, util.ErrUserNotFound
	}
	return u, nil
}

func (r *MemoryUserRepository) ExistsByRole(ctx context.Context, role model.UserRole) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; !ok {
		return util.ErrUserNotFound
	}
	if user.Email != nil {
		for name, u := range r.users {
			if name != user.Username && u.Email != nil && *u.Email == *user.Email {
				return util.ErrEmailInUse
			}
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) UpdateSkills(ctx context.Context, username string, skills []scoring.Proficiency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return util.ErrUserNotFound
	}
	u.Skills = append([]scoring.Proficiency(nil), skills...)
	u.UpdatedAt = time.Now()
	r.users[username] = u
	return nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		u.Password = ""
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

type MemoryResultRepository struct {
	mu      sync.RWMutex
	results []model.Result
}

func NewMemoryResultRepository() *MemoryResultRepository {
	return &MemoryResultRepository{}
}

func (r *MemoryResultRepository) Create(ctx context.Context, result *model.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.EnsureID()
	r.results = append(r.results, *result)
	return nil
}

func (r *MemoryResultRepository) FindByUsername(ctx context.Context, username string) ([]model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Result{}
	for _, res := range r.results {
		if res.Username == username {
			out = append(out, res)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *MemoryResultRepository) FindLatestByUsername(ctx context.Context, username string) (*model.Result, error) {
	all, _ := r.FindByUsername(ctx, username)
	if len(all) == 0 {
		return nil, ErrResultNotFound
	}
	return &all[0], nil
}

type NopPinger struct{}

func (NopPinger) Ping(ctx context.Context) error { return nil }
