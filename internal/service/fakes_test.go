package service

import (
	"context"
	"sort"
	"sync"

	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/scoring"
	"edutech_backend/internal/util"
)

// 内存实现，供服务层测试使用
type fakeUserRepo struct {
	mu         sync.Mutex
	users      map[string]*model.User
	skillCalls int
	skillErr   error
	updateErr  error
	findErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return util.ErrUsernameTaken
	}
	user.EnsureID()
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, util.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByUsernameAndRole(ctx context.Context, username string, role model.UserRole) (*model.User, error) {
	u, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.Role != role {
		return nil, util.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) ExistsByRole(ctx context.Context, role model.UserRole) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if user.Email != nil {
		for name, u := range r.users {
			if name != user.Username && u.Email != nil && *u.Email == *user.Email {
				return util.ErrEmailInUse
			}
		}
	}
	cp := *user
	r.users[user.Username] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateSkills(ctx context.Context, username string, skills []scoring.Proficiency) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skillCalls++
	if r.skillErr != nil {
		return r.skillErr
	}
	u, ok := r.users[username]
	if !ok {
		return util.ErrUserNotFound
	}
	u.Skills = skills
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		cp.Password = ""
		users = append(users, cp)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

type fakeResultRepo struct {
	mu        sync.Mutex
	results   []model.Result
	createErr error
}

func (r *fakeResultRepo) Create(ctx context.Context, result *model.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	result.EnsureID()
	r.results = append(r.results, *result)
	return nil
}

func (r *fakeResultRepo) FindByUsername(ctx context.Context, username string) ([]model.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Result{}
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].Username == username {
			out = append(out, r.results[i])
		}
	}
	return out, nil
}

func (r *fakeResultRepo) FindLatestByUsername(ctx context.Context, username string) (*model.Result, error) {
	all, _ := r.FindByUsername(ctx, username)
	if len(all) == 0 {
		return nil, repository.ErrResultNotFound
	}
	return &all[0], nil
}

func (r *fakeResultRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.results)
}
