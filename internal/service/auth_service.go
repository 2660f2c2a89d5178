package service

import (
	"context"
	"errors"
	"strings"

	"edutech_backend/internal/config"
	"edutech_backend/internal/model"
	"edutech_backend/internal/repository"
	"edutech_backend/internal/util"
	"edutech_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"secret"`
}

type AdminRegistration struct {
	Credentials
	AdminSecret string `json:"adminSecret"`
}

type LoginResponse struct {
	Token    string         `json:"token"`
	Username string         `json:"username"`
	Role     model.UserRole `json:"role"`
}

type AuthService struct {
	UserRepo repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

func validCredentials(c Credentials, minLen int) bool {
	return strings.TrimSpace(c.Username) != "" && len(c.Password) >= minLen
}

func (s *AuthService) create(ctx context.Context, c Credentials, role model.UserRole) error {
	if !validCredentials(c, util.MinPasswordLength) {
		return util.ErrInvalidInput
	}

	_, err := s.UserRepo.FindByUsername(ctx, c.Username)
	if err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, util.ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.Create(ctx, &model.User{
		Username: c.Username,
		Password: string(hashedPassword),
		Role:     role,
	})
}

func (s *AuthService) Register(ctx context.Context, c Credentials) error {
	return s.create(ctx, c, model.RoleUser)
}

// RegisterAdmin 配置了 admin.secret 时必须匹配
func (s *AuthService) RegisterAdmin(ctx context.Context, req AdminRegistration) error {
	if !validCredentials(req.Credentials, util.MinPasswordLength) {
		return util.ErrInvalidInput
	}
	if secret := s.Cfg.Admin.Secret; secret != "" && req.AdminSecret != secret {
		return util.ErrInvalidAdminSecret
	}
	return s.create(ctx, req.Credentials, model.RoleAdmin)
}

func (s *AuthService) Login(ctx context.Context, c Credentials) (*LoginResponse, error) {
	if !validCredentials(c, 1) {
		return nil, util.ErrInvalidInput
	}
	user, err := s.UserRepo.FindByUsername(ctx, c.Username)
	return s.issue(user, err, c.Password)
}

func (s *AuthService) AdminLogin(ctx context.Context, c Credentials) (*LoginResponse, error) {
	if !validCredentials(c, 1) {
		return nil, util.ErrInvalidInput
	}
	user, err := s.UserRepo.FindByUsernameAndRole(ctx, c.Username, model.RoleAdmin)
	return s.issue(user, err, c.Password)
}

func (s *AuthService) issue(user *model.User, findErr error, password string) (*LoginResponse, error) {
	if errors.Is(findErr, util.ErrUserNotFound) {
		return nil, util.ErrInvalidCredentials
	}
	if findErr != nil {
		return nil, findErr
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	role := user.Role
	if role == "" {
		role = model.RoleUser
	}
	return &LoginResponse{Token: token, Username: user.Username, Role: role}, nil
}

// EnsureDefaultAdmin 没有任何管理员时创建默认账号
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	exists, err := s.UserRepo.ExistsByRole(ctx, model.RoleAdmin)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	username := s.Cfg.Admin.Username
	if err := s.create(ctx, Credentials{Username: username, Password: s.Cfg.Admin.Password}, model.RoleAdmin); err != nil {
		return err
	}
	logger.Log.Info("Created default admin account", zap.String("username", username))
	return nil
}
