package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户注册、登录与个人资料
type UserAuthService struct {
	cfg            *config.Config
	userRepo       repository.UserRepository
	captchaService *CaptchaService
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, captchaService *CaptchaService) *UserAuthService {
	return &UserAuthService{
		cfg:            cfg,
		userRepo:       userRepo,
		captchaService: captchaService,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Captcha   CaptchaVerifyPayload
}

// ProfileInput 个人资料编辑输入
type ProfileInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
}

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// Register 用户注册，成功后直接签发 Token
func (s *UserAuthService) Register(input RegisterInput) (*models.User, string, time.Time, error) {
	if err := s.captchaService.Verify(constants.CaptchaSceneRegister, input.Captcha); err != nil {
		return nil, "", time.Time{}, err
	}

	username := strings.TrimSpace(input.Username)
	v := &ValidationError{}
	validateUsername(v, username)
	validatePersonName(v, "first_name", input.FirstName)
	validatePersonName(v, "last_name", input.LastName)
	email := normalizeEmail(v, input.Email)
	if input.Password == "" {
		v.Add("password", "required")
	}
	if err := v.OrNil(); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.ensureUsernameFree(username, nil); err != nil {
		return nil, "", time.Time{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user := &models.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: string(hashed),
		IsActive:     true,
		LastLoginAt:  &now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	s.storeAuthState(user)
	return user, token, expiresAt, nil
}

// Login 用户名密码登录
func (s *UserAuthService) Login(username, password string, captcha CaptchaVerifyPayload) (*models.User, string, time.Time, error) {
	if err := s.captchaService.Verify(constants.CaptchaSceneLogin, captcha); err != nil {
		return nil, "", time.Time{}, err
	}
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	s.storeAuthState(user)
	return user, token, expiresAt, nil
}

// GetProfile 按用户名查找用户
func (s *UserAuthService) GetProfile(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// GetUserByID 获取用户
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 编辑本人资料，用户名需唯一
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	v := &ValidationError{}
	validateUsername(v, username)
	validatePersonName(v, "first_name", input.FirstName)
	validatePersonName(v, "last_name", input.LastName)
	email := normalizeEmail(v, input.Email)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if username != user.Username {
		if err := s.ensureUsernameFree(username, &user.ID); err != nil {
			return nil, err
		}
	}

	user.Username = username
	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.storeAuthState(user)
	return user, nil
}

// ChangePassword 修改密码并使旧 Token 失效
func (s *UserAuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidPassword
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hashed)
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	s.storeAuthState(user)
	return nil
}

// ListUsers 管理端用户列表
func (s *UserAuthService) ListUsers(filter repository.UserListFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// SetActive 启用/停用账号，停用时旧 Token 立即失效
func (s *UserAuthService) SetActive(userID uint, active bool) (*models.User, error) {
	if _, err := s.GetUserByID(userID); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetActive(userID, active); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	s.storeAuthState(user)
	return user, nil
}

// SetStaff 授予/撤销后台访问
func (s *UserAuthService) SetStaff(userID uint, staff bool) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsStaff = staff
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	s.storeAuthState(user)
	return user, nil
}

// DeleteUser 删除用户及其文章、评论
func (s *UserAuthService) DeleteUser(userID uint) error {
	if _, err := s.GetUserByID(userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(context.Background(), userID); err != nil {
		logger.Warnw("auth_state_delete_failed", "user_id", userID, "error", err)
	}
	return nil
}

func (s *UserAuthService) ensureUsernameFree(username string, excludeID *uint) error {
	count, err := s.userRepo.CountByUsername(username, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameExists
	}
	return nil
}

func (s *UserAuthService) storeAuthState(user *models.User) {
	if err := cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("auth_state_store_failed", "user_id", user.ID, "error", err)
	}
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}
