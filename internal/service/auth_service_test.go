package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
)

func (e *testEnv) mustCreateUserWithPassword(t *testing.T, username, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash de contraseña: %v", err)
	}
	user := &model.User{
		Username:     username,
		FullName:     "Usuario " + username,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := e.repo.User.Create(context.Background(), user); err != nil {
		t.Fatalf("alta de usuario %q: %v", username, err)
	}
	return user
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	env.mustCreateUserWithPassword(t, "ana", "secreta123", model.RoleUser)

	resp, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "secreta123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Error("el login debe emitir ambos tokens")
	}
	if resp.User.Username != "ana" {
		t.Errorf("usuario inesperado en la respuesta: %q", resp.User.Username)
	}

	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "incorrecta"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("contraseña incorrecta: se esperaba ErrInvalidCredentials, se obtuvo %v", err)
	}
	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "nadie", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("usuario inexistente: se esperaba ErrInvalidCredentials, se obtuvo %v", err)
	}
}

func TestLoginInactiveUser(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	user := env.mustCreateUserWithPassword(t, "ana", "secreta123", model.RoleUser)
	user.IsActive = false
	if err := env.repo.User.Update(ctx, user); err != nil {
		t.Fatalf("desactivación: %v", err)
	}

	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "secreta123"}); !errors.Is(err, ErrUserInactive) {
		t.Fatalf("se esperaba ErrUserInactive, se obtuvo %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	env.mustCreateUserWithPassword(t, "ana", "secreta123", model.RoleUser)
	login, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "secreta123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Un access token no sirve para renovar
	if _, err := env.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.AccessToken}); !errors.Is(err, ErrNotRefreshToken) {
		t.Errorf("se esperaba ErrNotRefreshToken, se obtuvo %v", err)
	}

	renewed, err := env.auth.Refresh(ctx, &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("renovación: %v", err)
	}
	if renewed.AccessToken == "" || renewed.RefreshToken == "" {
		t.Error("la renovación debe emitir un par nuevo")
	}
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	user := env.mustCreateUserWithPassword(t, "ana", "vieja1234", model.RoleUser)

	err := env.auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "equivocada",
		NewPassword: "nueva1234",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Fatalf("se esperaba ErrWrongOldPassword, se obtuvo %v", err)
	}

	if err := env.auth.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		OldPassword: "vieja1234",
		NewPassword: "nueva1234",
	}); err != nil {
		t.Fatalf("cambio de contraseña: %v", err)
	}

	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "vieja1234"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("la contraseña vieja no debía servir más")
	}
	if _, err := env.auth.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "nueva1234"}); err != nil {
		t.Errorf("la contraseña nueva debía servir: %v", err)
	}
}
