package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
)

func TestUserCreate(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	office := env.mustCreateOffice(t, "Central")

	resp, err := env.user.Create(ctx, 1, &dto.CreateUserRequest{
		Username: "ana",
		FullName: "Ana Álvarez",
		Password: "secreta123",
		OfficeID: &office.ID,
	})
	if err != nil {
		t.Fatalf("alta: %v", err)
	}
	if resp.Role != model.RoleUser {
		t.Errorf("sin rol explícito debe quedar %q, quedó %q", model.RoleUser, resp.Role)
	}
	if resp.OfficeName != "Central" {
		t.Errorf("la respuesta debe traer la oficina: %+v", resp)
	}

	_, err = env.user.Create(ctx, 1, &dto.CreateUserRequest{
		Username: "ana", FullName: "Otra Ana", Password: "secreta123",
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("el username repetido debía rechazarse, se obtuvo %v", err)
	}

	inexistente := uint(999)
	_, err = env.user.Create(ctx, 1, &dto.CreateUserRequest{
		Username: "bruno", FullName: "Bruno B", Password: "secreta123", OfficeID: &inexistente,
	})
	if !errors.Is(err, ErrOfficeNotFound) {
		t.Errorf("una oficina inexistente debía rechazarse, se obtuvo %v", err)
	}
}

func TestUserDeactivateKeepsRow(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	user := env.mustCreateUser(t, "ana", model.RoleUser, nil)

	if err := env.user.Deactivate(ctx, 1, user.ID); err != nil {
		t.Fatalf("baja: %v", err)
	}

	// La fila sigue existiendo, solo cambia is_active
	got, err := env.repo.User.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("el usuario desactivado debe seguir en la base: %v", err)
	}
	if got.IsActive {
		t.Error("el usuario debía quedar inactivo")
	}

	// La baja repetida es inocua
	if err := env.user.Deactivate(ctx, 1, user.ID); err != nil {
		t.Errorf("la baja repetida no debe fallar: %v", err)
	}

	// Fuera de los listados por defecto, visible con include_inactive
	list, _ := env.user.List(ctx, &dto.UserListRequest{})
	if len(list) != 0 {
		t.Errorf("el listado por defecto no debe traer inactivos: %+v", list)
	}
	list, _ = env.user.List(ctx, &dto.UserListRequest{IncludeInactive: true})
	if len(list) != 1 {
		t.Errorf("con include_inactive debe aparecer: %+v", list)
	}
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	env.mustCreateUser(t, "ana", model.RoleUser, nil)
	user := env.mustCreateUser(t, "bruno", model.RoleUser, nil)

	ocupado := "ana"
	_, err := env.user.Update(ctx, 1, user.ID, &dto.UpdateUserRequest{Username: &ocupado})
	if !errors.Is(err, ErrUsernameExists) {
		t.Errorf("pisar un username ocupado debía rechazarse, se obtuvo %v", err)
	}

	nuevoNombre := "Bruno Benítez"
	rolAdmin := model.RoleAdmin
	resp, err := env.user.Update(ctx, 1, user.ID, &dto.UpdateUserRequest{
		FullName: &nuevoNombre,
		Role:     &rolAdmin,
	})
	if err != nil {
		t.Fatalf("actualización: %v", err)
	}
	if resp.FullName != nuevoNombre || resp.Role != model.RoleAdmin {
		t.Errorf("la actualización no se aplicó: %+v", resp)
	}

	if _, err := env.user.Update(ctx, 1, 999, &dto.UpdateUserRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("se esperaba ErrUserNotFound, se obtuvo %v", err)
	}
}

func TestUserListFilters(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	central := env.mustCreateOffice(t, "Central")
	norte := env.mustCreateOffice(t, "Norte")
	env.mustCreateUser(t, "ana", model.RoleUser, uintPtr(central.ID))
	env.mustCreateUser(t, "bruno", model.RoleUser, uintPtr(norte.ID))

	list, err := env.user.List(ctx, &dto.UserListRequest{OfficeID: &central.ID})
	if err != nil {
		t.Fatalf("listado filtrado: %v", err)
	}
	if len(list) != 1 || list[0].Username != "ana" {
		t.Errorf("el filtro por oficina devolvió %+v", list)
	}
}
