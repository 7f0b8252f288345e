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

func TestOfficeCreateAndRename(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	central, err := env.office.Create(ctx, 1, &dto.CreateOfficeRequest{Name: "Central"})
	if err != nil {
		t.Fatalf("alta: %v", err)
	}

	if _, err := env.office.Create(ctx, 1, &dto.CreateOfficeRequest{Name: "Central"}); !errors.Is(err, ErrOfficeNameExists) {
		t.Errorf("el nombre repetido debía rechazarse, se obtuvo %v", err)
	}

	if _, err := env.office.Create(ctx, 1, &dto.CreateOfficeRequest{Name: "Norte"}); err != nil {
		t.Fatalf("segunda alta: %v", err)
	}

	if _, err := env.office.Update(ctx, 1, central.ID, &dto.UpdateOfficeRequest{Name: "Norte"}); !errors.Is(err, ErrOfficeNameExists) {
		t.Errorf("renombrar a un nombre ocupado debía rechazarse, se obtuvo %v", err)
	}

	resp, err := env.office.Update(ctx, 1, central.ID, &dto.UpdateOfficeRequest{Name: "Casa Central"})
	if err != nil {
		t.Fatalf("renombre: %v", err)
	}
	if resp.Name != "Casa Central" {
		t.Errorf("el nombre no se actualizó: %q", resp.Name)
	}
}

func TestOfficeDeleteGuard(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	office := env.mustCreateOffice(t, "Central")
	env.mustCreateUser(t, "ana", model.RoleUser, uintPtr(office.ID))

	if err := env.office.Delete(ctx, 1, office.ID); !errors.Is(err, ErrOfficeHasUsers) {
		t.Fatalf("borrar una oficina con usuarios debía rechazarse, se obtuvo %v", err)
	}

	vacia := env.mustCreateOffice(t, "Vacía")
	if err := env.office.Delete(ctx, 1, vacia.ID); err != nil {
		t.Fatalf("borrar una oficina vacía: %v", err)
	}
	if _, err := env.repo.Office.GetByID(ctx, vacia.ID); err == nil {
		t.Error("la oficina vacía debía desaparecer")
	}

	if err := env.office.Delete(ctx, 1, 999); !errors.Is(err, ErrOfficeNotFound) {
		t.Errorf("se esperaba ErrOfficeNotFound, se obtuvo %v", err)
	}
}

func TestOfficeListIncludesUserCount(t *testing.T) {
	env := newTestEnv(t, time.Date(2025, 3, 5, 12, 0, 0, 0, clock.Zone()))
	ctx := context.Background()

	office := env.mustCreateOffice(t, "Central")
	env.mustCreateUser(t, "ana", model.RoleUser, uintPtr(office.ID))
	env.mustCreateUser(t, "bruno", model.RoleUser, uintPtr(office.ID))
	env.mustCreateOffice(t, "Norte")

	offices, err := env.office.List(ctx)
	if err != nil {
		t.Fatalf("listado: %v", err)
	}
	if len(offices) != 2 {
		t.Fatalf("se esperaban 2 oficinas, hay %d", len(offices))
	}
	for _, o := range offices {
		switch o.Name {
		case "Central":
			if o.UserCount != 2 {
				t.Errorf("Central debía tener 2 usuarios, tiene %d", o.UserCount)
			}
		case "Norte":
			if o.UserCount != 0 {
				t.Errorf("Norte debía tener 0 usuarios, tiene %d", o.UserCount)
			}
		}
	}
}
