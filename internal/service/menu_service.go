package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
)

var (
	ErrMenuItemNotFound     = errors.New("opción de menú no encontrada")
	ErrMenuNumberTaken      = errors.New("ya existe una opción con ese número para ese día y franja")
	ErrMenuDescriptionTaken = errors.New("ya existe una opción con esa descripción para ese día y franja")
	ErrMenuDayClosed        = errors.New("el día está marcado sin servicio")
)

// MenuService gestión del menú semanal
type MenuService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMenuService crea el servicio de menú
func NewMenuService(repo *repository.Repository, logger *zap.Logger) *MenuService {
	return &MenuService{repo: repo, logger: logger}
}

// AddItem publica una opción del menú en la semana.
// Dentro de (semana, día, franja) no se repiten ni el número de opción
// ni la descripción.
func (s *MenuService) AddItem(ctx context.Context, weekID uint, req *dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.IsFinalized {
		return nil, ErrWeekAlreadyFinalized
	}
	if week.IsDayClosed(req.Day) {
		return nil, ErrMenuDayClosed
	}

	if _, err := s.repo.MenuItem.GetByOption(ctx, weekID, req.Day, req.Slot, req.OptionNumber); err == nil {
		return nil, ErrMenuNumberTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.repo.MenuItem.GetByDescription(ctx, weekID, req.Day, req.Slot, req.Description); err == nil {
		return nil, ErrMenuDescriptionTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.MenuItem{
		WeekID:       weekID,
		Day:          req.Day,
		Slot:         req.Slot,
		OptionNumber: req.OptionNumber,
		Description:  req.Description,
	}
	if err := s.repo.MenuItem.Create(ctx, item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMenuNumberTaken
		}
		s.logger.Error("error al crear la opción de menú",
			zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	resp := toMenuItemResponse(item)
	return &resp, nil
}

// UpdateItem modifica número o descripción de una opción
func (s *MenuService) UpdateItem(ctx context.Context, id uint, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.repo.MenuItem.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}

	if req.OptionNumber != nil && *req.OptionNumber != item.OptionNumber {
		if existing, err := s.repo.MenuItem.GetByOption(ctx, item.WeekID, item.Day, item.Slot, *req.OptionNumber); err == nil && existing.ID != item.ID {
			return nil, ErrMenuNumberTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item.OptionNumber = *req.OptionNumber
	}
	if req.Description != nil && *req.Description != item.Description {
		if existing, err := s.repo.MenuItem.GetByDescription(ctx, item.WeekID, item.Day, item.Slot, *req.Description); err == nil && existing.ID != item.ID {
			return nil, ErrMenuDescriptionTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		item.Description = *req.Description
	}

	if err := s.repo.MenuItem.Update(ctx, item); err != nil {
		s.logger.Error("error al actualizar la opción de menú", zap.Uint("item_id", id), zap.Error(err))
		return nil, err
	}

	resp := toMenuItemResponse(item)
	return &resp, nil
}

// DeleteItem elimina una opción del menú
func (s *MenuService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.repo.MenuItem.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuItemNotFound
		}
		return err
	}
	return s.repo.MenuItem.Delete(ctx, id)
}

// ListByWeek lista las opciones de una semana en orden de publicación
func (s *MenuService) ListByWeek(ctx context.Context, weekID uint) ([]dto.MenuItemResponse, error) {
	items, err := s.repo.MenuItem.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toMenuItemResponse(&items[i]))
	}
	return resp, nil
}

// Catalog arma el catálogo estructurado día → franja → opciones.
// Los 15 casilleros están siempre presentes aunque queden vacíos, para
// que el formulario de pedido pueda recorrerlos sin casos especiales.
func (s *MenuService) Catalog(ctx context.Context, weekID uint) (dto.MenuCatalog, error) {
	items, err := s.repo.MenuItem.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	catalog := make(dto.MenuCatalog, len(model.WeekDays))
	for _, day := range model.WeekDays {
		catalog[day] = make(map[string][]dto.MenuOption, len(model.MealSlots))
		for _, slot := range model.MealSlots {
			catalog[day][slot] = []dto.MenuOption{}
		}
	}

	for i := range items {
		item := &items[i]
		catalog[item.Day][item.Slot] = append(catalog[item.Day][item.Slot], dto.MenuOption{
			ID:           item.ID,
			OptionNumber: item.OptionNumber,
			Description:  item.Description,
		})
	}

	return catalog, nil
}

func toMenuItemResponse(item *model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:           item.ID,
		WeekID:       item.WeekID,
		Day:          item.Day,
		Slot:         item.Slot,
		OptionNumber: item.OptionNumber,
		Description:  item.Description,
	}
}
