package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
)

var (
	ErrOrderNotFound     = errors.New("pedido no encontrado")
	ErrOrderWindowClosed = errors.New("la semana no acepta pedidos")
	ErrUnknownDetailKey  = errors.New("clave de selección desconocida")
	ErrInvalidSelection  = errors.New("la selección no corresponde al menú de la semana")
)

// OrderService pedidos semanales de los usuarios
type OrderService struct {
	repo   *repository.Repository
	clk    clock.Clock
	logger *zap.Logger
}

// NewOrderService crea el servicio de pedidos
func NewOrderService(repo *repository.Repository, clk clock.Clock, logger *zap.Logger) *OrderService {
	return &OrderService{repo: repo, clk: clk, logger: logger}
}

// Submit guarda el pedido del usuario para la semana. Si ya existía uno
// lo reemplaza entero (documento completo, sin fusión) y lo marca
// "actualizado"; el primero queda "confirmado".
//
// Normalización antes de guardar:
//   - los días feriados quedan en nil aunque el cliente mande algo
//   - si el plato principal del día es nil, acompañamiento y ensalada
//     también se anulan
func (s *OrderService) Submit(ctx context.Context, userID, weekID uint, req *dto.SubmitOrderRequest) (*dto.OrderResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	if !week.IsAcceptingOrders(s.clk.Now()) {
		return nil, ErrOrderWindowClosed
	}

	details, err := s.normalizeSelections(ctx, week, req.Selections)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.GetByUserAndWeek(ctx, userID, weekID)
	switch {
	case err == nil:
		order.Details = details
		order.Notes = req.Notes
		order.Status = model.StatusUpdated
		if err := s.repo.Order.Update(ctx, order); err != nil {
			s.logger.Error("error al actualizar el pedido",
				zap.Uint("user_id", userID), zap.Uint("week_id", weekID), zap.Error(err))
			return nil, err
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		order = &model.Order{
			UserID:  userID,
			WeekID:  weekID,
			Status:  model.StatusConfirmed,
			Details: details,
			Notes:   req.Notes,
		}
		if err := s.repo.Order.Create(ctx, order); err != nil {
			// Carrera entre dos envíos del mismo usuario: el índice único
			// rechaza el segundo insert y lo convertimos en actualización.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				existing, gerr := s.repo.Order.GetByUserAndWeek(ctx, userID, weekID)
				if gerr != nil {
					return nil, gerr
				}
				existing.Details = details
				existing.Notes = req.Notes
				existing.Status = model.StatusUpdated
				if uerr := s.repo.Order.Update(ctx, existing); uerr != nil {
					return nil, uerr
				}
				order = existing
			} else {
				s.logger.Error("error al crear el pedido",
					zap.Uint("user_id", userID), zap.Uint("week_id", weekID), zap.Error(err))
				return nil, err
			}
		}

	default:
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// MyOrder devuelve el pedido del usuario para la semana, si existe
func (s *OrderService) MyOrder(ctx context.Context, userID, weekID uint) (*dto.OrderResponse, error) {
	order, err := s.repo.Order.GetByUserAndWeek(ctx, userID, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ListByWeek lista los pedidos de la semana, con filtro opcional por oficina
func (s *OrderService) ListByWeek(ctx context.Context, weekID uint, officeID *uint) ([]dto.OrderResponse, error) {
	if _, err := s.repo.Week.GetByID(ctx, weekID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	orders, err := s.repo.Order.ListByWeek(ctx, weekID, officeID)
	if err != nil {
		s.logger.Error("error al listar pedidos", zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp, nil
}

// Compliance arma el reporte de cumplimiento de la semana: usuarios
// activos sin pedido y pedidos con días de servicio sin plato principal.
// officeID limita el reporte a una oficina; nil abarca todas.
func (s *OrderService) Compliance(ctx context.Context, weekID uint, officeID *uint) (*dto.ComplianceReport, error) {
	week, err := s.repo.Week.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	users, err := s.repo.User.List(ctx, &repository.UserListFilters{
		OfficeID:      officeID,
		ExcludeAdmins: true,
	})
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.Order.ListByWeek(ctx, weekID, officeID)
	if err != nil {
		return nil, err
	}

	byUser := make(map[uint]*model.Order, len(orders))
	for i := range orders {
		byUser[orders[i].UserID] = &orders[i]
	}

	report := &dto.ComplianceReport{
		WeekID:     weekID,
		NoOrder:    []dto.ComplianceUser{},
		Incomplete: []dto.ComplianceIncomplete{},
	}

	for i := range users {
		user := &users[i]
		officeName := ""
		if user.Office != nil {
			officeName = user.Office.Name
		}

		order, ok := byUser[user.ID]
		if !ok || order.Status == model.StatusNoOrder {
			report.NoOrder = append(report.NoOrder, dto.ComplianceUser{
				FullName: user.FullName,
				Username: user.Username,
				Office:   officeName,
			})
			continue
		}

		var missing []string
		for _, day := range model.WeekDays {
			if week.IsDayClosed(day) {
				continue
			}
			if order.Details == nil || order.Details[model.DetailKey(day, model.SlotPrincipal)] == nil {
				missing = append(missing, day)
			}
		}
		if len(missing) > 0 {
			report.Incomplete = append(report.Incomplete, dto.ComplianceIncomplete{
				FullName:    user.FullName,
				Office:      officeName,
				MissingDays: missing,
			})
		}
	}

	return report, nil
}

// normalizeSelections valida las claves y los ids contra el menú de la
// semana y aplica las reglas de anulación.
func (s *OrderService) normalizeSelections(ctx context.Context, week *model.Week, selections map[string]*uint) (model.OrderDetails, error) {
	valid := make(map[string]bool, len(model.WeekDays)*len(model.MealSlots))
	for _, key := range model.DetailKeys() {
		valid[key] = true
	}
	for key := range selections {
		if !valid[key] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDetailKey, key)
		}
	}

	// Índice de ids publicados por clave "{día}_{franja}"
	items, err := s.repo.MenuItem.ListByWeek(ctx, week.ID)
	if err != nil {
		return nil, err
	}
	published := make(map[string]map[uint]bool, len(items))
	for i := range items {
		key := model.DetailKey(items[i].Day, items[i].Slot)
		if published[key] == nil {
			published[key] = make(map[uint]bool)
		}
		published[key][items[i].ID] = true
	}

	details := model.EmptyDetails()
	for _, day := range model.WeekDays {
		if week.IsDayClosed(day) {
			continue // las tres franjas quedan en nil
		}

		principalKey := model.DetailKey(day, model.SlotPrincipal)
		principal := selections[principalKey]
		if principal == nil {
			continue // sin plato principal no se sirven las otras franjas
		}

		for _, slot := range model.MealSlots {
			key := model.DetailKey(day, slot)
			sel := selections[key]
			if sel == nil {
				continue
			}
			if !published[key][*sel] {
				return nil, fmt.Errorf("%w: %q=%d", ErrInvalidSelection, key, *sel)
			}
			details[key] = sel
		}
	}

	return details, nil
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:        order.ID,
		UserID:    order.UserID,
		WeekID:    order.WeekID,
		Status:    order.Status,
		Details:   order.Details,
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt.Format(timeLayout),
		UpdatedAt: order.UpdatedAt.Format(timeLayout),
	}
}
