package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
)

var (
	ErrWeekNotFound         = errors.New("semana no encontrada")
	ErrWeekTitleExists      = errors.New("ya existe una semana con ese título")
	ErrWeekAlreadyFinalized = errors.New("la semana ya fue finalizada")
	ErrInvalidDateRange     = errors.New("el plazo límite debe ser posterior a la fecha de inicio")
	ErrNoCurrentWeek        = errors.New("no hay una semana abierta en este momento")
)

// Formatos de fecha que acepta el alta de semanas (interpretados en UTC-3)
const (
	dateLayout     = "2006-01-02"
	deadlineLayout = "2006-01-02T15:04"
)

// WeekService ciclo de vida de las semanas de pedidos.
// Una semana nace abierta, se finaliza (a mano o por barrido al vencer
// el plazo) y en ese momento se sintetizan los registros "no_pedido"
// y se genera la planilla para la cocina.
type WeekService struct {
	repo   *repository.Repository
	export *ExportService
	audit  *AuditService
	clk    clock.Clock
	logger *zap.Logger
}

// NewWeekService crea el servicio de semanas
func NewWeekService(repo *repository.Repository, export *ExportService, audit *AuditService, clk clock.Clock, logger *zap.Logger) *WeekService {
	return &WeekService{repo: repo, export: export, audit: audit, clk: clk, logger: logger}
}

// Create da de alta una semana abierta
func (s *WeekService) Create(ctx context.Context, actorID uint, req *dto.CreateWeekRequest) (*dto.WeekResponse, error) {
	startDate, err := time.ParseInLocation(dateLayout, req.StartDate, clock.Zone())
	if err != nil {
		return nil, errors.New("start_date inválida, se espera el formato 2006-01-02")
	}
	endDate, err := time.ParseInLocation(deadlineLayout, req.EndDate, clock.Zone())
	if err != nil {
		return nil, errors.New("end_date inválida, se espera el formato 2006-01-02T15:04")
	}
	if !endDate.After(startDate) {
		return nil, ErrInvalidDateRange
	}

	if _, err := s.repo.Week.GetByTitle(ctx, req.Title); err == nil {
		return nil, ErrWeekTitleExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	closedDays := dedupeDays(req.ClosedDays)

	week := &model.Week{
		Title:       req.Title,
		StartDate:   startDate,
		EndDate:     endDate,
		IsOpen:      true,
		IsFinalized: false,
		ClosedDays:  closedDays,
	}
	if err := s.repo.Week.Create(ctx, week); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWeekTitleExists
		}
		s.logger.Error("error al crear la semana", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &actorID, "", "alta_semana", "", week.Title, "")

	resp := toWeekResponse(week)
	return &resp, nil
}

// List lista las semanas, las más recientes primero
func (s *WeekService) List(ctx context.Context) ([]dto.WeekResponse, error) {
	weeks, err := s.repo.Week.List(ctx)
	if err != nil {
		s.logger.Error("error al listar semanas", zap.Error(err))
		return nil, err
	}
	resp := make([]dto.WeekResponse, 0, len(weeks))
	for i := range weeks {
		resp = append(resp, toWeekResponse(&weeks[i]))
	}
	return resp, nil
}

// GetByID devuelve una semana por id
func (s *WeekService) GetByID(ctx context.Context, id uint) (*dto.WeekResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	resp := toWeekResponse(week)
	return &resp, nil
}

// Current devuelve la semana abierta vigente con el menú estructurado
// y, si corresponde, el pedido del usuario que consulta.
func (s *WeekService) Current(ctx context.Context, userID *uint) (*dto.CurrentWeekResponse, error) {
	week, err := s.repo.Week.GetCurrent(ctx, s.clk.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCurrentWeek
		}
		return nil, err
	}

	menu := NewMenuService(s.repo, s.logger)
	catalog, err := menu.Catalog(ctx, week.ID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CurrentWeekResponse{
		Week: toWeekResponse(week),
		Menu: catalog,
	}

	if userID != nil {
		order, err := s.repo.Order.GetByUserAndWeek(ctx, *userID, week.ID)
		if err == nil {
			orderResp := toOrderResponse(order)
			resp.MyOrder = &orderResp
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return resp, nil
}

// Close cierra la semana a mano sin finalizarla. Los registros
// "no_pedido" y la planilla quedan para la finalización. Una semana
// cerrada no vuelve a abrirse.
func (s *WeekService) Close(ctx context.Context, actorID, id uint) (*dto.WeekResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.IsFinalized {
		return nil, ErrWeekAlreadyFinalized
	}
	if !week.IsOpen {
		resp := toWeekResponse(week)
		return &resp, nil // ya estaba cerrada
	}

	week.IsOpen = false
	if err := s.repo.Week.Update(ctx, week); err != nil {
		s.logger.Error("error al cerrar la semana", zap.Uint("week_id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, &actorID, "", "cierre_semana", "", week.Title, "")

	resp := toWeekResponse(week)
	return &resp, nil
}

// Finalize finaliza la semana: en una sola transacción sintetiza un
// registro "no_pedido" por cada usuario activo sin pedido y marca la
// semana cerrada y finalizada. Acepta semanas ya cerradas a mano que
// todavía no se finalizaron. Después del commit genera la planilla;
// si la exportación falla la finalización queda firme y la planilla
// puede regenerarse aparte.
func (s *WeekService) Finalize(ctx context.Context, actorID *uint, id uint) (*dto.FinalizeWeekResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}
	if week.IsFinalized {
		return nil, ErrWeekAlreadyFinalized
	}

	wasOpen := week.IsOpen
	var placeholders int
	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		n, err := s.createPlaceholders(ctx, txRepo, week)
		if err != nil {
			return err
		}
		placeholders = n

		week.IsOpen = false
		week.IsFinalized = true
		if err := txRepo.Week.Update(ctx, week); err != nil {
			s.logger.Error("error al marcar la semana finalizada", zap.Uint("week_id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		week.IsOpen = wasOpen
		week.IsFinalized = false
		return nil, err
	}

	s.logger.Info("semana finalizada",
		zap.Uint("week_id", id),
		zap.String("title", week.Title),
		zap.Int("placeholders", placeholders))
	s.audit.Record(ctx, actorID, "", "finalización_semana", "", week.Title, "")

	resp := &dto.FinalizeWeekResponse{
		Week:         toWeekResponse(week),
		Placeholders: placeholders,
		Message:      "Semana finalizada y planilla generada",
	}

	exportResp, err := s.export.Export(ctx, week.ID, nil, "sistema")
	if err != nil {
		// La finalización ya está confirmada; la planilla se puede
		// regenerar desde el endpoint de exportación.
		s.logger.Error("la semana quedó finalizada pero la planilla no se pudo generar",
			zap.Uint("week_id", id), zap.Error(err))
		resp.Message = "Semana finalizada; la planilla no se pudo generar"
	} else {
		resp.ExportPath = exportResp.Path
	}

	return resp, nil
}

// SweepOverdue finaliza todas las semanas abiertas cuyo plazo venció.
// Devuelve cuántas finalizó. Un error en una semana no frena el resto.
func (s *WeekService) SweepOverdue(ctx context.Context) (int, error) {
	overdue, err := s.repo.Week.ListOverdue(ctx, s.clk.Now())
	if err != nil {
		s.logger.Error("error al buscar semanas vencidas", zap.Error(err))
		return 0, err
	}

	finalized := 0
	for i := range overdue {
		if _, err := s.Finalize(ctx, nil, overdue[i].ID); err != nil {
			if errors.Is(err, ErrWeekAlreadyFinalized) {
				continue // otra instancia llegó primero
			}
			s.logger.Error("error al finalizar la semana vencida",
				zap.Uint("week_id", overdue[i].ID), zap.Error(err))
			continue
		}
		finalized++
	}

	return finalized, nil
}

// Delete elimina la semana con todo lo que cuelga de ella: menú,
// pedidos y registros de exportación, en una transacción.
func (s *WeekService) Delete(ctx context.Context, actorID, id uint) error {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWeekNotFound
		}
		return err
	}

	err = s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Order.DeleteByWeek(ctx, id); err != nil {
			return err
		}
		if err := txRepo.MenuItem.DeleteByWeek(ctx, id); err != nil {
			return err
		}
		if err := txRepo.ExportLog.DeleteByWeek(ctx, id); err != nil {
			return err
		}
		if err := txRepo.Week.Delete(ctx, id); err != nil {
			s.logger.Error("error al eliminar la semana", zap.Uint("week_id", id), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, &actorID, "", "baja_semana", week.Title, "", "")
	return nil
}

// createPlaceholders inserta un registro "no_pedido" por cada usuario
// activo que no pidió en la semana. Los admins también cuentan: toda
// persona activa termina con un registro en la semana finalizada.
func (s *WeekService) createPlaceholders(ctx context.Context, txRepo *repository.Repository, week *model.Week) (int, error) {
	users, err := txRepo.User.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	orders, err := txRepo.Order.ListByWeek(ctx, week.ID, nil)
	if err != nil {
		return 0, err
	}
	hasOrder := make(map[uint]bool, len(orders))
	for i := range orders {
		hasOrder[orders[i].UserID] = true
	}

	var placeholders []model.Order
	for i := range users {
		if hasOrder[users[i].ID] {
			continue
		}
		placeholders = append(placeholders, model.Order{
			UserID:  users[i].ID,
			WeekID:  week.ID,
			Status:  model.StatusNoOrder,
			Details: model.EmptyDetails(),
		})
	}

	if err := txRepo.Order.BatchCreate(ctx, placeholders); err != nil {
		s.logger.Error("error al sintetizar los registros no_pedido",
			zap.Uint("week_id", week.ID), zap.Error(err))
		return 0, err
	}

	return len(placeholders), nil
}

func dedupeDays(days []string) model.StringArray {
	seen := make(map[string]bool, len(days))
	result := make(model.StringArray, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			result = append(result, d)
		}
	}
	return result
}

func toWeekResponse(week *model.Week) dto.WeekResponse {
	return dto.WeekResponse{
		ID:          week.ID,
		Title:       week.Title,
		StartDate:   week.StartDate.Format(dateLayout),
		EndDate:     week.EndDate.In(clock.Zone()).Format(timeLayout),
		IsOpen:      week.IsOpen,
		IsFinalized: week.IsFinalized,
		ClosedDays:  []string(week.ClosedDays),
		CreatedAt:   week.CreatedAt.Format(timeLayout),
	}
}
