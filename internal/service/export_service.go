package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fichadoradamathias/Restaurante2/config"
	"github.com/fichadoradamathias/Restaurante2/internal/dto"
	"github.com/fichadoradamathias/Restaurante2/internal/model"
	"github.com/fichadoradamathias/Restaurante2/internal/repository"
	"github.com/fichadoradamathias/Restaurante2/pkg/clock"
)

// Etiquetas en castellano de la planilla. Las claves internas en inglés
// no salen nunca hacia la cocina.
var (
	dayLabels = map[string]string{
		model.DayMonday:    "Lunes",
		model.DayTuesday:   "Martes",
		model.DayWednesday: "Miércoles",
		model.DayThursday:  "Jueves",
		model.DayFriday:    "Viernes",
	}
	slotLabels = map[string]string{
		model.SlotPrincipal: "Comida",
		model.SlotSide:      "Acompañamiento",
		model.SlotSalad:     "Ensalada",
	}
)

// Textos de relleno de celda cuando no hay un plato que mostrar
const (
	cellNoOrder       = "NO PEDIDO"
	cellUnknownOption = "Opción Desconocida"
	cellInvalidData   = "Dato Inválido"
)

const sheetName = "Pedidos"

// ExportService genera la planilla .xlsx detallada para la cocina
type ExportService struct {
	repo   *repository.Repository
	cfg    *config.ExportConfig
	clk    clock.Clock
	logger *zap.Logger
}

// NewExportService crea el servicio de exportación
func NewExportService(repo *repository.Repository, cfg *config.ExportConfig, clk clock.Clock, logger *zap.Logger) *ExportService {
	return &ExportService{repo: repo, cfg: cfg, clk: clk, logger: logger}
}

// Export escribe la planilla de la semana en disco y devuelve la ruta.
// officeID limita las filas a una oficina; nil exporta todas.
// createdBy queda en el registro lateral de exportaciones.
func (s *ExportService) Export(ctx context.Context, weekID uint, officeID *uint, createdBy string) (*dto.ExportResponse, error) {
	week, err := s.repo.Week.GetByID(ctx, weekID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		return nil, err
	}

	scope := "TODAS"
	if officeID != nil {
		office, err := s.repo.Office.GetByID(ctx, *officeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrOfficeNotFound
			}
			return nil, err
		}
		scope = office.Name
	}

	// Sin pedidos la planilla sale igual, solo con el encabezado
	orders, err := s.repo.Order.ListByWeek(ctx, weekID, officeID)
	if err != nil {
		s.logger.Error("error al leer los pedidos para exportar",
			zap.Uint("week_id", weekID), zap.Error(err))
		return nil, err
	}

	// Caché id → descripción del menú de la semana
	items, err := s.repo.MenuItem.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	descriptions := make(map[uint]string, len(items))
	for i := range items {
		descriptions[items[i].ID] = items[i].Description
	}

	f, err := s.buildWorkbook(week, orders, descriptions)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	filename := fmt.Sprintf("%s_DETALLADO_COCINA_%s_%s.xlsx",
		sanitizeFilename(week.Title),
		sanitizeFilename(scope),
		s.clk.Now().Format("20060102"))

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("no se pudo crear el directorio de exportación: %w", err)
	}
	path := filepath.Join(s.cfg.Dir, filename)
	if err := f.SaveAs(path); err != nil {
		s.logger.Error("error al escribir la planilla", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("no se pudo escribir la planilla: %w", err)
	}

	// El registro lateral es de mejor esfuerzo: la planilla ya está en disco
	entry := &model.ExportLog{WeekID: weekID, Filename: filename, CreatedBy: createdBy}
	if err := s.repo.ExportLog.Create(ctx, entry); err != nil {
		s.logger.Warn("no se pudo registrar la exportación",
			zap.String("filename", filename), zap.Error(err))
	}

	s.logger.Info("planilla generada",
		zap.Uint("week_id", weekID),
		zap.String("scope", scope),
		zap.Int("rows", len(orders)),
		zap.String("path", path))

	return &dto.ExportResponse{
		Path:     path,
		Filename: filename,
		Message:  fmt.Sprintf("Planilla generada con %d pedidos", len(orders)),
	}, nil
}

// History lista las planillas generadas para una semana
func (s *ExportService) History(ctx context.Context, weekID uint) ([]dto.ExportLogResponse, error) {
	entries, err := s.repo.ExportLog.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ExportLogResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.ExportLogResponse{
			ID:        e.ID,
			WeekID:    e.WeekID,
			Filename:  e.Filename,
			CreatedBy: e.CreatedBy,
			CreatedAt: e.CreatedAt.Format(timeLayout),
		})
	}
	return resp, nil
}

func (s *ExportService) buildWorkbook(week *model.Week, orders []model.Order, descriptions map[uint]string) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	// Encabezado: identidad + una columna por día/franja en orden canónico
	headers := []string{"Usuario", "Oficina"}
	for _, day := range model.WeekDays {
		for _, slot := range model.MealSlots {
			headers = append(headers, dayLabels[day]+" - "+slotLabels[slot])
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, err
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 24); err != nil {
		return nil, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetName, "C", lastCol, 28); err != nil {
		return nil, err
	}

	for rowIdx := range orders {
		order := &orders[rowIdx]

		userName := fmt.Sprintf("usuario %d", order.UserID)
		officeName := ""
		if order.User != nil {
			if order.User.FullName != "" {
				userName = order.User.FullName
			} else {
				userName = order.User.Username
			}
			if order.User.Office != nil {
				officeName = order.User.Office.Name
			}
		}

		row := []interface{}{userName, officeName}
		for _, day := range model.WeekDays {
			for _, slot := range model.MealSlots {
				row = append(row, s.cellText(week, order, day, slot, descriptions))
			}
		}

		startCell, err := excelize.CoordinatesToCellName(1, rowIdx+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, startCell, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// cellText resuelve el texto de una celda día/franja de un pedido
func (s *ExportService) cellText(week *model.Week, order *model.Order, day, slot string, descriptions map[uint]string) string {
	if week.IsDayClosed(day) {
		return cellNoOrder
	}
	if order.Status == model.StatusNoOrder {
		return cellNoOrder
	}
	if order.Details == nil {
		return cellInvalidData
	}

	// Una clave ausente vale lo mismo que una selección nula: documentos
	// viejos pueden venir incompletos.
	sel := order.Details[model.DetailKey(day, slot)]
	if sel == nil {
		return cellNoOrder
	}

	desc, ok := descriptions[*sel]
	if !ok {
		return cellUnknownOption
	}
	return desc
}

// sanitizeFilename reemplaza todo lo que no sea alfanumérico por "_"
// para que el título de la semana pueda ir en el nombre del archivo.
func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
