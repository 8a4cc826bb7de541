package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/reporting"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

const (
	dateLayout  = "2006-01-02"
	defaultTopN = 10
	maxTopN     = 200
)

// ReportUseCase reporte de ventas realizadas (pedidos entregados) y su exportación.
// Lee el conjunto completo de pedidos entregados y agrega en memoria.
type ReportUseCase struct {
	orders     repository.OrderRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	renderers  map[string]ReportRenderer
	loc        *time.Location
	log        zerolog.Logger
}

// NewReportUseCase construye el caso de uso. renderers se indexa por formato ("pdf", "xlsx").
func NewReportUseCase(
	orders repository.OrderRepository,
	users repository.UserRepository,
	categories repository.CategoryRepository,
	renderers map[string]ReportRenderer,
	loc *time.Location,
	log zerolog.Logger,
) *ReportUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ReportUseCase{orders: orders, users: users, categories: categories, renderers: renderers, loc: loc, log: log}
}

// Sales calcula el reporte para el filtro dado.
func (uc *ReportUseCase) Sales(ctx context.Context, req dto.SalesReportRequest) (*dto.SalesReportDTO, error) {
	filter, err := uc.parseFilter(req)
	if err != nil {
		return nil, err
	}

	// pedidos entregados y perfiles en paralelo (llamadas independientes)
	type ordersResult struct {
		rows []*entity.Order
		err  error
	}
	type usersResult struct {
		rows []*entity.User
		err  error
	}
	ordersCh := make(chan ordersResult, 1)
	usersCh := make(chan usersResult, 1)
	go func() {
		rows, err := uc.orders.ListByStatus(ctx, entity.OrderStatusDelivered)
		ordersCh <- ordersResult{rows, err}
	}()
	go func() {
		rows, err := uc.users.List(ctx)
		usersCh <- usersResult{rows, err}
	}()
	ordersRes := <-ordersCh
	usersRes := <-usersCh
	if ordersRes.err != nil {
		return nil, fmt.Errorf("reporte: pedidos: %w", ordersRes.err)
	}
	if usersRes.err != nil {
		return nil, fmt.Errorf("reporte: usuarios: %w", usersRes.err)
	}

	kinds := make(map[string]string, len(usersRes.rows))
	for _, u := range usersRes.rows {
		kinds[u.ID] = u.AccountKind
	}

	report := reporting.Aggregate(ordersRes.rows, kinds, filter, uc.loc)
	return uc.toDTO(ctx, report, req.TopN)
}

// Export genera el archivo del reporte en el formato pedido (pdf por defecto).
func (uc *ReportUseCase) Export(ctx context.Context, req dto.SalesReportRequest) (data []byte, filename, contentType string, err error) {
	format := strings.ToLower(req.Format)
	if format == "" {
		format = "pdf"
	}
	renderer, ok := uc.renderers[format]
	if !ok {
		return nil, "", "", fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, req.Format)
	}
	report, err := uc.Sales(ctx, req)
	if err != nil {
		return nil, "", "", err
	}
	data, err = renderer.Render(report)
	if err != nil {
		return nil, "", "", fmt.Errorf("reporte: generar %s: %w", format, err)
	}
	filename = exportName(report) + "." + renderer.Extension()
	uc.log.Info().Str("format", format).Int("bytes", len(data)).Msg("reporte exportado")
	return data, filename, renderer.ContentType(), nil
}

func (uc *ReportUseCase) parseFilter(req dto.SalesReportRequest) (entity.ReportFilter, error) {
	f := entity.ReportFilter{Channel: req.Channel, CategoryID: req.CategoryID}
	if req.DateFrom != "" {
		t, err := time.ParseInLocation(dateLayout, req.DateFrom, uc.loc)
		if err != nil {
			return f, fmt.Errorf("%w: date_from inválido", domain.ErrInvalidInput)
		}
		f.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.ParseInLocation(dateLayout, req.DateTo, uc.loc)
		if err != nil {
			return f, fmt.Errorf("%w: date_to inválido", domain.ErrInvalidInput)
		}
		f.DateTo = &t
	}
	return reporting.NormalizeFilter(f)
}

func (uc *ReportUseCase) toDTO(ctx context.Context, r entity.SalesReport, topN int) (*dto.SalesReportDTO, error) {
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}
	out := &dto.SalesReportDTO{
		Channel:      r.Filter.Channel,
		CategoryID:   r.Filter.CategoryID,
		CategoryName: "Todas",
		PeriodLabel:  periodLabel(r.Filter),
		TotalAmount:  r.TotalAmount,
		DailyBuckets: make([]dto.DailyBucketDTO, 0, len(r.DailyBuckets)),
		Rankings:     make([]dto.ProductRankingDTO, 0, topN),
	}
	if r.Filter.DateFrom != nil {
		out.DateFrom = r.Filter.DateFrom.Format(dateLayout)
	}
	if r.Filter.DateTo != nil {
		out.DateTo = r.Filter.DateTo.Format(dateLayout)
	}
	if r.Filter.CategoryID != entity.CategoryAll {
		out.CategoryName = r.Filter.CategoryID
		cat, err := uc.categories.GetByID(ctx, r.Filter.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("reporte: categoría: %w", err)
		}
		if cat != nil {
			out.CategoryName = cat.Name
		}
	}
	for _, b := range r.DailyBuckets {
		out.DailyBuckets = append(out.DailyBuckets, dto.DailyBucketDTO{
			Date:        b.Date.Format(dateLayout),
			OrderCount:  b.OrderCount,
			TotalAmount: b.TotalAmount,
		})
		out.OrderCount += b.OrderCount
	}
	for _, rk := range reporting.TopN(r.Rankings, topN) {
		out.Rankings = append(out.Rankings, dto.ProductRankingDTO{
			ProductID:    rk.ProductID,
			Name:         rk.Name,
			QuantitySold: rk.QuantitySold,
			Revenue:      rk.Revenue,
		})
	}
	return out, nil
}

// periodLabel describe el rango del filtro, ej: "2024-03-01 a 2024-03-31" o "Todo el historial".
func periodLabel(f entity.ReportFilter) string {
	switch {
	case f.DateFrom != nil && f.DateTo != nil:
		return f.DateFrom.Format(dateLayout) + " a " + f.DateTo.Format(dateLayout)
	case f.DateFrom != nil:
		return "desde " + f.DateFrom.Format(dateLayout)
	case f.DateTo != nil:
		return "hasta " + f.DateTo.Format(dateLayout)
	}
	return "Todo el historial"
}

func exportName(r *dto.SalesReportDTO) string {
	name := "reporte-ventas"
	if r.DateFrom == "" && r.DateTo == "" {
		return name + "-historico"
	}
	if r.DateFrom != "" {
		name += "-" + r.DateFrom
	}
	if r.DateTo != "" {
		name += "-" + r.DateTo
	}
	return name
}
