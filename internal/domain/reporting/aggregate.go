package reporting

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// NormalizeFilter completa valores por defecto ("all") y valida el filtro.
func NormalizeFilter(f entity.ReportFilter) (entity.ReportFilter, error) {
	if f.Channel == "" {
		f.Channel = entity.ChannelAll
	}
	if f.CategoryID == "" {
		f.CategoryID = entity.CategoryAll
	}
	switch f.Channel {
	case entity.ChannelAll, entity.ChannelClient, entity.ChannelCompany:
	default:
		return f, fmt.Errorf("%w: canal %q", domain.ErrInvalidInput, f.Channel)
	}
	if f.DateFrom != nil && f.DateTo != nil && dayOf(*f.DateFrom).After(dayOf(*f.DateTo)) {
		return f, fmt.Errorf("%w: dateFrom posterior a dateTo", domain.ErrInvalidInput)
	}
	return f, nil
}

// ChannelOf traduce el tipo de cuenta del comprador al canal del reporte ("" si se desconoce).
func ChannelOf(accountKind string) string {
	switch accountKind {
	case entity.AccountKindCliente:
		return entity.ChannelClient
	case entity.AccountKindEmpresa:
		return entity.ChannelCompany
	}
	return ""
}

// Aggregate reduce la colección de pedidos a ventas realizadas por día y ranking de productos.
// accountKinds mapea buyerID -> tipo de cuenta. loc define el día calendario de createdAt.
// Es puro: no modifica orders y no falla con entrada vacía.
func Aggregate(orders []*entity.Order, accountKinds map[string]string, f entity.ReportFilter, loc *time.Location) entity.SalesReport {
	if loc == nil {
		loc = time.Local
	}
	var from, to *civilDay
	if f.DateFrom != nil {
		v := dayOf(*f.DateFrom)
		from = &v
	}
	if f.DateTo != nil {
		v := dayOf(*f.DateTo)
		to = &v
	}

	buckets := map[civilDay]*entity.DailyBucket{}
	ranks := map[string]*entity.ProductRanking{}
	var rankOrder []string
	total := decimal.Zero

	for _, o := range orders {
		if o == nil || o.Status != entity.OrderStatusDelivered {
			continue
		}
		day := dayOf(o.CreatedAt.In(loc))
		if from != nil && day.Before(*from) {
			continue
		}
		if to != nil && to.Before(day) {
			continue
		}
		if f.Channel != "" && f.Channel != entity.ChannelAll && ChannelOf(accountKinds[o.BuyerID]) != f.Channel {
			continue
		}
		if f.CategoryID != "" && f.CategoryID != entity.CategoryAll && !hasCategory(o, f.CategoryID) {
			continue
		}

		b, ok := buckets[day]
		if !ok {
			b = &entity.DailyBucket{Date: day.midnight(loc), TotalAmount: decimal.Zero}
			buckets[day] = b
		}
		b.OrderCount++
		b.TotalAmount = b.TotalAmount.Add(o.Total)
		total = total.Add(o.Total)

		for _, it := range o.Items {
			key := it.ProductID
			if key == "" {
				key = it.Name
			}
			r, ok := ranks[key]
			if !ok {
				r = &entity.ProductRanking{ProductID: it.ProductID, Name: it.Name, Revenue: decimal.Zero}
				ranks[key] = r
				rankOrder = append(rankOrder, key)
			}
			r.QuantitySold += it.Quantity
			r.Revenue = r.Revenue.Add(it.Amount())
		}
	}

	daily := make([]entity.DailyBucket, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, *b)
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date.Before(daily[j].Date) })

	rankings := make([]entity.ProductRanking, 0, len(rankOrder))
	for _, k := range rankOrder {
		rankings = append(rankings, *ranks[k])
	}
	sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].Revenue.GreaterThan(rankings[j].Revenue) })

	return entity.SalesReport{Filter: f, DailyBuckets: daily, Rankings: rankings, TotalAmount: total}
}

// TopN recorta el ranking a los n primeros (n <= 0 = sin límite).
func TopN(r []entity.ProductRanking, n int) []entity.ProductRanking {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

func hasCategory(o *entity.Order, categoryID string) bool {
	for _, it := range o.Items {
		if it.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// civilDay fecha sin hora ni zona.
type civilDay struct {
	y int
	m time.Month
	d int
}

func dayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}

func (c civilDay) Before(o civilDay) bool {
	if c.y != o.y {
		return c.y < o.y
	}
	if c.m != o.m {
		return c.m < o.m
	}
	return c.d < o.d
}

func (c civilDay) After(o civilDay) bool { return o.Before(c) }

func (c civilDay) midnight(loc *time.Location) time.Time {
	return time.Date(c.y, c.m, c.d, 0, 0, 0, 0, loc)
}
