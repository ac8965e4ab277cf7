package dashboard

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srihari7072/golfzon-dashboard/internal/analytics"
	"github.com/srihari7072/golfzon-dashboard/internal/metrics"
	"github.com/srihari7072/golfzon-dashboard/internal/store/reservations"
	"github.com/srihari7072/golfzon-dashboard/internal/store/visitors"
)

// Course capacity constants for the today panel.
const (
	dailyCapacity = 80
	part1Capacity = 50
	part2Capacity = 30
	part3Capacity = 15
)

// PaymentSource supplies sales data.
type PaymentSource interface {
	DailyTotals(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	LatestPayDate(ctx context.Context) (time.Time, bool, error)
	SumBetween(ctx context.Context, start, end time.Time) (float64, error)
	AvgBetween(ctx context.Context, start, end time.Time) (float64, error)
}

// ReservationSource supplies booking data.
type ReservationSource interface {
	DailyCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	LatestDate(ctx context.Context) (time.Time, bool, error)
	TimedTeamCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	HourCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	TeeTimesOn(ctx context.Context, day time.Time) ([]analytics.Event, error)
	CountBetween(ctx context.Context, start, end time.Time) (int, error)
	CountOn(ctx context.Context, day time.Time) (int, error)
	DetailsOn(ctx context.Context, day time.Time, limit int) ([]reservations.Detail, error)
	LeadDays(ctx context.Context) ([]reservations.LeadCount, error)
	TypeCodes(ctx context.Context) ([]reservations.CodeCount, error)
	Channels(ctx context.Context) ([]reservations.ChannelRow, error)
}

// VisitorSource supplies check-in and member data.
type VisitorSource interface {
	DailyCounts(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	BookingHours(ctx context.Context, start, end time.Time) ([]analytics.Event, error)
	GenderCounts(ctx context.Context) ([]visitors.CodeCount, error)
	AgeCounts(ctx context.Context) ([]visitors.AgeCount, error)
}

// Cache is an optional read-through response cache. Both methods fail open:
// a broken cache degrades to direct queries, never to an error.
type Cache interface {
	Get(ctx context.Context, key string, v any) bool
	Set(ctx context.Context, key string, v any)
}

// Service aggregates the three sources into dashboard payloads.
//
// Operations do not fail on source errors: a failing query is logged, its
// rows degrade to an empty set, and the response is still the fully-populated
// zero-valued structure, so charts render "no data" instead of breaking.
// Degraded responses are never cached.
type Service struct {
	log          *zap.Logger
	payments     PaymentSource
	reservations ReservationSource
	visitors     VisitorSource
	cache        Cache
	resolver     analytics.Resolver
	now          func() time.Time
}

func NewService(log *zap.Logger, p PaymentSource, r ReservationSource, v VisitorSource, cache Cache) *Service {
	s := &Service{
		log:          log,
		payments:     p,
		reservations: r,
		visitors:     v,
		cache:        cache,
		now:          time.Now,
	}
	s.resolver = analytics.Resolver{Now: func() time.Time { return s.now() }}
	return s
}

// normalizePeriod folds any period string onto the two supported values.
func normalizePeriod(period string) (string, int) {
	if period == "7days" {
		return "7days", 7
	}
	return "30days", 30
}

// degrade records a failed source query. The caller proceeds with empty rows.
func (s *Service) degrade(op string, degraded *atomic.Bool, err error) {
	degraded.Store(true)
	metrics.SourceFailures.WithLabelValues(op).Inc()
	s.log.Error("source query failed", zap.String("operation", op), zap.Error(err))
}

// SalesTrend builds the payment chart, anchored at the latest pay date so a
// stale table still renders a full window.
func (s *Service) SalesTrend(ctx context.Context, period string) (*SalesTrend, error) {
	defer s.observe("sales_trend")()
	period, days := normalizePeriod(period)

	key := "dashboard:sales:" + period
	var cached SalesTrend
	if s.fromCache(ctx, "sales_trend", key, &cached) {
		return &cached, nil
	}

	var degraded atomic.Bool
	latest, _, err := s.payments.LatestPayDate(ctx)
	if err != nil {
		s.degrade("sales_trend", &degraded, err)
		latest = time.Time{}
	}
	p := s.resolver.Resolve(analytics.LatestInData, latest, days)

	var curRows, prevRows []analytics.Event
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.payments.DailyTotals(gctx, p.Current.Start, p.Current.End)
		if err != nil {
			s.degrade("sales_trend", &degraded, err)
			return nil
		}
		curRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.payments.DailyTotals(gctx, p.Previous.Start, p.Previous.End)
		if err != nil {
			s.degrade("sales_trend", &degraded, err)
			return nil
		}
		prevRows = rows
		return nil
	})
	_ = g.Wait()

	cur := analytics.BuildSeries(curRows, p.Current)
	prev := analytics.BuildSeries(prevRows, p.Previous)
	sum := analytics.Summarize(cur, prev)
	resp := &SalesTrend{
		CurrentData:      cur.Values(),
		PrevYearData:     prev.Values(),
		Labels:           cur.Labels(),
		Totals:           Totals{sum.CurrentTotal, sum.PrevYearTotal, sum.GrowthPercentage},
		AverageUnitPrice: sum.Average,
		DaysWithSales:    cur.ActiveDays(),
		TotalDays:        len(cur),
		Period:           period,
		DateRange:        rangeOf(p.Current),
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// VisitorTrend builds the visitor chart with section and gender splits. It is
// anchored at the wall clock: an empty recent stretch should show as zeros.
func (s *Service) VisitorTrend(ctx context.Context, period string) (*VisitorTrend, error) {
	defer s.observe("visitor_trend")()
	period, days := normalizePeriod(period)

	key := "dashboard:visitors:" + period
	var cached VisitorTrend
	if s.fromCache(ctx, "visitor_trend", key, &cached) {
		return &cached, nil
	}

	p := s.resolver.Resolve(analytics.WallClock, time.Time{}, days)

	var (
		degraded          atomic.Bool
		curRows, prevRows []analytics.Event
		hours             []analytics.Event
		genders           []visitors.CodeCount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.visitors.DailyCounts(gctx, p.Current.Start, p.Current.End)
		if err != nil {
			s.degrade("visitor_trend", &degraded, err)
			return nil
		}
		curRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.visitors.DailyCounts(gctx, p.Previous.Start, p.Previous.End)
		if err != nil {
			s.degrade("visitor_trend", &degraded, err)
			return nil
		}
		prevRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.visitors.BookingHours(gctx, p.Current.Start, p.Current.End)
		if err != nil {
			s.degrade("visitor_trend", &degraded, err)
			return nil
		}
		hours = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.visitors.GenderCounts(gctx)
		if err != nil {
			s.degrade("visitor_trend", &degraded, err)
			return nil
		}
		genders = rows
		return nil
	})
	_ = g.Wait()

	cur := analytics.BuildSeries(curRows, p.Current)
	prev := analytics.BuildSeries(prevRows, p.Previous)
	sum := analytics.Summarize(cur, prev)
	resp := &VisitorTrend{
		CurrentData:   cur.Values(),
		PrevYearData:  prev.Values(),
		Labels:        cur.Labels(),
		Totals:        Totals{sum.CurrentTotal, sum.PrevYearTotal, sum.GrowthPercentage},
		SectionTotals: sectionTotals(hours),
		GenderRatio:   genderRatio(genders),
		Period:        period,
		DateRange:     rangeOf(p.Current),
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// ReservationTrend builds the reservation chart. The window anchors at the
// latest booked date but never extends into the future.
func (s *Service) ReservationTrend(ctx context.Context, period string) (*ReservationTrend, error) {
	defer s.observe("reservation_trend")()
	period, days := normalizePeriod(period)

	key := "dashboard:reservations:" + period
	var cached ReservationTrend
	if s.fromCache(ctx, "reservation_trend", key, &cached) {
		return &cached, nil
	}

	var degraded atomic.Bool
	latest, _, err := s.reservations.LatestDate(ctx)
	if err != nil {
		s.degrade("reservation_trend", &degraded, err)
		latest = time.Time{}
	}
	p := s.resolver.ResolveClamped(analytics.LatestInData, latest, days)

	var (
		curRows, prevRows []analytics.Event
		hours             []analytics.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reservations.DailyCounts(gctx, p.Current.Start, p.Current.End)
		if err != nil {
			s.degrade("reservation_trend", &degraded, err)
			return nil
		}
		curRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.DailyCounts(gctx, p.Previous.Start, p.Previous.End)
		if err != nil {
			s.degrade("reservation_trend", &degraded, err)
			return nil
		}
		prevRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.HourCounts(gctx, p.Current.Start, p.Current.End)
		if err != nil {
			s.degrade("reservation_trend", &degraded, err)
			return nil
		}
		hours = rows
		return nil
	})
	_ = g.Wait()

	cur := analytics.BuildSeries(curRows, p.Current)
	prev := analytics.BuildSeries(prevRows, p.Previous)
	sum := analytics.Summarize(cur, prev)
	resp := &ReservationTrend{
		CurrentData:        cur.Values(),
		PrevYearData:       prev.Values(),
		Labels:             cur.Labels(),
		Totals:             Totals{sum.CurrentTotal, sum.PrevYearTotal, sum.GrowthPercentage},
		OperationBreakdown: operationBreakdown(hours),
		Period:             period,
		DateRange:          rangeOf(p.Current),
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// Heatmap builds the weekly booking density grid over the most recent seven
// days of data.
func (s *Service) Heatmap(ctx context.Context) (*Heatmap, error) {
	defer s.observe("heatmap")()

	key := "dashboard:heatmap"
	var cached Heatmap
	if s.fromCache(ctx, "heatmap", key, &cached) {
		return &cached, nil
	}

	var degraded atomic.Bool
	latest, _, err := s.reservations.LatestDate(ctx)
	if err != nil {
		s.degrade("heatmap", &degraded, err)
		latest = time.Time{}
	}
	p := s.resolver.ResolveClamped(analytics.LatestInData, latest, 7)

	events, err := s.reservations.TimedTeamCounts(ctx, p.Current.Start, p.Current.End)
	if err != nil {
		s.degrade("heatmap", &degraded, err)
		events = nil
	}
	grid, details := analytics.BuildHeatmap(events, p.Current)
	resp := &Heatmap{Heatmap: grid, CellDetails: details, DateRange: rangeOf(p.Current)}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// MemberComposition builds the three reservation pies over the whole booking
// history.
func (s *Service) MemberComposition(ctx context.Context) (*Composition, error) {
	defer s.observe("member_composition")()

	key := "dashboard:composition"
	var cached Composition
	if s.fromCache(ctx, "member_composition", key, &cached) {
		return &cached, nil
	}

	var (
		degraded atomic.Bool
		types    []reservations.CodeCount
		leads    []reservations.LeadCount
		channels []reservations.ChannelRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reservations.TypeCodes(gctx)
		if err != nil {
			s.degrade("member_composition", &degraded, err)
			return nil
		}
		types = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.LeadDays(gctx)
		if err != nil {
			s.degrade("member_composition", &degraded, err)
			return nil
		}
		leads = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.Channels(gctx)
		if err != nil {
			s.degrade("member_composition", &degraded, err)
			return nil
		}
		channels = rows
		return nil
	})
	_ = g.Wait()

	typeItems := make([]analytics.Weighted[string], 0, len(types))
	for _, t := range types {
		typeItems = append(typeItems, analytics.Weighted[string]{Value: t.Code, Weight: float64(t.Count)})
	}
	leadItems := make([]analytics.Weighted[int], 0, len(leads))
	for _, l := range leads {
		leadItems = append(leadItems, analytics.Weighted[int]{Value: l.DaysAhead, Weight: float64(l.Count)})
	}
	chanItems := make([]analytics.Weighted[reservations.ChannelRow], 0, len(channels))
	for _, c := range channels {
		chanItems = append(chanItems, analytics.Weighted[reservations.ChannelRow]{Value: c, Weight: float64(c.Count)})
	}

	resp := &Composition{
		ByType:    shareMap(bookingTypeRules.Tally(typeItems), nil),
		ByTime:    shareMap(leadTimeRules.Tally(leadItems), leadTimeLabels),
		ByChannel: shareMap(channelRules.Tally(chanItems), nil),
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// PerformanceIndicators builds the KPI cards: year-to-date and month-to-date
// sales, average order value, and reservation counts, each with a
// year-over-year trend.
func (s *Service) PerformanceIndicators(ctx context.Context) (*Performance, error) {
	defer s.observe("performance")()

	key := "dashboard:performance"
	var cached Performance
	if s.fromCache(ctx, "performance", key, &cached) {
		return &cached, nil
	}

	today := analytics.DateOf(s.now())
	yearStart := time.Date(today.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevToday := yearAgo(today)
	prevYearStart := time.Date(today.Year()-1, 1, 1, 0, 0, 0, 0, time.UTC)
	prevMonthStart := time.Date(today.Year()-1, today.Month(), 1, 0, 0, 0, 0, time.UTC)
	prevMonthEnd := time.Date(today.Year()-1, today.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	var (
		degraded                                     atomic.Bool
		salesYTD, salesPrevYTD, salesMTD, salesPrevM float64
		avgYTD, avgPrevYTD, avgMTD, avgPrevM         float64
		resYTD, resPrevYTD, resMTD, resPrevM         int
	)
	g, gctx := errgroup.WithContext(ctx)
	sumInto := func(dst *float64, start, end time.Time) {
		g.Go(func() error {
			v, err := s.payments.SumBetween(gctx, start, end)
			if err != nil {
				s.degrade("performance", &degraded, err)
				return nil
			}
			*dst = v
			return nil
		})
	}
	avgInto := func(dst *float64, start, end time.Time) {
		g.Go(func() error {
			v, err := s.payments.AvgBetween(gctx, start, end)
			if err != nil {
				s.degrade("performance", &degraded, err)
				return nil
			}
			*dst = v
			return nil
		})
	}
	countInto := func(dst *int, start, end time.Time) {
		g.Go(func() error {
			v, err := s.reservations.CountBetween(gctx, start, end)
			if err != nil {
				s.degrade("performance", &degraded, err)
				return nil
			}
			*dst = v
			return nil
		})
	}
	sumInto(&salesYTD, yearStart, today)
	sumInto(&salesPrevYTD, prevYearStart, prevToday)
	sumInto(&salesMTD, monthStart, today)
	sumInto(&salesPrevM, prevMonthStart, prevMonthEnd)
	avgInto(&avgYTD, yearStart, today)
	avgInto(&avgPrevYTD, prevYearStart, prevToday)
	avgInto(&avgMTD, monthStart, today)
	avgInto(&avgPrevM, prevMonthStart, prevMonthEnd)
	countInto(&resYTD, yearStart, today)
	countInto(&resPrevYTD, prevYearStart, prevToday)
	countInto(&resMTD, monthStart, today)
	countInto(&resPrevM, prevMonthStart, prevMonthEnd)
	_ = g.Wait()

	resp := &Performance{
		SalesPerformance: card(salesYTD, salesPrevYTD, salesMTD, salesPrevM),
		AvgOrderValue:    card(avgYTD, avgPrevYTD, avgMTD, avgPrevM),
		UtilizationRate:  card(float64(resYTD), float64(resPrevYTD), float64(resMTD), float64(resPrevM)),
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// AgeGroups builds the member age distribution over the whole person table.
func (s *Service) AgeGroups(ctx context.Context) (*AgeGroups, error) {
	defer s.observe("age_groups")()

	key := "dashboard:age_groups"
	var cached AgeGroups
	if s.fromCache(ctx, "age_groups", key, &cached) {
		return &cached, nil
	}

	var degraded atomic.Bool
	ages, err := s.visitors.AgeCounts(ctx)
	if err != nil {
		s.degrade("age_groups", &degraded, err)
		ages = nil
	}
	items := make([]analytics.Weighted[int], 0, len(ages))
	for _, a := range ages {
		items = append(items, analytics.Weighted[int]{Value: a.Age, Weight: float64(a.Count)})
	}

	resp := &AgeGroups{Groups: make(map[string]CategoryShare, 6)}
	for _, b := range ageRules.Tally(items) {
		resp.Groups[b.Key] = CategoryShare{Count: b.Count, Percentage: b.Percentage}
		resp.TotalCount += b.Count
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// TodayOverview builds the today panel: reservation gauge, tee-time part
// gauges, and the reservation list.
func (s *Service) TodayOverview(ctx context.Context) (*TodayOverview, error) {
	defer s.observe("today_overview")()

	key := "dashboard:today"
	var cached TodayOverview
	if s.fromCache(ctx, "today_overview", key, &cached) {
		return &cached, nil
	}

	today := analytics.DateOf(s.now())

	var (
		degraded atomic.Bool
		count    int
		tee      []analytics.Event
		details  []reservations.Detail
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.reservations.CountOn(gctx, today)
		if err != nil {
			s.degrade("today_overview", &degraded, err)
			return nil
		}
		count = n
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.TeeTimesOn(gctx, today)
		if err != nil {
			s.degrade("today_overview", &degraded, err)
			return nil
		}
		tee = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reservations.DetailsOn(gctx, today, dailyCapacity)
		if err != nil {
			s.degrade("today_overview", &degraded, err)
			return nil
		}
		details = rows
		return nil
	})
	_ = g.Wait()

	items := make([]analytics.Weighted[int], 0, len(tee))
	for _, e := range tee {
		items = append(items, analytics.Weighted[int]{Value: e.Hour, Weight: e.Value})
	}
	parts := map[string]float64{}
	for _, b := range teeTimeRules.Tally(items) {
		parts[b.Key] = b.Count
	}
	if details == nil {
		details = []reservations.Detail{}
	}

	resp := &TodayOverview{
		Reservations: Gauge{Current: count, Total: dailyCapacity},
		TeeTime: map[string]Gauge{
			"part1": {Current: int(parts["part1"]), Total: part1Capacity},
			"part2": {Current: int(parts["part2"]), Total: part2Capacity},
			"part3": {Current: int(parts["part3"]), Total: part3Capacity},
		},
		ReservationDetails: details,
	}
	if !degraded.Load() {
		s.toCache(ctx, key, resp)
	}
	return resp, nil
}

// sectionTotals tallies booked tee hours into the three operating parts.
func sectionTotals(hours []analytics.Event) SectionTotals {
	items := make([]analytics.Weighted[int], 0, len(hours))
	for _, e := range hours {
		items = append(items, analytics.Weighted[int]{Value: e.Hour, Weight: e.Value})
	}
	var st SectionTotals
	for _, b := range sectionRules.Tally(items) {
		switch b.Key {
		case "part1":
			st.Part1 = b.Count
		case "part2":
			st.Part2 = b.Count
		case "part3":
			st.Part3 = b.Count
		}
	}
	return st
}

// operationBreakdown converts hour counts into part percentage shares. Hours
// outside the operating day are dropped first so shares are relative to
// in-slot bookings only.
func operationBreakdown(hours []analytics.Event) OperationBreakdown {
	var items []analytics.Weighted[int]
	for _, e := range hours {
		if e.Hour >= 5 && e.Hour < 19 {
			items = append(items, analytics.Weighted[int]{Value: e.Hour, Weight: e.Value})
		}
	}
	var ob OperationBreakdown
	for _, b := range sectionRules.Tally(items) {
		switch b.Key {
		case "part1":
			ob.Part1 = b.Percentage
		case "part2":
			ob.Part2 = b.Percentage
		case "part3":
			ob.Part3 = b.Percentage
		}
		ob.Total += b.Count
	}
	return ob
}

func genderRatio(rows []visitors.CodeCount) GenderRatio {
	items := make([]analytics.Weighted[string], 0, len(rows))
	for _, r := range rows {
		items = append(items, analytics.Weighted[string]{Value: r.Code, Weight: float64(r.Count)})
	}
	var gr GenderRatio
	for _, b := range genderRules.Tally(items) {
		gr.TotalCount += b.Count
		switch b.Key {
		case "male":
			gr.MaleCount = b.Count
			gr.MalePercentage = b.Percentage
		case "female":
			gr.FemaleCount = b.Count
			gr.FemalePercentage = b.Percentage
		}
	}
	return gr
}

// shareMap shapes tally buckets into the pie payload: one entry per canonical
// key plus a "total" entry.
func shareMap(buckets []analytics.Bucket, labels map[string]string) map[string]any {
	m := make(map[string]any, len(buckets)+1)
	var total float64
	for _, b := range buckets {
		share := CategoryShare{Count: b.Count, Percentage: b.Percentage}
		if labels != nil {
			share.Label = labels[b.Key]
		}
		m[b.Key] = share
		total += b.Count
	}
	m["total"] = total
	return m
}

func card(current, prevCurrent, monthly, prevMonthly float64) PerformanceCard {
	return PerformanceCard{
		Current:      math.Round(current),
		Monthly:      math.Round(monthly),
		CurrentTrend: analytics.Growth(current, prevCurrent),
		MonthlyTrend: analytics.Growth(monthly, prevMonthly),
	}
}

// yearAgo shifts a date back one year; Feb 29 falls back to Feb 28.
func yearAgo(d time.Time) time.Time {
	t := time.Date(d.Year()-1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	if t.Month() != d.Month() {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func (s *Service) fromCache(ctx context.Context, op, key string, v any) bool {
	if s.cache == nil {
		return false
	}
	if s.cache.Get(ctx, key, v) {
		metrics.CacheHits.WithLabelValues(op).Inc()
		return true
	}
	metrics.CacheMisses.WithLabelValues(op).Inc()
	return false
}

func (s *Service) toCache(ctx context.Context, key string, v any) {
	if s.cache != nil {
		s.cache.Set(ctx, key, v)
	}
}

func (s *Service) observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.AggregationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
