package service

import (
	"strings"
	"time"

	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/sales/domain"
)

// FilterSales applies status, search, type and date bucket as a conjunction.
// Input order is preserved and sales is never mutated.
func FilterSales(sales []domain.Sale, f domain.SaleFilter) []domain.Sale {
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))
	status := statusFilter(f.Status)
	inBucket := bucketMatcher(f.DateBucket, f.Now)

	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if status != "" && s.PaymentStatus != status {
			continue
		}
		if !isAll(f.Type) && !strings.EqualFold(s.Type, f.Type) {
			continue
		}
		if !matchesSale(s, term) {
			continue
		}
		if !inBucket(s.CreatedAt) {
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}

// CountByStatus feeds the filter-chip badges.
func CountByStatus(sales []domain.Sale) domain.StatusCounts {
	var c domain.StatusCounts
	for _, s := range sales {
		c.All++
		switch s.PaymentStatus {
		case domain.PaymentPaid:
			c.Paid++
		case domain.PaymentPartial:
			c.Partial++
		case domain.PaymentCancelled:
			c.Cancelled++
		case domain.PaymentCredit:
			c.Credit++
		}
	}
	return c
}

func isAll(v string) bool {
	return v == "" || strings.EqualFold(v, "all")
}

// statusFilter normalizes the status chip; "" means every status.
func statusFilter(v string) domain.PaymentStatus {
	if isAll(v) {
		return ""
	}
	status := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(v)))
	if !status.Valid() {
		logger.Warn("sales filter: unknown status, matching all statuses", "status", v)
		return ""
	}
	return status
}

func matchesSale(s domain.Sale, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(s.OrderNumber), term) {
		return true
	}
	for _, l := range s.Lines {
		if strings.Contains(strings.ToLower(l.Name), term) {
			return true
		}
	}
	return false
}

// bucketMatcher returns the calendar window test for bucket, anchored on now:
// today is the current day, week starts on Monday, month is the calendar month.
func bucketMatcher(bucket domain.DateBucket, now time.Time) func(time.Time) bool {
	if now.IsZero() {
		now = time.Now()
	}
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := dayStart.AddDate(0, 0, 1)

	var start time.Time
	switch bucket {
	case "", domain.BucketAll:
		return func(time.Time) bool { return true }
	case domain.BucketToday:
		start = dayStart
	case domain.BucketWeek:
		offset := (int(now.Weekday()) + 6) % 7
		start = dayStart.AddDate(0, 0, -offset)
	case domain.BucketMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		logger.Warn("sales filter: unknown date bucket, matching all dates", "date", string(bucket))
		return func(time.Time) bool { return true }
	}
	return func(t time.Time) bool {
		t = t.In(now.Location())
		return !t.Before(start) && t.Before(end)
	}
}
