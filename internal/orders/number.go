package orders

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

const fallbackPrefix = "CS"

// OrderNumberPrefix is the first two characters of the tenant slug, upper-cased.
func OrderNumberPrefix(slug string) string {
	trimmed := strings.TrimSpace(slug)
	if trimmed == "" {
		return fallbackPrefix
	}
	runes := []rune(trimmed)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// FormatOrderNumber renders PREFIX-YYYYMMDD-NNN.
func FormatOrderNumber(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", prefix, day.Format("20060102"), seq)
}

// dayBounds returns the start and end of the local calendar day containing now.
func dayBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// nextOrderNumber counts today's orders for the tenant and appends one. Two
// concurrent checkouts can read the same count; the unique index on
// order_number rejects the loser.
func (s *service) nextOrderNumber(ctx context.Context, repo Repository, tenantID uuid.UUID, slug string, now time.Time) string {
	start, end := dayBounds(now, s.loc)
	prefix := OrderNumberPrefix(slug)

	count, err := repo.CountCreatedBetween(ctx, tenantID, start, end)
	if err != nil {
		s.logWarn(ctx, "order number count failed; using random sequence")
		return FormatOrderNumber(prefix, start, rand.IntN(999)+1)
	}
	return FormatOrderNumber(prefix, start, int(count)+1)
}
