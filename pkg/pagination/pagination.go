package pagination

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/capstudio-backend/pkg/errors"
)

const (
	// DefaultLimit is the admin order page size when none is requested.
	DefaultLimit = 20
	// MaxLimit caps a single page.
	MaxLimit = 100

	cursorSeparator = "|"
)

// Params carries keyset pagination inputs from controllers to repositories.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor points at the last row of the previous page, ordered by (created_at, id) descending.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// LimitWithBuffer asks for one extra row so callers can tell whether another page exists.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor renders an opaque, query-string safe token.
func EncodeCursor(cursor Cursor) string {
	payload := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + cursor.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes a token from EncodeCursor. An empty value means the first page.
func ParseCursor(value string) (*Cursor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, invalidCursor()
	}
	createdAt, id, ok := strings.Cut(string(decoded), cursorSeparator)
	if !ok {
		return nil, invalidCursor()
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, invalidCursor()
	}
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, invalidCursor()
	}
	return &Cursor{CreatedAt: t, ID: parsedID}, nil
}

// Trim cuts a buffered result set down to one page and reports the row the next cursor
// should be built from.
func Trim[T any](rows []T, limit int) ([]T, *T) {
	size := NormalizeLimit(limit)
	if len(rows) <= size {
		return rows, nil
	}
	last := rows[size-1]
	return rows[:size], &last
}

func invalidCursor() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor").
		WithDetails(map[string]any{"field": "cursor"})
}
