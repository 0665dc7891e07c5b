package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
)

// Cursor is the opaque pagination state we encode/decode.
// It points at the last item served from a list ordered by
// (CreatedUnix DESC, ID DESC); both fields together make it stable.
// CreatedUnix carries full nanosecond precision so items created within
// the same millisecond still order exactly.
type Cursor struct {
	ID          uint64 `json:"id"`
	CreatedUnix int64  `json:"created_unix,omitempty"` // nanos
}

// After reports whether an item with the given key comes after the cursor
// in (created DESC, id DESC) order. The zero cursor precedes everything.
func (c Cursor) After(id uint64, created time.Time) bool {
	if c == (Cursor{}) {
		return true
	}
	ns := created.UnixNano()
	if ns != c.CreatedUnix {
		return ns < c.CreatedUnix
	}
	return id < c.ID
}

// Encode converts a Cursor into a Base64 string.
func Encode(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Decode parses a Base64 string into a Cursor.
// Empty token → empty cursor (first page).
func Decode(token string) (Cursor, error) {
	if token == "" {
		return Cursor{}, nil
	}

	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, svcErr.Invalid("invalid pagination token")
	}

	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return Cursor{}, svcErr.Invalid("invalid pagination token")
	}
	return c, nil
}

// Page returns up to size items of sorted that come after the cursor, and
// the cursor of the last returned item when more remain. key extracts the
// ordering key of an item. size <= 0 returns everything after the cursor.
func Page[T any](sorted []T, after Cursor, size int, key func(T) (uint64, time.Time)) ([]T, *Cursor) {
	start := len(sorted)
	for i, item := range sorted {
		id, created := key(item)
		if after.After(id, created) {
			start = i
			break
		}
	}

	rest := sorted[start:]
	if size <= 0 || len(rest) <= size {
		return rest, nil
	}

	page := rest[:size]
	id, created := key(page[size-1])
	return page, &Cursor{ID: id, CreatedUnix: created.UnixNano()}
}
