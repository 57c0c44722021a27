// Package pagination implements the cursor convention shared by every list
// endpoint: requests carry {limit, cursor}, responses carry {items, next_cursor}.
// The cursor is an opaque base64 keyset token over (created_at, id).
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

var ErrInvalidCursor = errors.New("invalid pagination cursor")

// Cursor is a keyset position: the created_at and id of the last item of the
// previous page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// ClampLimit normalizes a requested page size into [1, MaxLimit].
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// Encode serializes a cursor into an opaque token.
func Encode(createdAt time.Time, id uuid.UUID) string {
	raw := fmt.Sprintf("%s|%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses a token produced by Encode. An empty token yields a nil
// cursor, meaning "first page".
func Decode(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, ErrInvalidCursor
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return nil, ErrInvalidCursor
	}
	return &Cursor{CreatedAt: createdAt, ID: id}, nil
}

// Page is the generic list response shape.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// BuildPage trims an over-fetched result set (limit+1 items requested) down
// to limit and derives the next cursor from the last returned item.
func BuildPage[T any](items []T, limit int, key func(T) (time.Time, uuid.UUID)) *Page[T] {
	page := &Page[T]{Items: items}
	if len(items) > limit {
		page.Items = items[:limit]
		createdAt, id := key(page.Items[limit-1])
		page.NextCursor = Encode(createdAt, id)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}
