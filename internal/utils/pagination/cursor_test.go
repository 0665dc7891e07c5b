package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/utils/pagination"
)

type item struct {
	id uint64
	at time.Time
}

func key(i item) (uint64, time.Time) { return i.id, i.at }

func TestEncodeDecode(t *testing.T) {
	c := pagination.Cursor{ID: 42, CreatedUnix: 1700000000000123456}
	tok, err := pagination.Encode(c)
	require.NoError(t, err)

	got, err := pagination.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	empty, err := pagination.Decode("")
	require.NoError(t, err)
	assert.Equal(t, pagination.Cursor{}, empty)

	_, err = pagination.Decode("%%%")
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)

	_, err = pagination.Decode("bm90IGpzb24=") // "not json"
	assert.ErrorIs(t, err, svcErr.ErrInvalidArgument)
}

func TestPage(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// created DESC, id DESC; 5 and 4 share a timestamp
	items := []item{
		{id: 7, at: base.Add(3 * time.Hour)},
		{id: 5, at: base.Add(2 * time.Hour)},
		{id: 4, at: base.Add(2 * time.Hour)},
		{id: 9, at: base.Add(time.Hour)},
		{id: 1, at: base},
	}

	var (
		cursor pagination.Cursor
		seen   []uint64
		pages  int
	)
	for {
		page, next := pagination.Page(items, cursor, 2, key)
		pages++
		for _, it := range page {
			seen = append(seen, it.id)
		}
		if next == nil {
			break
		}

		// cursors survive a token round trip
		tok, err := pagination.Encode(*next)
		require.NoError(t, err)
		cursor, err = pagination.Decode(tok)
		require.NoError(t, err)
	}

	assert.Equal(t, []uint64{7, 5, 4, 9, 1}, seen)
	assert.Equal(t, 3, pages)
}

func TestPage_AllAndPastEnd(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	items := []item{{id: 2, at: base.Add(time.Minute)}, {id: 1, at: base}}

	page, next := pagination.Page(items, pagination.Cursor{}, 0, key)
	assert.Len(t, page, 2)
	assert.Nil(t, next)

	page, next = pagination.Page(items, pagination.Cursor{ID: 1, CreatedUnix: base.UnixNano()}, 5, key)
	assert.Empty(t, page)
	assert.Nil(t, next)
}

func TestPage_SubMillisecondTimestamps(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	// same millisecond, different nanoseconds; the later-sorted item has the larger id
	items := []item{
		{id: 1, at: base.Add(900 * time.Microsecond)},
		{id: 2, at: base.Add(100 * time.Microsecond)},
		{id: 3, at: base},
	}

	var (
		cursor pagination.Cursor
		seen   []uint64
	)
	for range items {
		page, next := pagination.Page(items, cursor, 1, key)
		for _, it := range page {
			seen = append(seen, it.id)
		}
		if next == nil {
			break
		}
		tok, err := pagination.Encode(*next)
		require.NoError(t, err)
		cursor, err = pagination.Decode(tok)
		require.NoError(t, err)
	}

	assert.Equal(t, []uint64{1, 2, 3}, seen)
}
