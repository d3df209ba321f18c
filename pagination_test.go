package loonge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeCursor(t *testing.T) {
	s, err := serializeCursor(pageCursor{Index: 1234})
	require.NoError(t, err)

	cursor, ok := deserializeCursor(s)
	assert.True(t, ok)
	assert.Equal(t, 1234, cursor.Index)

	for _, s := range []string{"!!!", ""} {
		_, ok := deserializeCursor(s)
		assert.False(t, ok, s)
	}
}

func TestPaginate(t *testing.T) {
	items, err := Tokenize("a b c d e")
	require.NoError(t, err)

	var pages [][]Item
	after := ""
	for {
		page, info, err := paginate(items, after, 2)
		require.NoError(t, err)
		pages = append(pages, page)
		if !info.HasNextPage {
			assert.NotEmpty(t, info.EndCursor)
			break
		}
		after = info.EndCursor
	}

	require.Len(t, pages, 3)
	assert.Equal(t, items[0:2], pages[0])
	assert.Equal(t, items[2:4], pages[1])
	assert.Equal(t, items[4:5], pages[2])

	page, info, err := paginate(items, after, 10)
	require.NoError(t, err)
	assert.Equal(t, items[4:], page)
	assert.False(t, info.HasNextPage)

	end, err := serializeCursor(pageCursor{Index: 100})
	require.NoError(t, err)
	page, info, err = paginate(items, end, 2)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, &PageInfo{}, info)

	_, _, err = paginate(items, "!!!", 2)
	assert.Error(t, err)
}
