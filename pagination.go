package loonge

import (
	"encoding/base64"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack"
)

// PageInfo describes where a page of tokens sits within the whole stream.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor,omitempty"`
}

type pageCursor struct {
	// The number of tokens preceding the page.
	Index int
}

func serializeCursor(cursor pageCursor) (string, error) {
	b, err := msgpack.Marshal(cursor)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func deserializeCursor(s string) (pageCursor, bool) {
	var ret pageCursor
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		if err := msgpack.Unmarshal(b, &ret); err == nil && ret.Index >= 0 {
			return ret, true
		}
	}
	return pageCursor{}, false
}

// paginate returns up to first items following the after cursor. An empty cursor starts at the
// beginning.
func paginate(items []Item, after string, first int) ([]Item, *PageInfo, error) {
	start := 0
	if after != "" {
		cursor, ok := deserializeCursor(after)
		if !ok {
			return nil, nil, errors.New("invalid cursor")
		}
		start = cursor.Index
	}
	if start > len(items) {
		start = len(items)
	}

	end := start + first
	if end > len(items) {
		end = len(items)
	}

	info := &PageInfo{
		HasNextPage: end < len(items),
	}
	if end > start {
		endCursor, err := serializeCursor(pageCursor{Index: end})
		if err != nil {
			return nil, nil, errors.Wrap(err, "error serializing end cursor")
		}
		info.EndCursor = endCursor
	}
	return items[start:end], info, nil
}
