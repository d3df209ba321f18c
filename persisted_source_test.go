package loonge

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

type persistedSourceMap map[string]string

func (m persistedSourceMap) GetPersistedSource(ctx context.Context, hash []byte) string {
	return m[string(hash)]
}

func (m persistedSourceMap) PersistSource(ctx context.Context, source string, hash []byte) {
	m[string(hash)] = source
}

func TestPersistedSourceExtension(t *testing.T) {
	storage := persistedSourceMap{}
	success := &TokenizeResponse{}
	source := `let x = 1;`
	sourceHash := sha256.Sum256([]byte(source))
	sourceHashHex := hex.EncodeToString(sourceHash[:])
	tokenize := PersistedSourceExtension(storage, func(r *TokenizeRequest) *TokenizeResponse {
		assert.Equal(t, source, r.Source)
		return success
	})

	extensions := map[string]interface{}{
		"persistedSource": map[string]interface{}{
			"version":    1,
			"sha256Hash": sourceHashHex,
		},
	}

	assert.Equal(t, &TokenizeResponse{
		Tokens: []Item{},
		Errors: []*Error{
			{
				Message: "PersistedSourceNotFound",
			},
		},
	}, tokenize(&TokenizeRequest{
		Extensions: extensions,
	}))

	assert.Equal(t, success, tokenize(&TokenizeRequest{
		Source:     source,
		Extensions: extensions,
	}))

	assert.Equal(t, success, tokenize(&TokenizeRequest{
		Extensions: extensions,
	}))
}

func TestPersistedSourceExtension_EmptySource(t *testing.T) {
	called := false
	tokenize := PersistedSourceExtension(persistedSourceMap{}, func(r *TokenizeRequest) *TokenizeResponse {
		called = true
		assert.Equal(t, "", r.Source)
		return &TokenizeResponse{}
	})
	tokenize(&TokenizeRequest{
		Extensions: map[string]interface{}{
			"persistedSource": map[string]interface{}{
				"version":    1.0,
				"sha256Hash": hex.EncodeToString(emptyStringHash[:]),
			},
		},
	})
	assert.True(t, called)
}
