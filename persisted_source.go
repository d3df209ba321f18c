package loonge

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
)

// PersistedSourceStorage represents the storage backend for persisted sources. Storage operations
// are done on a best effort basis and cannot return errors – any errors that happen internally will
// not prevent tokenization (though they might force clients to make additional requests).
type PersistedSourceStorage interface {
	// GetPersistedSource should return the source if it's available or an empty string otherwise.
	GetPersistedSource(ctx context.Context, hash []byte) string

	// PersistSource should persist the source with the given hash.
	PersistSource(ctx context.Context, source string, hash []byte)
}

var emptyStringHash = sha256.Sum256([]byte(""))

// PersistedSourceExtension lets clients refer to previously sent sources by their sha256 hash, in
// the manner of Apollo's persisted queries. The request extension looks like this:
//
//	{"persistedSource": {"version": 1, "sha256Hash": "<hex>"}}
//
// Typically this shouldn't be invoked directly. Instead, set the PersistedSourceStorage Config
// field.
func PersistedSourceExtension(storage PersistedSourceStorage, tokenize func(*TokenizeRequest) *TokenizeResponse) func(*TokenizeRequest) *TokenizeResponse {
	return func(input *TokenizeRequest) *TokenizeResponse {
		r := *input
		ext, _ := r.Extensions["persistedSource"].(map[string]interface{})
		switch ext["version"] {
		case 1, 1.0:
			if r.Source == "" {
				// errors parsing the hash can be ignored: hash will end up empty and we'll error
				// out due to not being able to find the source
				hashHex, _ := ext["sha256Hash"].(string)
				hash, _ := hex.DecodeString(hashHex)

				found := false
				if bytes.Equal(hash, emptyStringHash[:]) {
					found = true
				} else if len(hash) == sha256.Size {
					if source := storage.GetPersistedSource(r.Context, hash); source != "" {
						r.Source = source
						found = true
					}
				}
				if !found {
					return &TokenizeResponse{
						Tokens: []Item{},
						Errors: []*Error{
							{
								Message: "PersistedSourceNotFound",
							},
						},
					}
				}
			} else {
				hash := sha256.Sum256([]byte(r.Source))
				storage.PersistSource(r.Context, r.Source, hash[:])
			}
		}
		return tokenize(&r)
	}
}
