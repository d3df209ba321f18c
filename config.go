package loonge

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxSourceSize   = 1 << 20
	defaultDefaultPageSize = 500
	defaultMaxPageSize     = 5000
)

// Config defines the behavior of an API. The zero value is usable.
type Config struct {
	Logger               logrus.FieldLogger
	WebSocketOriginCheck func(r *http.Request) bool

	// If given, clients may send the sha256 hash of a source they have sent before instead of the
	// source itself.
	PersistedSourceStorage PersistedSourceStorage

	// The largest source, in bytes, that will be tokenized. Defaults to 1 MiB.
	MaxSourceSize int64

	// The number of tokens returned when a request doesn't ask for a specific number. Defaults to
	// 500.
	DefaultPageSize int

	// The largest number of tokens returned by one request. Defaults to 5000.
	MaxPageSize int

	// If given, this function is invoked when the server receives the lexws connection init
	// payload. If an error is returned, it will be sent to the client and the connection will be
	// closed. Otherwise the returned context will become associated with the connection.
	//
	// This is commonly used for authentication.
	HandleLexWSInit func(ctx context.Context, parameters json.RawMessage) (context.Context, error)
}

func (cfg *Config) validate() error {
	if cfg.MaxSourceSize < 0 {
		return errors.New("MaxSourceSize must not be negative")
	}
	if cfg.DefaultPageSize < 0 || cfg.MaxPageSize < 0 {
		return errors.New("page sizes must not be negative")
	}
	if cfg.DefaultPageSize > cfg.maxPageSize() {
		return errors.Errorf("DefaultPageSize (%v) exceeds MaxPageSize (%v)", cfg.DefaultPageSize, cfg.maxPageSize())
	}
	return nil
}

func (cfg *Config) maxSourceSize() int64 {
	if cfg.MaxSourceSize == 0 {
		return defaultMaxSourceSize
	}
	return cfg.MaxSourceSize
}

func (cfg *Config) defaultPageSize() int {
	if cfg.DefaultPageSize == 0 {
		if max := cfg.maxPageSize(); max < defaultDefaultPageSize {
			return max
		}
		return defaultDefaultPageSize
	}
	return cfg.DefaultPageSize
}

func (cfg *Config) maxPageSize() int {
	if cfg.MaxPageSize == 0 {
		return defaultMaxPageSize
	}
	return cfg.MaxPageSize
}
