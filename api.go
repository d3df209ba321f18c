package loonge

import (
	"context"
	"io"
	"io/ioutil"
	"mime"
	"net/http"
	"strconv"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ccbrown/loonge/lexws"
)

// API serves tokenization over HTTP and WebSockets.
type API struct {
	config   *Config
	logger   logrus.FieldLogger
	tokenize func(*TokenizeRequest) *TokenizeResponse

	lexWSConnectionsMutex sync.Mutex
	lexWSConnections      map[*lexws.Connection]struct{}
}

func NewAPI(cfg *Config) (*API, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	api := &API{
		config:           cfg,
		logger:           logger,
		lexWSConnections: map[*lexws.Connection]struct{}{},
	}
	api.tokenize = api.executeTokenize
	if cfg.PersistedSourceStorage != nil {
		api.tokenize = PersistedSourceExtension(cfg.PersistedSourceStorage, api.tokenize)
	}
	return api, nil
}

type TokenizeRequest struct {
	Context context.Context

	Source string

	// The maximum number of tokens to return. If zero, the configured default is used.
	First int

	// A cursor returned by a previous response's PageInfo.
	After string

	Extensions map[string]interface{}
}

type TokenizeResponse struct {
	Tokens   []Item    `json:"tokens"`
	PageInfo *PageInfo `json:"pageInfo,omitempty"`
	Errors   []*Error  `json:"errors,omitempty"`
}

// Tokenize tokenizes the source of the request and returns the requested page of tokens. A lexical
// error is reported in the response's errors along with the tokens that precede it, on the page
// that reaches it.
func (api *API) Tokenize(r *TokenizeRequest) *TokenizeResponse {
	if r.Context == nil {
		r.Context = context.Background()
	}
	return api.tokenize(r)
}

func (api *API) executeTokenize(r *TokenizeRequest) *TokenizeResponse {
	if int64(len(r.Source)) > api.config.maxSourceSize() {
		return &TokenizeResponse{
			Tokens: []Item{},
			Errors: []*Error{{Message: "source is too large"}},
		}
	}

	first := r.First
	if first <= 0 {
		first = api.config.defaultPageSize()
	} else if max := api.config.maxPageSize(); first > max {
		first = max
	}

	items, lexErr := Tokenize(r.Source)

	page, info, err := paginate(items, r.After, first)
	if err != nil {
		return &TokenizeResponse{
			Tokens: []Item{},
			Errors: []*Error{newError(err)},
		}
	}

	ret := &TokenizeResponse{
		Tokens:   page,
		PageInfo: info,
	}
	if ret.Tokens == nil {
		ret.Tokens = []Item{}
	}
	if lexErr != nil && !info.HasNextPage {
		api.logger.WithField("error", lexErr.Error()).Debug("lexical error")
		ret.Errors = []*Error{newError(lexErr)}
	}
	return ret
}

// NewTokenizeRequestFromHTTP reads a tokenize request. The source may be given as the "source"
// query parameter of a GET request, as the body of a text/plain POST request, or within a JSON POST
// body. The returned int is the HTTP status to respond with if an error is returned.
func NewTokenizeRequestFromHTTP(r *http.Request, maxSourceSize int64) (*TokenizeRequest, int, error) {
	req := &TokenizeRequest{
		Context: r.Context(),
	}

	query := r.URL.Query()
	req.After = query.Get("after")
	if first := query.Get("first"); first != "" {
		n, err := strconv.Atoi(first)
		if err != nil || n < 0 {
			return nil, http.StatusBadRequest, errors.New("first must be a non-negative integer")
		}
		req.First = n
	}

	switch r.Method {
	case http.MethodGet:
		if _, ok := query["source"]; !ok {
			return nil, http.StatusBadRequest, errors.New("source parameter is required")
		}
		req.Source = query.Get("source")
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil {
			return nil, http.StatusBadRequest, errors.Wrap(err, "invalid content type")
		}

		// the json envelope gets some room beyond the source itself
		limit := maxSourceSize
		if mediaType == "application/json" {
			limit = 2*maxSourceSize + 4096
		}
		body, err := ioutil.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			return nil, http.StatusBadRequest, errors.Wrap(err, "unable to read request body")
		}
		if int64(len(body)) > limit {
			return nil, http.StatusRequestEntityTooLarge, errors.New("request body is too large")
		}

		switch mediaType {
		case "text/plain":
			req.Source = string(body)
		case "application/json":
			var payload struct {
				Source     string                 `json:"source"`
				First      int                    `json:"first"`
				After      string                 `json:"after"`
				Extensions map[string]interface{} `json:"extensions"`
			}
			if err := jsoniter.Unmarshal(body, &payload); err != nil {
				return nil, http.StatusBadRequest, errors.Wrap(err, "malformed json body")
			}
			if payload.First < 0 {
				return nil, http.StatusBadRequest, errors.New("first must be a non-negative integer")
			}
			req.Source = payload.Source
			req.Extensions = payload.Extensions
			if payload.First != 0 {
				req.First = payload.First
			}
			if payload.After != "" {
				req.After = payload.After
			}
		default:
			return nil, http.StatusBadRequest, errors.Errorf("unsupported content type %v", mediaType)
		}
	default:
		return nil, http.StatusMethodNotAllowed, errors.Errorf("method %v not allowed", r.Method)
	}

	if int64(len(req.Source)) > maxSourceSize {
		return nil, http.StatusRequestEntityTooLarge, errors.New("source is too large")
	}
	return req, http.StatusOK, nil
}

// ServeTokenize serves tokenize requests, responding with a JSON TokenizeResponse.
func (api *API) ServeTokenize(w http.ResponseWriter, r *http.Request) {
	req, code, err := NewTokenizeRequestFromHTTP(r, api.config.maxSourceSize())
	if err != nil {
		http.Error(w, err.Error(), code)
		return
	}

	body, err := jsoniter.Marshal(api.Tokenize(req))
	if err != nil {
		api.logger.Error(errors.Wrap(err, "unable to marshal tokenize response"))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}
