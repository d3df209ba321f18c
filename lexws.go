package loonge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/ccbrown/loonge/lexws"
)

type lexWSHandler struct {
	API        *API
	Connection *lexws.Connection
	Context    context.Context

	streamsMutex sync.Mutex
	streams      map[string]*lexWSStream
}

type lexWSStream struct {
	cancel context.CancelFunc
}

func (h *lexWSHandler) HandleInit(parameters json.RawMessage) error {
	if f := h.API.config.HandleLexWSInit; f != nil {
		if ctx, err := f(h.Context, parameters); err != nil {
			return err
		} else {
			h.Context = ctx
		}
	}
	return nil
}

func (h *lexWSHandler) HandleStart(id string, source string) {
	// Note we can't use h.Context for sends or for the lifetime of the stream, because the Go http
	// package closes it after a hijacked connection's handler returns.
	if int64(len(source)) > h.API.config.maxSourceSize() {
		h.sendError(context.Background(), id, &Error{Message: "source is too large"})
		h.sendComplete(context.Background(), id)
		return
	}

	h.streamsMutex.Lock()
	if _, ok := h.streams[id]; ok {
		// the stream already exists, ignore this message
		h.streamsMutex.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	stream := &lexWSStream{
		cancel: cancel,
	}
	if h.streams == nil {
		h.streams = map[string]*lexWSStream{}
	}
	h.streams[id] = stream
	h.streamsMutex.Unlock()

	go func() {
		defer cancel()

		var sendErr error
		err := Scan(source, func(item Item) bool {
			sendErr = h.Connection.SendData(ctx, id, item)
			return sendErr == nil
		})

		// the id may be reused as soon as the client sees complete
		h.removeStream(id, stream)

		if sendErr != nil {
			if sendErr != context.Canceled && sendErr != lexws.ErrConnectionClosed {
				h.Connection.Logger.Warn(errors.Wrap(sendErr, "error sending lexws data"))
			}
			if sendErr == context.Canceled {
				h.sendComplete(context.Background(), id)
			}
			return
		}
		if err != nil {
			h.API.logger.WithField("error", err.Error()).Debug("lexical error")
			h.sendError(context.Background(), id, newError(err))
		}
		h.sendComplete(context.Background(), id)
	}()
}

// removeStream forgets the stream registered under id, unless the id has since been taken by
// another stream.
func (h *lexWSHandler) removeStream(id string, stream *lexWSStream) {
	h.streamsMutex.Lock()
	defer h.streamsMutex.Unlock()
	if h.streams[id] == stream {
		delete(h.streams, id)
	}
}

func (h *lexWSHandler) sendError(ctx context.Context, id string, payload *Error) {
	if err := h.Connection.SendError(ctx, id, payload); err != nil && err != lexws.ErrConnectionClosed {
		h.Connection.Logger.Warn(errors.Wrap(err, "error sending lexws error"))
	}
}

func (h *lexWSHandler) sendComplete(ctx context.Context, id string) {
	if err := h.Connection.SendComplete(ctx, id); err != nil && err != lexws.ErrConnectionClosed {
		h.Connection.Logger.Warn(errors.Wrap(err, "error sending lexws complete"))
	}
}

func (h *lexWSHandler) HandleStop(id string) {
	h.streamsMutex.Lock()
	defer h.streamsMutex.Unlock()
	if stream, ok := h.streams[id]; ok {
		stream.cancel()
		delete(h.streams, id)
	}
}

func (h *lexWSHandler) HandleClose() {
	h.streamsMutex.Lock()
	for _, stream := range h.streams {
		stream.cancel()
	}
	h.streams = nil
	h.streamsMutex.Unlock()

	h.API.lexWSConnectionsMutex.Lock()
	defer h.API.lexWSConnectionsMutex.Unlock()
	delete(h.API.lexWSConnections, h.Connection)
}

// ServeLexWS serves a lexws WebSocket connection. This method hijacks connections. To gracefully
// close them, use CloseHijackedConnections.
func (api *API) ServeLexWS(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	var upgrader = websocket.Upgrader{
		CheckOrigin:       api.config.WebSocketOriginCheck,
		EnableCompression: true,
		Subprotocols:      []string{lexws.WebSocketSubprotocol},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already responded
		return
	}

	connection := &lexws.Connection{
		Logger: api.logger,
	}

	api.lexWSConnectionsMutex.Lock()
	api.lexWSConnections[connection] = struct{}{}
	api.lexWSConnectionsMutex.Unlock()

	connection.Handler = &lexWSHandler{
		API:        api,
		Connection: connection,
		Context:    r.Context(),
	}
	connection.Serve(conn)
}

// CloseHijackedConnections closes connections hijacked by ServeLexWS.
func (api *API) CloseHijackedConnections() {
	api.lexWSConnectionsMutex.Lock()
	connections := make([]*lexws.Connection, len(api.lexWSConnections))
	i := 0
	for connection := range api.lexWSConnections {
		connections[i] = connection
		i++
	}
	api.lexWSConnections = map[*lexws.Connection]struct{}{}
	api.lexWSConnectionsMutex.Unlock()

	for _, connection := range connections {
		if err := connection.Close(); err != nil {
			connection.Logger.Error(errors.Wrap(err, "error closing connection"))
		}
	}
}
