package lexws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var ErrConnectionClosed = errors.New("connection closed")

// Connection represents a server-side lexws connection.
type Connection struct {
	Logger  logrus.FieldLogger
	Handler ConnectionHandler

	conn              *websocket.Conn
	readLoopDone      chan struct{}
	writeLoopDone     chan struct{}
	outgoing          chan *websocket.PreparedMessage
	close             chan struct{}
	beginClosingOnce  sync.Once
	finishClosingOnce sync.Once
	didInit           bool
}

// ConnectionHandler methods may be invoked on a separate goroutine, but invocations will never be
// made concurrently.
type ConnectionHandler interface {
	// Called when the server receives the init message. If an error is returned, it will be sent to
	// the client and the connection will be closed.
	HandleInit(parameters json.RawMessage) error

	// Called when the client wants the given source tokenized. The handler should call SendData
	// for each token, SendError if tokenization fails, and finally SendComplete. Streaming may
	// happen on another goroutine.
	HandleStart(id string, source string)

	// Called when the client is no longer interested in the stream with the given id.
	HandleStop(id string)

	// Called when the connection is closed.
	HandleClose()
}

const connectionSendBufferSize = 100

// Serve takes ownership of the given connection and begins reading / writing to it.
func (c *Connection) Serve(conn *websocket.Conn) {
	c.conn = conn
	c.readLoopDone = make(chan struct{})
	c.writeLoopDone = make(chan struct{})
	c.outgoing = make(chan *websocket.PreparedMessage, connectionSendBufferSize)
	c.close = make(chan struct{})
	go c.readLoop()
	go c.writeLoop()
}

// SendData sends one streamed value to the client. It blocks while the send buffer is full, until
// ctx is done or the connection closes.
func (c *Connection) SendData(ctx context.Context, id string, payload interface{}) error {
	return c.sendPayload(ctx, id, MessageTypeData, payload)
}

// SendError tells the client that the stream with the given id failed.
func (c *Connection) SendError(ctx context.Context, id string, payload interface{}) error {
	return c.sendPayload(ctx, id, MessageTypeError, payload)
}

// SendComplete sends the "complete" message to the client. This should be done after a stream
// ends or is stopped.
func (c *Connection) SendComplete(ctx context.Context, id string) error {
	return c.sendMessage(ctx, &Message{
		Id:   id,
		Type: MessageTypeComplete,
	})
}

// Close closes the connection. This must not be called from handler functions.
func (c *Connection) Close() error {
	c.beginClosing()
	c.finishClosing()
	return nil
}

func (c *Connection) sendPayload(ctx context.Context, id string, t MessageType, payload interface{}) error {
	buf, err := jsoniter.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "unable to marshal %v payload", t)
	}
	return c.sendMessage(ctx, &Message{
		Id:      id,
		Type:    t,
		Payload: json.RawMessage(buf),
	})
}

func (c *Connection) sendMessage(ctx context.Context, msg *Message) error {
	data, err := jsoniter.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "error marshaling message")
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return errors.Wrap(err, "error preparing message")
	}
	select {
	case c.outgoing <- prepared:
	case <-ctx.Done():
		return ctx.Err()
	case <-c.close:
		return ErrConnectionClosed
	}
	return nil
}

func (c *Connection) readLoop() {
	defer close(c.readLoopDone)
	defer c.beginClosing()

	for {
		_, p, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				select {
				case <-c.close:
				default:
					c.Logger.Error(errors.Wrap(err, "websocket read error"))
				}
			}
			return
		}

		c.handleMessage(p)
	}
}

func (c *Connection) handleMessage(data []byte) {
	var msg Message
	if err := jsoniter.Unmarshal(data, &msg); err != nil {
		c.Logger.WithField("error", err.Error()).Info("malformed lexws message received")
		return
	}

	ctx := context.Background()

	switch msg.Type {
	case MessageTypeConnectionInit:
		if err := c.Handler.HandleInit(msg.Payload); err != nil {
			payload := struct {
				Message string `json:"message"`
			}{
				Message: err.Error(),
			}
			if err := c.sendPayload(ctx, msg.Id, MessageTypeConnectionError, payload); err != nil {
				c.Logger.Error(errors.Wrap(err, "unable to send lexws connection error"))
			}
			c.beginClosing()
			return
		}

		c.didInit = true
		if err := c.sendMessage(ctx, &Message{
			Id:   msg.Id,
			Type: MessageTypeConnectionAck,
		}); err != nil {
			c.Logger.Error(errors.Wrap(err, "unable to send lexws connection ack"))
			c.beginClosing()
		} else if err := c.sendMessage(ctx, &Message{
			Type: MessageTypeConnectionKeepAlive,
		}); err != nil {
			c.Logger.Error(errors.Wrap(err, "unable to send lexws initial keep-alive"))
			c.beginClosing()
		}
	case MessageTypeStart:
		if !c.didInit {
			return
		}

		var payload StartPayload
		if err := jsoniter.Unmarshal(msg.Payload, &payload); err != nil {
			c.Logger.WithField("error", err.Error()).Info("malformed lexws message received")
			return
		}
		c.Handler.HandleStart(msg.Id, payload.Source)
	case MessageTypeStop:
		if !c.didInit {
			return
		}

		c.Handler.HandleStop(msg.Id)
	case MessageTypeConnectionTerminate:
		c.beginClosing()
	default:
		c.Logger.Info("unknown lexws message type received")
	}
}

var keepAlivePreparedMessage *websocket.PreparedMessage

func init() {
	data, err := jsoniter.Marshal(&Message{
		Type: MessageTypeConnectionKeepAlive,
	})
	if err != nil {
		panic(errors.Wrap(err, "error marshaling message"))
	}
	prepared, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		panic(errors.Wrap(err, "error preparing message"))
	}
	keepAlivePreparedMessage = prepared
}

func (c *Connection) writeLoop() {
	defer c.finishClosing()
	defer close(c.writeLoopDone)

	defer c.conn.Close()

	keepAliveTicker := time.NewTicker(15 * time.Second)
	defer keepAliveTicker.Stop()

	for {
		var msg *websocket.PreparedMessage
		select {
		case outgoing := <-c.outgoing:
			msg = outgoing
		case <-keepAliveTicker.C:
			msg = keepAlivePreparedMessage
		case <-c.close:
			c.flush()
			return
		}

		c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

		if err := c.conn.WritePreparedMessage(msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway) && err != websocket.ErrCloseSent {
				c.Logger.Error(errors.Wrap(err, "websocket write error"))
			}
			return
		}
	}
}

// flush writes whatever is still buffered, e.g. the error after a rejected init.
func (c *Connection) flush() {
	for {
		select {
		case msg := <-c.outgoing:
			c.conn.SetWriteDeadline(time.Now().Add(time.Second))
			if err := c.conn.WritePreparedMessage(msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Connection) beginClosing() {
	c.beginClosingOnce.Do(func() {
		close(c.close)
	})
}

func (c *Connection) finishClosing() {
	<-c.readLoopDone
	<-c.writeLoopDone
	invokeHandler := false
	c.finishClosingOnce.Do(func() {
		invokeHandler = true
	})
	if invokeHandler {
		c.Handler.HandleClose()
	}
}
