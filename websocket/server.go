package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	params "github.com/esimov/ascii-particles/http"
	particle "github.com/esimov/ascii-particles/particle-system"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = time.Second
	sendBuffer = 4
)

// FrameMessage is the JSON document sent to clients for every frame.
type FrameMessage struct {
	Frame     uint64            `json:"frame"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Size      float64           `json:"size"`
	Particles []ParticleMessage `json:"particles"`
}

// ParticleMessage is one particle of a frame, in world coordinates.
type ParticleMessage struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// NewFrameMessage converts a rendered frame into its wire form.
func NewFrameMessage(f particle.Frame) FrameMessage {
	msg := FrameMessage{
		Frame:     f.Number,
		Width:     f.Viewport.Width(),
		Height:    f.Viewport.Height(),
		Size:      f.Size,
		Particles: make([]ParticleMessage, len(f.Sprites)),
	}
	for i, s := range f.Sprites {
		msg.Particles[i] = ParticleMessage{X: s.Pos.X, Y: s.Pos.Y, Color: s.Color.Hex()}
	}
	return msg
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub fans rendered frames out to every connected websocket client.
// Clients that fall behind lose frames; the frame loop never waits on them.
type Hub struct {
	world particle.Rect
	log   *zap.SugaredLogger

	mu      sync.Mutex
	clients map[uuid.UUID]*client
}

// NewHub returns a hub streaming a fixed world rectangle.
func NewHub(world particle.Rect, log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		world:   world,
		log:     log,
		clients: make(map[uuid.UUID]*client),
	}
}

// Bounds returns the streamed world rectangle. Remote clients scale it to
// their canvas, so it is always available.
func (h *Hub) Bounds() particle.Bounds {
	return h.world
}

// Render encodes f once and queues it on every client.
func (h *Hub) Render(f particle.Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return nil
	}

	msg, err := json.Marshal(NewFrameMessage(f))
	if err != nil {
		return err
	}
	for _, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Debugw("client lagging, frame dropped", "client", c.id, "frame", f.Number)
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			h.log.Warnw("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		}
		return
	}

	c := &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Infow("client connected", "client", c.id, "remote", r.RemoteAddr)

	go h.writeSocket(c)
	go h.readSocket(c)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.log.Infow("client disconnected", "client", c.id)
}

// readSocket discards client messages and notices when the peer goes away.
func (h *Hub) readSocket(c *client) {
	defer h.unregister(c)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warnw("websocket read failed", "client", c.id, "err", err)
			}
			return
		}
	}
}

func (h *Hub) writeSocket(c *client) {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debugw("websocket write failed", "client", c.id, "err", err)
			h.unregister(c)
			// drain until unregister closes the channel
			for range c.send {
			}
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// NewServer returns an HTTP server serving p.Root under p.Prefix and the
// hub on the websocket endpoint.
func NewServer(p params.Params, h *Hub, log *zap.SugaredLogger) (*http.Server, error) {
	root, err := filepath.Abs(p.Root)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	mux := http.NewServeMux()
	mux.Handle(p.Prefix, http.StripPrefix(p.Prefix, http.FileServer(http.Dir(root))))
	mux.Handle(params.SocketPath, h)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugw("request", "remote", r.RemoteAddr, "method", r.Method, "url", r.URL.String())
		mux.ServeHTTP(w, r)
	})
	log.Infow("serving", "root", root, "prefix", p.Prefix, "address", p.Address)
	return &http.Server{Addr: p.Address, Handler: handler}, nil
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func Serve(ctx context.Context, srv *http.Server) error {
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			return err
		}
		if err := <-errc; err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
