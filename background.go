package main

import (
	"bytes"
	"log"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Zachkp/folio/live"
	"github.com/Zachkp/folio/particle"
)

const (
	maxSnapshotFrames = 600
	maxSnapshotSide   = 4096

	wsReadLimit   = 1 << 16
	wsPongWait    = 60 * time.Second
	wsPingPeriod  = 25 * time.Second
	wsWriteWait   = 10 * time.Second
	wsHelloWindow = 10 * time.Second
)

// backgroundSVG renders a still of the constellation for clients without
// websockets or JavaScript.
func (s *site) backgroundSVG(c *gin.Context) {
	w := queryFloat(c, "w", 1280, maxSnapshotSide)
	h := queryFloat(c, "h", 720, maxSnapshotSide)
	frames := int(queryFloat(c, "frames", 0, maxSnapshotFrames))
	cores, _ := strconv.Atoi(c.Query("cores"))

	var rng *rand.Rand
	if seed, err := strconv.ParseUint(c.Query("seed"), 10, 64); err == nil {
		rng = rand.New(rand.NewPCG(seed, seed))
	}

	field := particle.NewField(particle.Viewport{Width: w, Height: h}, cores, rng)
	particle.Advance(field, particle.Context{
		Pointer: particle.Pointer{X: w / 2, Y: h / 2},
		Now:     time.Now(),
	}, frames)

	var buf bytes.Buffer
	particle.WriteSVG(&buf, field, particle.NewRenderer(particle.ParseScheme(c.Query("theme")), rng), false)
	c.Header("Cache-Control", "public, max-age=300")
	c.Data(http.StatusOK, "image/svg+xml", buf.Bytes())
}

func queryFloat(c *gin.Context, key string, def, limit float64) float64 {
	v, err := strconv.ParseFloat(c.Query(key), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return def
	}
	return min(v, limit)
}

// wsConn adapts a websocket to live.Conn. Session.Run and the ping loop both
// write, so writes are serialised.
type wsConn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (w *wsConn) Send(b []byte) error {
	return w.write(websocket.TextMessage, b)
}

func (w *wsConn) write(kind int, b []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.ws.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.ws.WriteMessage(kind, b)
}

func (w *wsConn) Close() error {
	return w.ws.Close()
}

func (s *site) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			// For dev, allow all origins.
			if gin.Mode() == gin.DebugMode {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			return err == nil && u.Host == r.Host
		},
	}
}

// backgroundWS streams live frames. The first message must be a hello
// describing the viewport; after that the socket carries input events in
// and frames out until either side goes away.
func (s *site) backgroundWS(c *gin.Context) {
	ws, err := s.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	conn := &wsConn{ws: ws}

	ws.SetReadLimit(wsReadLimit)
	_ = ws.SetReadDeadline(time.Now().Add(wsHelloWindow))

	_, raw, err := ws.ReadMessage()
	if err != nil {
		log.Println("live: hello:", err)
		ws.Close()
		return
	}
	env, err := live.DecodeEnvelope(raw)
	if err != nil || env.T != live.MsgHello {
		log.Printf("live: expected hello, got %q (%v)", env.T, err)
		ws.Close()
		return
	}
	hello, err := live.DecodePayload[live.Hello](env)
	if err != nil {
		log.Println("live: hello payload:", err)
		ws.Close()
		return
	}

	session := live.NewSession(conn, hello)
	go session.Run()
	go pingLoop(conn, session.Done())

	_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.SetPongHandler(func(string) error {
		_ = ws.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	defer session.Stop()
	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Println("live: read:", err)
			}
			return
		}
		select {
		case session.Inbox <- msg:
		case <-session.Done():
			return
		}
	}
}

func pingLoop(conn *wsConn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.write(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
