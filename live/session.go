package live

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Zachkp/folio/particle"
)

const maxDimension = 8192

type Conn interface {
	Send([]byte) error
	Close() error
}

// Session owns one visitor's particle loop. All loop access happens on the
// Run goroutine; the reader side only pushes raw messages into Inbox.
type Session struct {
	Inbox chan []byte

	conn   Conn
	loop   *particle.Loop
	rec    *particle.Recorder
	ticker *time.Ticker
	now    func() time.Time
	seq    int

	quit chan struct{}
	once sync.Once
}

// NewSession mounts a loop sized from hello. A zero or negative viewport
// means there is nothing to draw on, and the session stays silent.
func NewSession(conn Conn, hello Hello) *Session {
	rec := &particle.Recorder{}
	var surface particle.Surface = rec
	if hello.Width <= 0 || hello.Height <= 0 {
		surface = nil
	}
	scheme := particle.Light
	if hello.Dark {
		scheme = particle.Dark
	}
	return &Session{
		Inbox: make(chan []byte, 64),
		conn:  conn,
		loop:  particle.Mount(surface, viewport(hello), hello.Cores, scheme, nil),
		rec:   rec,
		now:   time.Now,
		quit:  make(chan struct{}),
	}
}

func viewport(h Hello) particle.Viewport {
	return particle.Viewport{
		Width:  math.Min(h.Width, maxDimension),
		Height: math.Min(h.Height, maxDimension),
	}
}

func (s *Session) Loop() *particle.Loop { return s.loop }

func (s *Session) Stop() {
	s.once.Do(func() { close(s.quit) })
}

func (s *Session) Done() <-chan struct{} { return s.quit }

func (s *Session) Run() {
	defer s.conn.Close()
	s.ticker = time.NewTicker(particle.FrameInterval)
	defer s.ticker.Stop()

	if err := s.welcome(); err != nil {
		log.Printf("live: welcome: %v", err)
		return
	}
	for {
		select {
		case <-s.quit:
			return
		case raw := <-s.Inbox:
			if err := s.Handle(raw); err != nil {
				log.Printf("live: dropping message: %v", err)
			}
		case now := <-s.ticker.C:
			if err := s.Tick(now); err != nil {
				log.Printf("live: send frame: %v", err)
				s.Stop()
			}
		}
	}
}

func (s *Session) welcome() error {
	n := 0
	if f := s.loop.Field(); f != nil {
		n = f.Len()
	}
	b, err := Encode(MsgWelcome, Welcome{Particles: n, FrameHz: FrameHz})
	if err != nil {
		return err
	}
	return s.conn.Send(b)
}

// Tick renders a frame if the loop accepts one at now and sends it.
func (s *Session) Tick(now time.Time) error {
	if !s.loop.Frame(now) {
		return nil
	}
	s.seq++
	b, err := Encode(MsgFrame, Frame{Seq: s.seq, Ops: s.rec.Ops})
	if err != nil {
		return err
	}
	return s.conn.Send(b)
}

// Handle applies one client message to the loop.
func (s *Session) Handle(raw []byte) error {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return err
	}

	switch env.T {
	case MsgPointer:
		p, err := DecodePayload[Point](env)
		if err != nil {
			return err
		}
		s.loop.PointerMoved(p.X, p.Y)
	case MsgClick:
		p, err := DecodePayload[Point](env)
		if err != nil {
			return err
		}
		s.loop.Clicked(p.X, p.Y, s.now())
	case MsgResize:
		h, err := DecodePayload[Hello](env)
		if err != nil {
			return err
		}
		s.loop.Resized(viewport(h), h.Cores)
	case MsgHover:
		t, err := DecodePayload[Toggle](env)
		if err != nil {
			return err
		}
		s.loop.SetHovered(t.On)
	case MsgVisibility:
		v, err := DecodePayload[Visibility](env)
		if err != nil {
			return err
		}
		s.loop.SetHidden(v.Hidden)
		s.pace()
	case MsgTheme:
		th, err := DecodePayload[Theme](env)
		if err != nil {
			return err
		}
		if th.Dark {
			s.loop.SetScheme(particle.Dark)
		} else {
			s.loop.SetScheme(particle.Light)
		}
	default:
		return fmt.Errorf("unknown message type %q", env.T)
	}
	return nil
}

// pace stops the frame ticker while the page is hidden.
func (s *Session) pace() {
	if s.ticker == nil {
		return
	}
	if s.loop.Running() {
		s.ticker.Reset(particle.FrameInterval)
	} else {
		s.ticker.Stop()
	}
}
