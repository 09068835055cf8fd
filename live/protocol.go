// Package live streams the constellation background to a browser canvas.
package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Zachkp/folio/particle"
)

const (
	MsgHello      = "hello"
	MsgPointer    = "pointer"
	MsgClick      = "click"
	MsgResize     = "resize"
	MsgHover      = "hover"
	MsgVisibility = "visibility"
	MsgTheme      = "theme"

	MsgWelcome = "welcome"
	MsgFrame   = "frame"
)

const FrameHz = 60

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrEmptyType    = errors.New("envelope without type")
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Hello opens a session; Resize carries the same fields.
type Hello struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Cores  int     `json:"cores"`
	Dark   bool    `json:"dark"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Toggle struct {
	On bool `json:"on"`
}

type Visibility struct {
	Hidden bool `json:"hidden"`
}

type Theme struct {
	Dark bool `json:"dark"`
}

type Welcome struct {
	Particles int `json:"particles"`
	FrameHz   int `json:"frameHz"`
}

type Frame struct {
	Seq int           `json:"seq"`
	Ops []particle.Op `json:"ops"`
}

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, ErrEmptyType
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, ErrEmptyMessage
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, err
	}
	if e.T == "" {
		return Envelope{}, ErrEmptyType
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}
