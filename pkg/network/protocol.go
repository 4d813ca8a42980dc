// Package network is the gob protocol between the API gateway and the
// recommendation nodes. One request and one response per connection.
package network

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net"
	"time"
)

// -------------------- Tipos de Mensaje --------------------

type RecommendRequest struct {
	RequestID string
	Title     string // etiqueta exacta del título
	N         int    // <= 0: el nodo usa su TopN
	Explain   bool
}

type RecommendResponse struct {
	RequestID    string
	Resolved     bool // false: el título no existe en el grafo del nodo
	Items        []Item
	Explanations []ExplainItem
	Node         string
	Error        string // fallo remoto; vacío si todo fue bien
}

type Item struct {
	Label string
	Score float64
}

type ExplainItem struct {
	Label       string
	Score       float64
	Adamic      float64
	Jaccard     float64
	Text        float64
	TextApplied float64
	Gated       bool
	Boosted     bool
	Shared      []string
}

// ErrRemote wraps a failure reported by the node in RecommendResponse.Error.
var ErrRemote = errors.New("node reported an error")

// -------------------- Utilidades --------------------

// Send encodes one message.
func Send(conn net.Conn, v any) error {
	enc := gob.NewEncoder(conn)
	return enc.Encode(v)
}

// Receive decodes one message.
func Receive(conn net.Conn, v any) error {
	dec := gob.NewDecoder(conn)
	return dec.Decode(v)
}

// Call dials addr, sends req and waits for the answer. The ctx deadline, if
// any, bounds the whole exchange.
func Call(ctx context.Context, addr string, req RecommendRequest) (*RecommendResponse, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, err
		}
	}

	if err := Send(conn, req); err != nil {
		return nil, fmt.Errorf("send to %s: %w", addr, err)
	}

	var resp RecommendResponse
	if err := Receive(conn, &resp); err != nil {
		return nil, fmt.Errorf("receive from %s: %w", addr, err)
	}
	if resp.Error != "" {
		return &resp, fmt.Errorf("%w: %s: %s", ErrRemote, addr, resp.Error)
	}
	return &resp, nil
}

// -------------------- Servidor --------------------

// Handler answers one decoded request.
type Handler func(ctx context.Context, req RecommendRequest) RecommendResponse

// HandleConn serves exactly one request on conn and closes it.
func HandleConn(ctx context.Context, conn net.Conn, h Handler, timeout time.Duration) error {
	defer conn.Close()
	if timeout > 0 {
		_ = conn.SetDeadline(time.Now().Add(timeout))
	}

	var req RecommendRequest
	if err := Receive(conn, &req); err != nil {
		return fmt.Errorf("receive request: %w", err)
	}

	resp := h(ctx, req)
	resp.RequestID = req.RequestID

	if err := Send(conn, resp); err != nil {
		return fmt.Errorf("send response: %w", err)
	}
	return nil
}

// Serve accepts connections until ctx is done, one goroutine each. Errors
// from single connections go to onErr and never stop the loop.
func Serve(ctx context.Context, ln net.Listener, h Handler, timeout time.Duration, onErr func(error)) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}
			if onErr != nil {
				onErr(err)
			}
			continue
		}
		go func() {
			if err := HandleConn(ctx, conn, h, timeout); err != nil && onErr != nil {
				onErr(err)
			}
		}()
	}
}

func init() {
	// Registrar tipos para que gob pueda codificarlos
	gob.Register(RecommendRequest{})
	gob.Register(RecommendResponse{})
	gob.Register(Item{})
	gob.Register(ExplainItem{})
}
