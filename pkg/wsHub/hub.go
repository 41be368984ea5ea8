package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub stores and manages all active websocket connections.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// Add registers a new connection.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[newConn.id]; ok {
		return nil
	}

	h.clients[newConn.id] = newConn
	h.wg.Add(1)

	return nil
}

// Delete removes and closes the connection with the given id.
func (h *ConnectionHub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.delete(wrap.WithAction(context.Background(), "ws_connection_delete"), id)
}

func (h *ConnectionHub) delete(ctx context.Context, id uuid.UUID) error {
	conn, ok := h.clients[id]
	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx,
			"failed to close conn",
			"conn_id", conn.id,
			"err", err.Error(),
		)
	}

	delete(h.clients, id)
	h.wg.Done()

	return nil
}

// CloseGroup closes every connection of the group and returns how many were closed.
func (h *ConnectionHub) CloseGroup(group string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_group_close")

	var closed int
	for id, conn := range h.clients {
		if conn.group != group {
			continue
		}
		if err := h.delete(ctx, id); err == nil {
			closed++
		}
	}
	return closed
}

// Close closes every websocket connection.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	h.mu.Lock()
	ids := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		_ = h.Delete(id)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

// Len returns the number of active connections.
func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}
