package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Temutjin2k/ride-analytics/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
	"github.com/Temutjin2k/ride-analytics/pkg/validator"
	ws "github.com/Temutjin2k/ride-analytics/pkg/wsHub"
)

const maxFilterMessage = 64 << 10

// Live recomputes the dashboard for every filter message received over a websocket.
type Live struct {
	service     DashboardService
	connections *ws.ConnectionHub
	upgrader    websocket.Upgrader
	serviceName string
	l           logger.Logger
}

func NewLive(service DashboardService, connections *ws.ConnectionHub, serviceName string, l logger.Logger) *Live {
	return &Live{
		service:     service,
		connections: connections,
		upgrader: websocket.Upgrader{
			ReadBufferSize:   4096,
			WriteBufferSize:  4096,
			HandshakeTimeout: 10 * time.Second,
		},
		serviceName: serviceName,
		l:           l,
	}
}

// HandleWS godoc
// @Summary      Live filtering
// @Description  Websocket. Every JSON filter message {status, vehicle, payment, from, to} is answered with the full dashboard
// @Tags         datasets
// @Param        dataset_id path string true "Dataset ID"
// @Param        token query string false "Session token when no header or cookie can be sent"
// @Success      101
// @Failure      401 {object} map[string]any "Unauthorized"
// @Router       /ws/datasets/{dataset_id} [get]
func (h *Live) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), types.ActionLiveFilter)
	id := datasetID(r)

	if _, err := h.service.Info(ctx, id); err != nil {
		serviceErrorResponse(w, r, err)
		return
	}

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the error response
		h.l.Warn(ctx, "websocket upgrade failed", "error", err.Error())
		return
	}
	raw.SetReadLimit(maxFilterMessage)

	conn := ws.NewConn(ctx, id.String(), raw)
	if err := h.connections.Add(conn); err != nil {
		h.l.Error(ctx, "failed to register websocket connection", err)
		raw.Close()
		return
	}
	defer h.connections.Delete(conn.ID())

	metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Inc()
	defer metrics.WebSocketConnectionsGauge.WithLabelValues(h.serviceName).Dec()

	h.l.Info(ctx, "live filtering started", "conn_id", conn.ID())

	if err := h.push(ctx, conn, id, models.FilterQuery{}); err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "initial dashboard not sent", "error", err.Error())
		return
	}

	err = conn.Listen(func(msg json.RawMessage) error {
		var req dto.FilterRequest
		if err := decodeJSON(msg, &req); err != nil {
			return conn.Send(envelope{"error": err.Error()})
		}

		v := validator.New()
		req.Validate(v)
		if !v.Valid() {
			return conn.Send(envelope{"error": v.Errors})
		}

		return h.push(ctx, conn, id, req.ToModel())
	})

	h.l.Info(ctx, "live filtering stopped", "conn_id", conn.ID(), "reason", err.Error())
}

// push sends the dashboard for q. A dataset that is gone ends the connection.
func (h *Live) push(ctx context.Context, conn *ws.Conn, id uuid.UUID, q models.FilterQuery) error {
	dash, err := h.service.Compute(ctx, id, q)
	if err != nil {
		if sendErr := conn.Send(envelope{"error": clientMessage(err)}); sendErr != nil {
			return sendErr
		}
		if errors.Is(err, types.ErrDatasetNotFound) {
			return fmt.Errorf("dataset gone: %w", err)
		}
		return nil
	}

	return conn.Send(envelope{"dashboard": dash})
}
