// Package stream broadcasts generated telemetry rows to WebSocket
// subscribers, replaying the hourly dataset at an accelerated clock.
package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mushroom-demand-lab/internal/domain"
	"mushroom-demand-lab/internal/observability"
)

const (
	writeTimeout = 10 * time.Second

	// sendBuffer is the per-client frame queue. Clients that fall this
	// far behind are disconnected rather than blocking the broadcast.
	sendBuffer = 64
)

// Frame is the JSON message sent to subscribers for each telemetry row.
type Frame struct {
	Datetime                   string  `json:"datetime"`
	RegionID                   string  `json:"region_id"`
	MandiPricePerKg            float64 `json:"mandi_price_per_kg"`
	POSTransactionsLastHour    int     `json:"pos_transactions_last_hour"`
	VehicleDelayMinutes        int     `json:"vehicle_delay_minutes"`
	WeatherNowTemp             float64 `json:"weather_now_temp"`
	WeatherNowHumidity         float64 `json:"weather_now_humidity"`
	LogisticsDisruptionFlag    bool    `json:"logistics_disruption_flag"`
	IntradayBaselinePred       float64 `json:"intraday_baseline_pred"`
	IntradayActualSalesPartial int     `json:"intraday_actual_sales_partial"`
	IntradayEvent              string  `json:"intraday_event"`
}

// frameFromRow converts a telemetry row to its wire form.
func frameFromRow(row *domain.TelemetryRow) Frame {
	return Frame{
		Datetime:                   row.Timestamp.Format("2006-01-02 15:04:05"),
		RegionID:                   row.RegionID,
		MandiPricePerKg:            row.MandiPricePerKg,
		POSTransactionsLastHour:    row.POSTransactionsLastHour,
		VehicleDelayMinutes:        row.VehicleDelayMinutes,
		WeatherNowTemp:             row.WeatherNowTempC,
		WeatherNowHumidity:         row.WeatherNowHumidity,
		LogisticsDisruptionFlag:    row.LogisticsDisruptionFlag,
		IntradayBaselinePred:       row.IntradayBaselinePred,
		IntradayActualSalesPartial: row.IntradayActualSalesPartial,
		IntradayEvent:              string(row.Event),
	}
}

// Hub manages WebSocket subscribers and fans frames out to them.
type Hub struct {
	upgrader websocket.Upgrader
	metrics  *observability.Metrics

	mu      sync.RWMutex
	clients map[string]chan []byte
}

// NewHub creates a Hub. Metrics may be nil.
func NewHub(metrics *observability.Metrics) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The feed is a lab tool; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		metrics: metrics,
		clients: make(map[string]chan []byte),
	}
}

// ServeHTTP upgrades the request and streams frames until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return
	}

	id := uuid.NewString()
	send := make(chan []byte, sendBuffer)

	h.mu.Lock()
	h.clients[id] = send
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.StreamSubscribers.Inc()
	}

	defer func() {
		h.remove(id)
		conn.Close()
	}()

	// Drain incoming frames so close messages are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.remove(id)
				return
			}
		}
	}()

	for msg := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcast sends one telemetry row to every subscriber. Slow subscribers
// are dropped.
func (h *Hub) Broadcast(row *domain.TelemetryRow) {
	msg, err := json.Marshal(frameFromRow(row))
	if err != nil {
		return
	}

	h.mu.RLock()
	var slow []string
	for id, send := range h.clients {
		select {
		case send <- msg:
			if h.metrics != nil {
				h.metrics.TelemetryFramesSent.Inc()
			}
		default:
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		h.remove(id)
		if h.metrics != nil {
			h.metrics.StreamClientsDropped.Inc()
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all subscribers.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, send := range h.clients {
		close(send)
		delete(h.clients, id)
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[id]; ok {
		close(send)
		delete(h.clients, id)
		if h.metrics != nil {
			h.metrics.StreamSubscribers.Dec()
		}
	}
}

// Replay broadcasts rows in order at the given interval until the context
// is cancelled or the rows run out.
func Replay(ctx context.Context, hub *Hub, rows []*domain.TelemetryRow, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, row := range rows {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			hub.Broadcast(row)
		}
	}
	return nil
}
