package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jamesatitpong11/labflowadmin/internal/auth"
	"github.com/jamesatitpong11/labflowadmin/internal/config"
	"github.com/jamesatitpong11/labflowadmin/internal/http/handlers"
	"github.com/jamesatitpong11/labflowadmin/internal/queue"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	DB      *pgxpool.Pool
	Logger  *zap.Logger
	Config  config.Config
	handler *handlers.Handler
}

func New(db *pgxpool.Pool, logger *zap.Logger, cfg config.Config, queueClient *queue.Client) *Server {
	return &Server{
		DB:      db,
		Logger:  logger,
		Config:  cfg,
		handler: &handlers.Handler{DB: db, Logger: logger, Config: cfg, Queue: queueClient},
	}
}

// DashboardActivityWS streams the recent-activity feed. The client passes its
// access token as a query parameter since browsers cannot attach headers to a
// websocket handshake. Snapshots are polled from the store and pushed only
// when the feed actually changed.
func (s *Server) DashboardActivityWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	token := r.URL.Query().Get("token")
	if parsed := auth.ParseBearerToken(token); parsed != "" {
		token = parsed
	}
	if _, err := auth.VerifyAccessToken(token, s.Config.JWTSecret); err != nil {
		_ = conn.WriteJSON(map[string]any{"type": "error", "message": "unauthorized"})
		return
	}

	ctx := r.Context()

	var lastSent []handlers.ActivityItem
	send := func() bool {
		items, err := s.handler.RecentActivity(ctx, time.Now(), 4)
		if err != nil {
			s.Logger.Warn("activity stream fetch failed", zap.Error(err))
			return true
		}
		if activityEqual(items, lastSent) {
			return true
		}
		lastSent = items
		return conn.WriteJSON(map[string]any{"type": "activity.state", "data": items}) == nil
	}

	if !send() {
		return
	}

	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	poll := time.NewTicker(s.Config.WSActivityPollInterval)
	defer poll.Stop()
	heartbeat := time.NewTicker(s.Config.WSHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-poll.C:
			if !send() {
				return
			}
		case <-heartbeat.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		case <-clientClosed:
			return
		case <-ctx.Done():
			return
		}
	}
}

func activityEqual(a, b []handlers.ActivityItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
