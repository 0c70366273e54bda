package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/billyziiii/docker-fullstack/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LiveFeedHandler streams settled wager outcomes to connected clients.
type LiveFeedHandler struct {
	broadcaster *services.Broadcaster
	log         *logrus.Entry
}

func NewLiveFeedHandler(broadcaster *services.Broadcaster) *LiveFeedHandler {
	return &LiveFeedHandler{
		broadcaster: broadcaster,
		log:         logrus.WithField("component", "live_feed"),
	}
}

func (h *LiveFeedHandler) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	events, cancel := h.broadcaster.Subscribe()
	defer cancel()

	// Drain client reads so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for event := range events {
		if err := conn.WriteJSON(event); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("websocket write failed")
			}
			return
		}
	}
}
