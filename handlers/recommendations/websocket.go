package recommendations

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"uplift/backend/handlers/auth"
	"uplift/backend/services/recommend"
	"uplift/backend/services/scholarship"
)

// QueryMessage is sent by the client. ID is echoed back so answers can be
// matched to questions.
type QueryMessage struct {
	ID    string            `json:"id"`
	Query scholarship.Query `json:"query"`
}

// ServerMessage is sent by the server. Type is "connected", "recommendation"
// or "error".
type ServerMessage struct {
	Type           string                    `json:"type"`
	ID             string                    `json:"id,omitempty"`
	Recommendation *recommend.Recommendation `json:"recommendation,omitempty"`
	Error          string                    `json:"error,omitempty"`
}

const (
	// maxMessageSize bounds one client frame.
	maxMessageSize = 8 << 10
	// writeWait bounds one write to the peer.
	writeWait = 10 * time.Second
	// maxInFlight is how many queries one socket may have waiting on the
	// classifier. Further reads wait for a slot.
	maxInFlight = 8
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type socket struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *socket) send(msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// HandleRecommendationWebSocket answers scholarship queries off the request
// goroutine. Each query gets exactly one reply, in completion order. At most
// maxInFlight queries per socket wait on the classifier at once.
// Used by: /ws/recommendations?token=
func HandleRecommendationWebSocket(svc *recommend.Service, tokens *auth.Tokens, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "No token provided", http.StatusUnauthorized)
			return
		}
		deviceID, err := tokens.ParseToken(token)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", zap.Error(err))
			return
		}
		conn.SetReadLimit(maxMessageSize)
		log := logger.With(zap.String("device_id", deviceID))
		s := &socket{conn: conn}
		slots := make(chan struct{}, maxInFlight)

		var pending sync.WaitGroup
		defer func() {
			pending.Wait()
			conn.Close()
		}()

		if err := s.send(ServerMessage{Type: "connected"}); err != nil {
			return
		}

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn("WebSocket closed unexpectedly", zap.Error(err))
				}
				return
			}

			var msg QueryMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				if err := s.send(ServerMessage{Type: "error", Error: "Invalid message"}); err != nil {
					return
				}
				continue
			}

			slots <- struct{}{}
			result := svc.Dispatch(r.Context(), msg.Query)
			pending.Add(1)
			go func(id string) {
				defer pending.Done()
				rec := <-result
				<-slots
				if err := s.send(ServerMessage{Type: "recommendation", ID: id, Recommendation: &rec}); err != nil {
					log.Debug("Dropped recommendation for closed socket", zap.String("id", id), zap.Error(err))
				}
			}(msg.ID)
		}
	}
}
