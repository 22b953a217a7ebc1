package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/altproje-dev/altproje/internal/submissions"
	"github.com/altproje-dev/altproje/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

type wordCountRequest struct {
	Field          string `json:"field"`
	Text           string `json:"text"`
	ProjectSubType string `json:"projectSubType"`
}

type wordCountResponse struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Count int    `json:"count"`
	Min   int    `json:"min,omitempty"`
	Max   int    `json:"max,omitempty"`
	Valid bool   `json:"valid"`
}

// WordCountFeed gives the entry form live word-count feedback over a
// websocket, using the same CountWords the validator runs on submit, so the
// client never sees a count the server would disagree with.
func WordCountFeed(c *gin.Context) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			for _, allowed := range types.AllowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set initial read deadline: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline in pong handler: %v", err)
		}
		return nil
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	go func() {
		for range ticker.C {
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			log.Printf("Failed to set read deadline: %v", err)
			break
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var req wordCountRequest

		if err := json.Unmarshal(message, &req); err != nil {
			continue
		}

		resp := WordCountFor(req)

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			break
		}
		if err := conn.WriteJSON(resp); err != nil {
			break
		}
	}
}

func WordCountFor(req wordCountRequest) wordCountResponse {
	count := submissions.CountWords(req.Text)

	resp := wordCountResponse{
		Type:  "wordCount",
		Field: req.Field,
		Count: count,
	}

	if min, max, ok := submissions.WordBounds(req.Field, req.ProjectSubType); ok {
		resp.Min = min
		resp.Max = max
		resp.Valid = count >= min && count <= max
	}

	return resp
}
