package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// handleChatWS answers each inbound {message, name} frame with the same
// {reply, kind} document as POST /chat, or {error} when the turn fails.
// Frames are handled one at a time per connection.
func (s *Server) handleChatWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req chatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed: %v", err)
			}
			return
		}

		resp, status := s.interpret(c.Request.Context(), req)
		var payload any = resp
		if status != http.StatusOK {
			payload = errorResponse{Error: resp.Reply}
		}
		if err := conn.WriteJSON(payload); err != nil {
			s.logger.Warn("websocket write failed: %v", err)
			return
		}
	}
}
