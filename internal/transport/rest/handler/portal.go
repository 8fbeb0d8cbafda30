package handler

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"aiacademy/internal/model"
)

// LeaderboardReader ranks students by overall score
type LeaderboardReader interface {
	Top(ctx context.Context) ([]model.LeaderboardEntry, error)
}

// ChatResponder answers portal questions
type ChatResponder interface {
	Reply(message string) string
}

// PortalHandler serves the leaderboard and the help chatbot
type PortalHandler struct {
	leaderboard LeaderboardReader
	chatbot     ChatResponder
}

func NewPortalHandler(leaderboard LeaderboardReader, chatbot ChatResponder) *PortalHandler {
	return &PortalHandler{leaderboard: leaderboard, chatbot: chatbot}
}

// Leaderboard handles GET /api/leaderboard
func (h *PortalHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Top(r.Context())
	if err != nil {
		writeFail(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, model.LeaderboardResponse{Success: true, Leaderboard: entries})
}

// Chatbot handles POST /api/chatbot
func (h *PortalHandler) Chatbot(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, errBadBody.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.ChatResponse{Reply: h.chatbot.Reply(req.Message)})
}
