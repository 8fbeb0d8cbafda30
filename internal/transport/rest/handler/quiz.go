package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"aiacademy/internal/model"
	"aiacademy/internal/quiz"
	"aiacademy/internal/service"
	"aiacademy/internal/transport/rest/middleware"
)

// QuizHost runs quiz attempts on behalf of signed-in users
type QuizHost interface {
	Topics(ctx context.Context) ([]model.Topic, error)
	Start(ctx context.Context, userID, topic string) (*model.QuizSessionView, error)
	Get(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error)
	Select(ctx context.Context, userID, sessionID string, option int) (*model.QuizSessionView, error)
	GoTo(ctx context.Context, userID, sessionID string, index int) (*model.QuizSessionView, error)
	Clear(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error)
	SaveAndNext(ctx context.Context, userID, sessionID string) (*model.MoveResponse, error)
	MarkForReview(ctx context.Context, userID, sessionID string) (*model.MoveResponse, error)
	Submit(ctx context.Context, userID, sessionID string) (*model.QuizSessionView, error)
}

// QuizHandler handles quiz session endpoints
type QuizHandler struct {
	quizSvc QuizHost
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc QuizHost) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Topics handles GET /api/topics
func (h *QuizHandler) Topics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.quizSvc.Topics(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// Start handles POST /api/quiz/sessions
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.StartQuizRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, invalidMessage(err))
		return
	}

	view, err := h.quizSvc.Start(r.Context(), userID, req.Topic)
	if err != nil {
		writeQuizError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /api/quiz/sessions/{id}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := middleware.GetUserID(r.Context()), mux.Vars(r)["id"]

	view, err := h.quizSvc.Get(r.Context(), userID, sessionID)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Select handles PUT /api/quiz/sessions/{id}/selection
func (h *QuizHandler) Select(w http.ResponseWriter, r *http.Request) {
	userID, sessionID := middleware.GetUserID(r.Context()), mux.Vars(r)["id"]

	var req model.SelectRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, invalidMessage(err))
		return
	}

	view, err := h.quizSvc.Select(r.Context(), userID, sessionID, *req.Option)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GoTo handles POST /api/quiz/sessions/{id}/goto/{index}
func (h *QuizHandler) GoTo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question index")
		return
	}

	view, err := h.quizSvc.GoTo(r.Context(), middleware.GetUserID(r.Context()), vars["id"], index)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Clear handles POST /api/quiz/sessions/{id}/clear
func (h *QuizHandler) Clear(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Clear(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SaveAndNext handles POST /api/quiz/sessions/{id}/save-next
func (h *QuizHandler) SaveAndNext(w http.ResponseWriter, r *http.Request) {
	resp, err := h.quizSvc.SaveAndNext(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// MarkForReview handles POST /api/quiz/sessions/{id}/mark-review
func (h *QuizHandler) MarkForReview(w http.ResponseWriter, r *http.Request) {
	resp, err := h.quizSvc.MarkForReview(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Submit handles POST /api/quiz/sessions/{id}/submit
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Submit(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quiz.ErrSubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrTopicNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, quiz.ErrOptionOutOfRange), errors.Is(err, quiz.ErrQuestionOutOfRange):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
