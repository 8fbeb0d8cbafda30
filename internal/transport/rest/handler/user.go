package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"aiacademy/internal/model"
	"aiacademy/internal/service"
)

const (
	maxUploadSize  = 10 << 20
	imageFormField = "profileImage"
)

// ProfileManager stores and reads student profiles
type ProfileManager interface {
	Register(ctx context.Context, in *model.RegisterRequest) error
	Get(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, id string, in *model.UpdateProfileRequest) error
	UploadImage(ctx context.Context, id, filename string, r io.Reader) (string, error)
}

// ResultSubmitter records a finished assessment
type ResultSubmitter interface {
	Submit(ctx context.Context, userID string, in *model.SubmitTestRequest) (float64, error)
}

// DashboardReader builds the dashboard view of a user
type DashboardReader interface {
	Get(ctx context.Context, userID string) (*model.Dashboard, error)
}

// UserHandler handles profile, result and dashboard endpoints
type UserHandler struct {
	profiles   ProfileManager
	results    ResultSubmitter
	dashboards DashboardReader
}

// NewUserHandler creates a new user handler
func NewUserHandler(profiles ProfileManager, results ResultSubmitter, dashboards DashboardReader) *UserHandler {
	return &UserHandler{profiles: profiles, results: results, dashboards: dashboards}
}

// Register handles POST /register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, err)
		return
	}

	if err := h.profiles.Register(r.Context(), &req); err != nil {
		writeFail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeOK(w, "User registered successfully!")
}

// Get handles GET /api/user/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	writeJSON(w, http.StatusOK, model.UserResponse{Success: true, Data: user})
}

// Update handles POST /api/user/{id}/update
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, err)
		return
	}

	if err := h.profiles.Update(r.Context(), id, &req); err != nil {
		writeUserError(w, err)
		return
	}

	writeOK(w, "User data updated successfully.")
}

// UploadImage handles POST /api/user/{id}/upload_image
func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeFail(w, http.StatusBadRequest, "No file part")
		return
	}
	file, hdr, err := r.FormFile(imageFormField)
	if err != nil {
		// a part with an empty filename is parsed as a plain value
		if _, ok := r.MultipartForm.Value[imageFormField]; ok {
			writeFail(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeFail(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()
	if hdr.Filename == "" {
		writeFail(w, http.StatusBadRequest, "No selected file")
		return
	}

	url, err := h.profiles.UploadImage(r.Context(), id, hdr.Filename, file)
	if err != nil {
		writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ImageUploadResponse{Success: true, ImageURL: url})
}

// SubmitTest handles POST /api/user/{id}/submit_test
func (h *UserHandler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.SubmitTestRequest
	if err := decode(r, &req); err != nil {
		writeInvalid(w, err)
		return
	}

	if _, err := h.results.Submit(r.Context(), id, &req); err != nil {
		writeUserError(w, err)
		return
	}

	writeOK(w, "Test result saved.")
}

// Dashboard handles GET /api/user/{id}/dashboard
func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	d, err := h.dashboards.Get(r.Context(), id)
	if err != nil {
		writeUserError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.DashboardResponse{Success: true, Data: d})
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		writeFail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrUploadDisabled):
		writeFail(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeFail(w, http.StatusInternalServerError, err.Error())
	}
}
