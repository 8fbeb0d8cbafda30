package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	"aiacademy/internal/transport/rest/handler"
	"aiacademy/internal/transport/rest/middleware"
	"aiacademy/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	Auth        handler.Authenticator
	Tokens      middleware.TokenValidator
	Profiles    handler.ProfileManager
	Results     handler.ResultSubmitter
	Dashboards  handler.DashboardReader
	Leaderboard handler.LeaderboardReader
	Chatbot     handler.ChatResponder
	Quiz        handler.QuizHost
	WSHandler   *ws.Handler
	CORSOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	authHandler := handler.NewAuthHandler(c.Auth)
	userHandler := handler.NewUserHandler(c.Profiles, c.Results, c.Dashboards)
	portalHandler := handler.NewPortalHandler(c.Leaderboard, c.Chatbot)
	quizHandler := handler.NewQuizHandler(c.Quiz)

	authMW := middleware.NewAuthMiddleware(c.Tokens)

	r.Use(corsMiddleware(c.CORSOrigins))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusFound)
	}).Methods("GET")

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Portal routes
	r.HandleFunc("/register", userHandler.Register).Methods("POST", "OPTIONS")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")

	api.HandleFunc("/user/{id}", userHandler.Get).Methods("GET", "OPTIONS")
	api.HandleFunc("/user/{id}/update", userHandler.Update).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/{id}/upload_image", userHandler.UploadImage).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/{id}/submit_test", userHandler.SubmitTest).Methods("POST", "OPTIONS")
	api.HandleFunc("/user/{id}/dashboard", userHandler.Dashboard).Methods("GET", "OPTIONS")

	api.HandleFunc("/leaderboard", portalHandler.Leaderboard).Methods("GET", "OPTIONS")
	api.HandleFunc("/chatbot", portalHandler.Chatbot).Methods("POST", "OPTIONS")
	api.HandleFunc("/topics", quizHandler.Topics).Methods("GET", "OPTIONS")

	// WebSocket route (token in query param)
	if c.WSHandler != nil {
		api.HandleFunc("/ws/quiz/{id}", c.WSHandler.QuizWS).Methods("GET")
	}

	// Quiz routes (require user auth)
	quizRoutes := api.PathPrefix("/quiz").Subrouter()
	quizRoutes.Use(authMW.RequireUser)

	quizRoutes.HandleFunc("/sessions", quizHandler.Start).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}", quizHandler.Get).Methods("GET", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/selection", quizHandler.Select).Methods("PUT", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/goto/{index:[0-9]+}", quizHandler.GoTo).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/save-next", quizHandler.SaveAndNext).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/mark-review", quizHandler.MarkForReview).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/clear", quizHandler.Clear).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/sessions/{id}/submit", quizHandler.Submit).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(origins string) mux.MiddlewareFunc {
	if origins == "" {
		origins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
