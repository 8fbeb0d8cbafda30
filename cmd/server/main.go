package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "aiacademy/docs"
	"aiacademy/internal/app"
	"aiacademy/internal/config"
	"aiacademy/internal/logger"
)

// @title AI Academy API
// @version 1.0
// @description Student portal with profiles, a leaderboard and timed assessments
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	std := log.New(os.Stdout, "", log.LstdFlags)

	conf, err := config.Load()
	if err != nil {
		std.Fatal("Failed to load config: ", err)
	}

	lgr := logger.NewRollbarLogger(std, conf)
	defer lgr.Close()
	lgr.Info("started", map[string]interface{}{"env": conf.Env, "build": conf.Build})

	ctx := context.Background()
	a, err := app.New(ctx, conf, lgr)
	if err != nil {
		lgr.Fatal("Failed to start", err)
	}

	srv := &http.Server{
		Addr:    ":" + conf.HTTPPort,
		Handler: a.Router(),
	}

	go func() {
		std.Printf("Server starting on :%s", conf.HTTPPort)
		std.Println("Endpoints:")
		std.Println("  POST /register, /api/auth/login, /api/auth/register")
		std.Println("  GET  /api/user/{id}, /api/user/{id}/dashboard, /api/leaderboard, /api/topics")
		std.Println("  POST /api/user/{id}/update, /upload_image, /submit_test, /api/chatbot")
		std.Println("  *    /api/quiz/sessions...")
		std.Println("  WS   /api/ws/quiz/{id}")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lgr.Fatal("ListenAndServe", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	std.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lgr.Error("Server forced to shutdown", err)
	}
	if err := a.Close(); err != nil {
		lgr.Error("Shutdown left resources open", err)
	}

	std.Println("Server exited")
}
