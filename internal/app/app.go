package app

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"aiacademy/internal/cache"
	"aiacademy/internal/config"
	"aiacademy/internal/logger"
	"aiacademy/internal/repository"
	"aiacademy/internal/service"
	"aiacademy/internal/transport/rest"
	"aiacademy/internal/transport/ws"
)

// sessionTTL keeps quiz snapshots readable for a day after the last change
const sessionTTL = 24 * time.Hour

// App holds the connections and services of a running server
type App struct {
	Mongo *mongo.Client
	Redis *redis.Client

	UserRepo     repository.UserRepo
	ResultRepo   repository.ResultRepo
	QuestionRepo repository.QuestionRepo

	Scores       cache.LeaderboardCache
	SessionCache cache.SessionCache
	BankCache    cache.BankCache

	Auth        *service.AuthService
	Profiles    *service.ProfileService
	Results     *service.ResultService
	Dashboards  *service.DashboardService
	Leaderboard *service.LeaderboardService
	Chatbot     *service.ChatbotService
	Quiz        *service.QuizService
	Hub         *ws.Hub

	conf *config.Config
	log  logger.Logger
}

// New connects to Mongo and Redis and wires every service
func New(ctx context.Context, conf *config.Config, log logger.Logger) (*App, error) {
	a := &App{conf: conf, log: log}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.MongoURI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	a.Mongo = mongoClient

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}
	log.Info("connected to MongoDB", map[string]interface{}{"db": conf.MongoDB})

	a.Redis = redis.NewClient(&redis.Options{Addr: conf.RedisAddr})
	if _, err := a.Redis.Ping(ctx).Result(); err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to ping Redis")
	}
	log.Info("connected to Redis", map[string]interface{}{"addr": conf.RedisAddr})

	db := mongoClient.Database(conf.MongoDB)
	a.UserRepo = repository.NewUserRepo(db)
	a.ResultRepo = repository.NewResultRepo(db)
	a.QuestionRepo = repository.NewQuestionRepo(db)

	a.Scores = cache.NewLeaderboardCache(a.Redis)
	a.SessionCache = cache.NewSessionCache(a.Redis, sessionTTL)
	a.BankCache = cache.NewBankCache(a.Redis)

	a.wire()
	return a, nil
}

func (a *App) wire() {
	identity := service.NewFirebaseIdentity(a.conf.Firebase)
	images := service.NewCloudinaryStore(a.conf.Cloudinary)
	if !a.conf.Firebase.IsEnabled() {
		a.log.Warn("FIREBASE_API_KEY not set, /api/auth is disabled")
	}
	if !a.conf.Cloudinary.IsEnabled() {
		a.log.Warn("Cloudinary credentials not set, image uploads are disabled")
	}

	a.Profiles = service.NewProfileService(a.UserRepo, a.ResultRepo, images, a.Scores, a.log)
	a.Results = service.NewResultService(a.UserRepo, a.ResultRepo, a.Scores, a.log)
	a.Dashboards = service.NewDashboardService(a.Profiles)
	a.Leaderboard = service.NewLeaderboardService(a.UserRepo, a.Scores, a.log)
	a.Chatbot = service.NewChatbotService()
	a.Auth = service.NewAuthService(identity, a.Profiles, a.conf.JWTSecret, a.conf.JWTTTL)
	a.Quiz = service.NewQuizService(a.QuestionRepo, a.BankCache, a.SessionCache, a.Results, a.log, a.conf.QuizBudget)

	// wsHub implements service.Broadcaster
	a.Hub = ws.NewHub(a.log)
	a.Quiz.SetBroadcaster(a.Hub)
}

// Router builds the HTTP handler
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		Auth:        a.Auth,
		Tokens:      a.Auth,
		Profiles:    a.Profiles,
		Results:     a.Results,
		Dashboards:  a.Dashboards,
		Leaderboard: a.Leaderboard,
		Chatbot:     a.Chatbot,
		Quiz:        a.Quiz,
		WSHandler:   ws.NewHandler(a.Hub, a.Auth, a.Quiz, a.log),
		CORSOrigins: a.conf.CORSOrigins,
	})
}

// Close stops running quizzes, then releases the hub and connections
func (a *App) Close() error {
	var result *multierror.Error

	if a.Quiz != nil {
		if err := a.Quiz.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "quiz service"))
		}
	}
	if a.Hub != nil {
		if err := a.Hub.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "ws hub"))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "redis"))
		}
	}
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(ctx); err != nil {
			result = multierror.Append(result, errors.Wrap(err, "mongo"))
		}
	}

	return result.ErrorOrNil()
}
