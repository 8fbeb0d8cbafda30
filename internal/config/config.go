package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Env          string
	Build        string
	HTTPPort     string
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	JWTSecret    string
	JWTTTL       time.Duration
	CORSOrigins  string
	QuizBudget   int // seconds
	RollbarToken string

	Firebase   *FirebaseConfig
	Cloudinary *CloudinaryConfig
}

// Load reads configuration from the environment. A config/.env.<env> file
// under the working directory is loaded first when it exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	env := strings.ToLower(os.Getenv("ENV")) // dev (default), test, prod
	if env == "" {
		env = "dev"
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "config.Getwd")
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "config.godotenv(%s)", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "config.Stat(%s)", dotEnvPath)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Config{
		Env:          env,
		Build:        v.GetString("build"),
		HTTPPort:     v.GetString("port"),
		MongoURI:     v.GetString("mongo.uri"),
		MongoDB:      v.GetString("mongo.db"),
		RedisAddr:    strings.TrimPrefix(v.GetString("redis.uri"), "redis://"),
		JWTSecret:    v.GetString("jwt.secret"),
		JWTTTL:       v.GetDuration("jwt.ttl"),
		CORSOrigins:  v.GetString("cors.origins"),
		QuizBudget:   v.GetInt("quiz.budget"),
		RollbarToken: v.GetString("rollbar.token"),
		Firebase: &FirebaseConfig{
			APIKey:    v.GetString("firebase.api.key"),
			BaseURL:   v.GetString("firebase.base.url"),
			TimeoutMS: v.GetInt("firebase.timeout.ms"),
		},
		Cloudinary: &CloudinaryConfig{
			CloudName: v.GetString("cloudinary.cloud.name"),
			APIKey:    v.GetString("cloudinary.api.key"),
			APISecret: v.GetString("cloudinary.api.secret"),
			BaseURL:   v.GetString("cloudinary.base.url"),
			Folder:    v.GetString("cloudinary.folder"),
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("build", "dev")
	v.SetDefault("port", "8080")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.db", "aiacademy")
	v.SetDefault("redis.uri", "localhost:6379")
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("cors.origins", "*")
	v.SetDefault("quiz.budget", 30*60)
	v.SetDefault("rollbar.token", "")
	v.SetDefault("firebase.api.key", "")
	v.SetDefault("firebase.base.url", "https://identitytoolkit.googleapis.com/v1")
	v.SetDefault("firebase.timeout.ms", 10000)
	v.SetDefault("cloudinary.cloud.name", "")
	v.SetDefault("cloudinary.api.key", "")
	v.SetDefault("cloudinary.api.secret", "")
	v.SetDefault("cloudinary.base.url", "https://api.cloudinary.com/v1_1")
	v.SetDefault("cloudinary.folder", "quiz_portal_profiles")
}
