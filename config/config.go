package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Jwt      Jwt
	Game     Game
	Redis    Redis
	Smtp     Smtp
	Storage  Storage
	App      App
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Jwt struct {
	Secret string
}

type Game struct {
	// DailyRolloverHourUTC is the UTC hour at which a new game-day begins.
	DailyRolloverHourUTC int
}

type Redis struct {
	Addr string
}

type Smtp struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromName  string
	FromEmail string
	StartTLS  bool
}

type Storage struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type App struct {
	// BaseURL is used to build links embedded in outgoing emails.
	BaseURL string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DAILY_ROLLOVER_HOUR_UTC", 0)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_STARTTLS", true)
	viper.SetDefault("SMTP_FROM_NAME", "Guessnica")
	viper.SetDefault("S3_REGION", "auto")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Jwt.Secret = viper.GetString("JWT_SECRET")
	config.Game.DailyRolloverHourUTC = viper.GetInt("DAILY_ROLLOVER_HOUR_UTC")
	config.Redis.Addr = viper.GetString("REDIS_ADDR")

	config.Smtp.Host = viper.GetString("SMTP_HOST")
	config.Smtp.Port = viper.GetInt("SMTP_PORT")
	config.Smtp.User = viper.GetString("SMTP_USER")
	config.Smtp.Password = viper.GetString("SMTP_PASSWORD")
	config.Smtp.FromName = viper.GetString("SMTP_FROM_NAME")
	config.Smtp.FromEmail = viper.GetString("SMTP_FROM_EMAIL")
	config.Smtp.StartTLS = viper.GetBool("SMTP_STARTTLS")

	config.Storage.Endpoint = viper.GetString("S3_ENDPOINT")
	config.Storage.Region = viper.GetString("S3_REGION")
	config.Storage.Bucket = viper.GetString("S3_BUCKET")
	config.Storage.AccessKey = viper.GetString("S3_ACCESS_KEY")
	config.Storage.SecretKey = viper.GetString("S3_SECRET_KEY")
	config.Storage.PublicBaseURL = viper.GetString("S3_PUBLIC_BASE_URL")

	config.App.BaseURL = viper.GetString("APP_BASE_URL")

	if config.Game.DailyRolloverHourUTC < 0 || config.Game.DailyRolloverHourUTC > 23 {
		log.Warn().Int("hour", config.Game.DailyRolloverHourUTC).Msg("DAILY_ROLLOVER_HOUR_UTC out of range, falling back to 0")
		config.Game.DailyRolloverHourUTC = 0
	}

	log.Info().Str("port", config.Server.Port).Int("rollover_hour", config.Game.DailyRolloverHourUTC).Msg("Config loaded")
	return &config, nil
}
