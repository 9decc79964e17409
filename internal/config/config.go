package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from environment variables
// with sensible development defaults.
type Config struct {
	AppPort     string
	JWTSecret   string
	UploadsDir  string
	RabbitMQURL string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimezone string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
}

// Load reads configuration from the environment (and a .env file if present).
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "secreto")
	viper.SetDefault("UPLOADS_DIR", "./uploads")
	viper.SetDefault("RABBITMQ_URL", "")

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "password")
	viper.SetDefault("DB_NAME", "accidenta")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "UTC")

	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "Sistema de Emergencias Accidenta <accidentaapp@gmail.com>")

	viper.AutomaticEnv()

	return Config{
		AppPort:     viper.GetString("APP_PORT"),
		JWTSecret:   viper.GetString("JWT_SECRET"),
		UploadsDir:  viper.GetString("UPLOADS_DIR"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),

		DBHost:     viper.GetString("DB_HOST"),
		DBPort:     viper.GetString("DB_PORT"),
		DBUser:     viper.GetString("DB_USER"),
		DBPassword: viper.GetString("DB_PASSWORD"),
		DBName:     viper.GetString("DB_NAME"),
		DBSSLMode:  viper.GetString("DB_SSLMODE"),
		DBTimezone: viper.GetString("DB_TIMEZONE"),

		SMTPHost:     viper.GetString("SMTP_HOST"),
		SMTPPort:     viper.GetInt("SMTP_PORT"),
		SMTPUser:     viper.GetString("SMTP_USER"),
		SMTPPassword: viper.GetString("SMTP_PASSWORD"),
		MailFrom:     viper.GetString("MAIL_FROM"),
	}
}
