package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	PublicHost string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	PaddleAPIKey        string
	PaddleBaseURL       string
	PaddleWebhookSecret string

	MailRelayURL    string
	MailRelaySecret string

	SignupCredits      int
	WebhookCreditGrant int
	ResumeDir          string
}

// Load builds Config from environment with sensible defaults. A .env file in
// the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "3000"),
		PublicHost: getEnv("PUBLIC_HOST", "localhost:3000"),

		MySQLDSN:  getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/ziplai?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		OpenAIAPIKey:  os.Getenv("OPEN_AI_API_KEY"),
		OpenAIBaseURL: getEnv("OPEN_AI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPEN_AI_MODEL", "gpt-4.1-nano"),

		PaddleAPIKey:        os.Getenv("PADDLE_API_KEY"),
		PaddleBaseURL:       getEnv("PADDLE_BASE_URL", "https://api.paddle.com"),
		PaddleWebhookSecret: os.Getenv("PADDLE_WEBHOOK_SECRET"),

		MailRelayURL:    getEnv("MAIL_RELAY_URL", "https://sendmail-snowy.vercel.app/api/sendVerification"),
		MailRelaySecret: os.Getenv("MAIL_RELAY_SECRET"),

		SignupCredits:      getEnvInt("SIGNUP_CREDITS", 5),
		WebhookCreditGrant: getEnvInt("WEBHOOK_CREDIT_GRANT", 50),
		ResumeDir:          getEnv("RESUME_DIR", "user_resumes"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
