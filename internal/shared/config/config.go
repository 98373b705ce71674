package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	MongoDB  MongoDBConfig
	RabbitMQ RabbitMQConfig
	Auth     AuthConfig
	Twilio   TwilioConfig
	BlandAI  BlandAIConfig
	OpenAI   OpenAIConfig
	Eleven   ElevenLabsConfig
	Storage  StorageConfig
	Server   ServerConfig
	Reminder ReminderConfig
}

// MongoDBConfig holds MongoDB configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RabbitMQConfig holds RabbitMQ configuration. An empty URL disables the
// local push channel.
type RabbitMQConfig struct {
	URL      string
	Exchange string
}

// AuthConfig holds JWT signing configuration
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
}

// TwilioConfig holds Twilio WhatsApp configuration
type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	WhatsAppFrom string
}

// BlandAIConfig holds the voice call provider configuration
type BlandAIConfig struct {
	APIKey  string
	BaseURL string
	VoiceID string
}

// OpenAIConfig holds the message composer configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// ElevenLabsConfig holds the speech synthesis configuration
type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string
	VoiceID string
}

// StorageConfig holds receipt storage configuration
type StorageConfig struct {
	UploadDir     string
	MaxUploadSize int64
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// ReminderConfig holds reminder engine configuration
type ReminderConfig struct {
	RateLimitPerUser float64
	RateLimitBurst   int
}

// LoadConfig loads configuration from environment variables. A local .env
// file is applied first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	tokenTTL, _ := strconv.Atoi(getEnv("JWT_TOKEN_TTL_HOURS", "168"))
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE_BYTES", "16777216"), 10, 64)
	ratePerUser, _ := strconv.ParseFloat(getEnv("RATE_LIMIT_PER_USER", "10"), 64)
	rateBurst, _ := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "20"))

	return &Config{
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "bill_reminder"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "reminders"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET_KEY", "change-me"),
			TokenTTLHours: tokenTTL,
		},
		Twilio: TwilioConfig{
			AccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
			WhatsAppFrom: getEnv("TWILIO_WHATSAPP_FROM", "whatsapp:+14155238886"),
		},
		BlandAI: BlandAIConfig{
			APIKey:  getEnv("BLAND_AI_API_KEY", ""),
			BaseURL: getEnv("BLAND_AI_BASE_URL", "https://api.bland.ai"),
			VoiceID: getEnv("BLAND_AI_VOICE_ID", "e917d52a-5a9e-4c7c-8d1e-92719114343a"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", ""),
		},
		Eleven: ElevenLabsConfig{
			APIKey:  getEnv("ELEVENLABS_API_KEY", ""),
			BaseURL: getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
			VoiceID: getEnv("ELEVENLABS_VOICE_ID", "rachel"),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("UPLOAD_FOLDER", "uploads/receipts"),
			MaxUploadSize: maxUpload,
		},
		Server: ServerConfig{
			Port: getEnv("BILL_REMINDER_PORT", "5000"),
		},
		Reminder: ReminderConfig{
			RateLimitPerUser: ratePerUser,
			RateLimitBurst:   rateBurst,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
