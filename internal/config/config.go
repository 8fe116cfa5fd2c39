package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Pipeline  PipelineConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	GoogleSpeech string
}

type PipelineConfig struct {
	GenerationModel     string
	EmbeddingModel      string
	EmbeddingDimensions int
	EmbeddingRetries    int
	SimilarityThreshold float64
	RetrievalTopK       int
}

type TelemetryConfig struct {
	Topic      string
	BufferSize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GoogleSpeech: getEnv("GOOGLE_SPEECH_API_KEY", getEnv("GOOGLE_GEMINI_API_KEY", "")),
		},
		Pipeline: PipelineConfig{
			GenerationModel:     getEnv("GENERATION_MODEL", "gemini-1.5-flash"),
			EmbeddingModel:      getEnv("EMBEDDING_MODEL", "multimodalembedding@001"),
			EmbeddingDimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", 1408),
			EmbeddingRetries:    getEnvAsInt("EMBEDDING_MAX_RETRIES", 3),
			SimilarityThreshold: getEnvAsFloat("SIMILARITY_THRESHOLD", 0.5),
			RetrievalTopK:       getEnvAsInt("RETRIEVAL_TOP_K", 5),
		},
		Telemetry: TelemetryConfig{
			Topic:      getEnv("PIPELINE_TELEMETRY_TOPIC", "PIPELINE_STAGE_EVENTS"),
			BufferSize: getEnvAsInt("TELEMETRY_BUFFER_SIZE", 1000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
