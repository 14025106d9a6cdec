package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string
	PublicBaseURL   string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	GCSBucket       string
	GCSPrefix       string

	DatabaseURL      string
	DBAutoMigrate    bool
	JWTSecret        string
	RateLimitAIRate  float64
	RateLimitAIBurst int

	LLMProvider       string
	GeminiAPIKey      string
	GeminiBaseURL     string
	GeminiModelBinary string
	GeminiModelText   string
	VertexProject     string
	VertexRegion      string
	AnthropicAPIKey   string
	AnthropicModel    string
	LLMTimeoutSeconds int
	LLMRetry          bool

	AnalysisPDFAsText    bool
	AnalysisMaxTextChars int
}

var defaults = map[string]any{
	"port":                     "8080",
	"env":                      "dev",
	"cors_allow_origins":       "http://localhost:5173",
	"log_level":                "info",
	"log_format":               "json",
	"public_base_url":          "",
	"object_store":             "local",
	"local_store_dir":          "./data",
	"aws_region":               "",
	"s3_bucket":                "",
	"s3_prefix":                "",
	"s3_sse_kms_key_id":        "",
	"gcs_bucket":               "",
	"gcs_prefix":               "",
	"database_url":             "",
	"db_auto_migrate":          false,
	"jwt_secret":               "",
	"rate_limit_ai_per_minute": 10,
	"rate_limit_ai_burst":      3,
	"llm_provider":             "gemini",
	"gemini_api_key":           "",
	"gemini_base_url":          "https://generativelanguage.googleapis.com",
	"gemini_model_binary":      "gemini-2.0-flash",
	"gemini_model_text":        "gemini-1.5-flash",
	"vertex_project":           "",
	"vertex_region":            "us-central1",
	"anthropic_api_key":        "",
	"anthropic_model":          "claude-sonnet-4-5",
	"llm_timeout_seconds":      60,
	"llm_retry":                false,
	"analysis_pdf_as_text":     false,
	"analysis_max_text_chars":  100000,
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", ".env.local", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	cfg := Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:       strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		PublicBaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("public_base_url")), "/"),

		ObjectStoreType: normalizeStoreType(v.GetString("object_store")),
		LocalStoreDir:   v.GetString("local_store_dir"),
		AWSRegion:       v.GetString("aws_region"),
		S3Bucket:        v.GetString("s3_bucket"),
		S3Prefix:        v.GetString("s3_prefix"),
		SSEKMSKeyID:     v.GetString("s3_sse_kms_key_id"),
		GCSBucket:       v.GetString("gcs_bucket"),
		GCSPrefix:       v.GetString("gcs_prefix"),

		DatabaseURL:      v.GetString("database_url"),
		DBAutoMigrate:    v.GetBool("db_auto_migrate"),
		JWTSecret:        v.GetString("jwt_secret"),
		RateLimitAIRate:  v.GetFloat64("rate_limit_ai_per_minute") / 60.0,
		RateLimitAIBurst: v.GetInt("rate_limit_ai_burst"),

		LLMProvider:       normalizeProvider(v.GetString("llm_provider")),
		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GeminiBaseURL:     strings.TrimRight(v.GetString("gemini_base_url"), "/"),
		GeminiModelBinary: v.GetString("gemini_model_binary"),
		GeminiModelText:   v.GetString("gemini_model_text"),
		VertexProject:     v.GetString("vertex_project"),
		VertexRegion:      v.GetString("vertex_region"),
		AnthropicAPIKey:   v.GetString("anthropic_api_key"),
		AnthropicModel:    v.GetString("anthropic_model"),
		LLMTimeoutSeconds: v.GetInt("llm_timeout_seconds"),
		LLMRetry:          v.GetBool("llm_retry"),

		AnalysisPDFAsText:    v.GetBool("analysis_pdf_as_text"),
		AnalysisMaxTextChars: v.GetInt("analysis_max_text_chars"),
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production guarantees.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) validate() error {
	if !c.IsProduction() {
		return nil
	}
	if c.DatabaseURL == "" {
		return eris.New("DATABASE_URL is required in production")
	}
	if c.JWTSecret == "" {
		return eris.New("JWT_SECRET is required in production")
	}
	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return eris.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case "vertex":
		if c.VertexProject == "" {
			return eris.New("VERTEX_PROJECT is required when LLM_PROVIDER=vertex")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return eris.New("ANTHROPIC_API_KEY is required when LLM_PROVIDER=anthropic")
		}
	case "placeholder":
		return eris.New("LLM_PROVIDER=placeholder is not allowed in production")
	}
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "gcs":
		return "gcs"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "vertex", "vertexai":
		return "vertex"
	case "anthropic", "claude":
		return "anthropic"
	case "placeholder", "none":
		return "placeholder"
	default:
		return "gemini"
	}
}
