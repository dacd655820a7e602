package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/clubops/matchday-ops/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                         string
	ServiceName                    string
	ServiceVersion                 string
	HTTPAddr                       string
	DBURL                          string
	DBDisablePreparedBinary        bool
	CORSAllowedOrigins             []string
	ReadTimeout                    time.Duration
	WriteTimeout                   time.Duration
	PprofEnabled                   bool
	PprofAddr                      string
	UptraceEnabled                 bool
	UptraceDSN                     string
	PyroscopeEnabled               bool
	PyroscopeServerAddress         string
	PyroscopeAppName               string
	PyroscopeAuthToken             string
	PyroscopeBasicAuthUser         string
	PyroscopeBasicAuthPassword     string
	PyroscopeUploadRate            time.Duration
	AuditWebhookEnabled            bool
	AuditWebhookURL                string
	AuditWebhookToken              string
	AuditWebhookTimeout            time.Duration
	AuditWebhookCircuitEnabled     bool
	AuditWebhookCircuitFailures    int
	AuditWebhookCircuitOpenTimeout time.Duration
	AuditWebhookCircuitHalfOpenReq int
	AuditAsyncTimeout              time.Duration
	SeedMaxWorkers                 int
	LogLevel                       logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	auditWebhookEnabled, err := strconv.ParseBool(getEnv("AUDIT_WEBHOOK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_ENABLED: %w", err)
	}
	auditWebhookURL := strings.TrimSpace(getEnv("AUDIT_WEBHOOK_URL", ""))
	if auditWebhookEnabled && auditWebhookURL == "" {
		return Config{}, fmt.Errorf("AUDIT_WEBHOOK_URL is required when AUDIT_WEBHOOK_ENABLED=true")
	}
	auditWebhookTimeout, err := time.ParseDuration(getEnv("AUDIT_WEBHOOK_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_TIMEOUT: %w", err)
	}
	if auditWebhookTimeout <= 0 {
		return Config{}, fmt.Errorf("AUDIT_WEBHOOK_TIMEOUT must be > 0")
	}
	auditCircuitEnabled, err := strconv.ParseBool(getEnv("AUDIT_WEBHOOK_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_CIRCUIT_ENABLED: %w", err)
	}
	auditCircuitFailures, err := getEnvAsInt("AUDIT_WEBHOOK_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if auditCircuitFailures < 1 {
		return Config{}, fmt.Errorf("AUDIT_WEBHOOK_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	auditCircuitOpenTimeout, err := time.ParseDuration(getEnv("AUDIT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if auditCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("AUDIT_WEBHOOK_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	auditCircuitHalfOpenReq, err := getEnvAsInt("AUDIT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if auditCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("AUDIT_WEBHOOK_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	auditAsyncTimeout, err := time.ParseDuration(getEnv("AUDIT_ASYNC_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse AUDIT_ASYNC_TIMEOUT: %w", err)
	}
	if auditAsyncTimeout <= 0 {
		return Config{}, fmt.Errorf("AUDIT_ASYNC_TIMEOUT must be > 0")
	}

	seedMaxWorkers, err := getEnvAsInt("SEED_MAX_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_MAX_WORKERS: %w", err)
	}
	if seedMaxWorkers < 1 {
		return Config{}, fmt.Errorf("SEED_MAX_WORKERS must be >= 1")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	cfg := Config{
		AppEnv:                         appEnv,
		ServiceName:                    getEnv("APP_SERVICE_NAME", "matchday-ops-api"),
		ServiceVersion:                 getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                       getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                          getEnv("DB_URL", ""),
		DBDisablePreparedBinary:        dbDisablePreparedBinary,
		CORSAllowedOrigins:             splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:                    readTimeout,
		WriteTimeout:                   writeTimeout,
		PprofEnabled:                   pprofEnabled,
		PprofAddr:                      pprofAddr,
		UptraceEnabled:                 uptraceEnabled,
		UptraceDSN:                     uptraceDSN,
		PyroscopeEnabled:               pyroscopeEnabled,
		PyroscopeServerAddress:         pyroscopeServerAddress,
		PyroscopeAuthToken:             strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:         strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:            pyroscopeUploadRate,
		AuditWebhookEnabled:            auditWebhookEnabled,
		AuditWebhookURL:                auditWebhookURL,
		AuditWebhookToken:              strings.TrimSpace(getEnv("AUDIT_WEBHOOK_TOKEN", "")),
		AuditWebhookTimeout:            auditWebhookTimeout,
		AuditWebhookCircuitEnabled:     auditCircuitEnabled,
		AuditWebhookCircuitFailures:    auditCircuitFailures,
		AuditWebhookCircuitOpenTimeout: auditCircuitOpenTimeout,
		AuditWebhookCircuitHalfOpenReq: auditCircuitHalfOpenReq,
		AuditAsyncTimeout:              auditAsyncTimeout,
		SeedMaxWorkers:                 seedMaxWorkers,
		LogLevel:                       parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
