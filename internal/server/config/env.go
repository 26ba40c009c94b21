package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eulark/eulark/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names recognised by parseEnv.
const (
	EnvHTTPAddr            = "EULARK_HTTP_ADDR"
	EnvDatabaseDSN         = "EULARK_DATABASE_DSN"
	EnvDatabaseMaxConns    = "EULARK_DATABASE_MAX_CONNS"
	EnvDatabaseConnTimeout = "EULARK_DATABASE_CONNECT_TIMEOUT"
	EnvSecretKey           = "EULARK_JWT_SECRET"
	EnvPlayerTokenTTL      = "EULARK_PLAYER_TOKEN_TTL"
	EnvAdminTokenTTL       = "EULARK_ADMIN_TOKEN_TTL"
	EnvResendAPIKey        = "EULARK_RESEND_API_KEY"
	EnvMailFrom            = "EULARK_MAIL_FROM"
	EnvBaseURL             = "EULARK_BASE_URL"
	EnvBuildingListURL     = "EULARK_BUILDING_LIST_URL"
	EnvCORSAllowedOrigins  = "EULARK_CORS_ALLOWED_ORIGINS"
	EnvLogLevel            = "EULARK_LOG_LEVEL"
	EnvLogFormat           = "EULARK_LOG_FORMAT"
	EnvS3RootUser          = "EULARK_S3_ROOT_USER"
	EnvS3RootPassword      = "EULARK_S3_ROOT_PASSWORD"
	EnvS3Bucket            = "EULARK_S3_BUCKET"
	EnvS3Region            = "EULARK_S3_REGION"
	EnvS3BaseEndpoint      = "EULARK_S3_BASE_ENDPOINT"
)

// loadDotEnv is a seam for tests.
var loadDotEnv = godotenv.Load

// parseEnv overlays EULARK_* variables. A dotenv file named by -env (or ./.env
// when present) is loaded first; variables already set in the process win.
// Malformed numbers or durations panic, like a broken JSON file does.
func parseEnv(config *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile != "" {
		if err := loadDotEnv(envFile); err != nil {
			panic(err)
		}
	} else if err := loadDotEnv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&config.EndpointAddrHTTP, EnvHTTPAddr)
	envString(&config.DatabaseDSN, EnvDatabaseDSN)
	if v, ok := os.LookupEnv(EnvDatabaseMaxConns); ok {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			panic(err)
		}
		config.DatabaseMaxConns = int32(n)
	}
	envDuration(&config.DatabaseConnectTimeout, EnvDatabaseConnTimeout)
	envString(&config.SecretKey, EnvSecretKey)
	envDuration(&config.PlayerTokenValidityDuration, EnvPlayerTokenTTL)
	envDuration(&config.AdminTokenValidityDuration, EnvAdminTokenTTL)
	envString(&config.ResendAPIKey, EnvResendAPIKey)
	envString(&config.MailFrom, EnvMailFrom)
	envString(&config.BaseURL, EnvBaseURL)
	envString(&config.BuildingListURL, EnvBuildingListURL)
	if v, ok := os.LookupEnv(EnvCORSAllowedOrigins); ok {
		config.CORSAllowedOrigins = splitCSV(v)
	}
	envString(&config.LogLevel, EnvLogLevel)
	envString(&config.LogFormat, EnvLogFormat)
	envString(&config.S3RootUser, EnvS3RootUser)
	envString(&config.S3RootPassword, EnvS3RootPassword)
	envString(&config.S3Bucket, EnvS3Bucket)
	envString(&config.S3Region, EnvS3Region)
	envString(&config.S3BaseEndpoint, EnvS3BaseEndpoint)
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
