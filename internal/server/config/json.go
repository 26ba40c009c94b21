package config

import (
	"encoding/json"
	"os"

	"github.com/eulark/eulark/internal/flagx"
	"github.com/eulark/eulark/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file. Durations
// accept "8h" style strings or integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	DatabaseMaxConns            int32          `json:"database_max_conns"`
	DatabaseConnectTimeout      timex.Duration `json:"database_connect_timeout"`
	SecretKey                   string         `json:"secret_key"`
	PlayerTokenValidityDuration timex.Duration `json:"player_token_validity_duration"`
	AdminTokenValidityDuration  timex.Duration `json:"admin_token_validity_duration"`
	ResendAPIKey                string         `json:"resend_api_key"`
	MailFrom                    string         `json:"mail_from"`
	BaseURL                     string         `json:"base_url"`
	BuildingListURL             string         `json:"building_list_url"`
	CORSAllowedOrigins          []string       `json:"cors_allowed_origins"`
	LogLevel                    string         `json:"log_level"`
	LogFormat                   string         `json:"log_format"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config. Only
// fields present (non-zero) in the file replace what config already holds.
// A missing flag means no file; an unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	if c.DatabaseMaxConns > 0 {
		config.DatabaseMaxConns = c.DatabaseMaxConns
	}
	if c.DatabaseConnectTimeout.Duration > 0 {
		config.DatabaseConnectTimeout = c.DatabaseConnectTimeout.Duration
	}
	setString(&config.SecretKey, c.SecretKey)
	if c.PlayerTokenValidityDuration.Duration > 0 {
		config.PlayerTokenValidityDuration = c.PlayerTokenValidityDuration.Duration
	}
	if c.AdminTokenValidityDuration.Duration > 0 {
		config.AdminTokenValidityDuration = c.AdminTokenValidityDuration.Duration
	}
	setString(&config.ResendAPIKey, c.ResendAPIKey)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.BaseURL, c.BaseURL)
	setString(&config.BuildingListURL, c.BuildingListURL)
	if len(c.CORSAllowedOrigins) > 0 {
		config.CORSAllowedOrigins = c.CORSAllowedOrigins
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
