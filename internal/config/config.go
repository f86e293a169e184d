package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("healthcommunity.config")

// DefaultBannedWords is used when BANNED_WORDS is not set.
var DefaultBannedWords = []string{
	"spam",
	"scam",
	"lừa đảo",
	"đồ ngu",
	"khốn nạn",
	"địt",
	"fuck",
	"shit",
}

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	URLExpiry  time.Duration
}

type Config struct {
	ServerPort           int
	DB                   DB
	MinIO                MinIO
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
	BannedWords          []string
	TimeZone             string
	PostEditWindow       time.Duration
	LogConfig            string
	CORSAllowedOrigins   []string
	MigrationsPath       string
}

// lookup reads key and parses it, keeping fallback when the variable is
// unset or does not parse.
func lookup[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		logger.Warningf("ignoring %s=%q: %v", key, raw, err)
		return fallback
	}
	return value
}

func str(raw string) (string, error) { return raw, nil }

func bytesSize(raw string) (int64, error) { return strconv.ParseInt(raw, 10, 64) }

// list splits a comma separated value, dropping blanks.
func list(raw string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Warningf(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort: lookup("SERVER_PORT", 8080, strconv.Atoi),
		DB: DB{
			DbHOST:     lookup("DB_HOST", "localhost", str),
			DbPORT:     lookup("DB_PORT", "5432", str),
			DbUSER:     lookup("DB_USER", "postgres", str),
			DbPASSWORD: lookup("DB_PASSWORD", "password", str),
			DbNAME:     lookup("DB_NAME", "healthcommunity", str),
			DbSSLMODE:  lookup("DB_SSLMODE", "disable", str),
		},
		MinIO: MinIO{
			Endpoint:   lookup("MINIO_ENDPOINT", "localhost:9000", str),
			AccessKey:  lookup("MINIO_ACCESS_KEY", "minioadmin", str),
			SecretKey:  lookup("MINIO_SECRET_KEY", "minioadmin", str),
			BucketName: lookup("MINIO_BUCKET_NAME", "avatars", str),
			UseSSL:     lookup("MINIO_USE_SSL", false, strconv.ParseBool),
			Region:     lookup("MINIO_REGION", "us-east-1", str),
			URLExpiry:  lookup("MINIO_URL_EXPIRY", 168*time.Hour, time.ParseDuration),
		},
		JWTSecretKey:         lookup("JWT_SECRET_KEY", "", str),
		AccessTokenDuration:  lookup("ACCESS_TOKEN_DURATION", 24*time.Hour, time.ParseDuration),
		RefreshTokenDuration: lookup("REFRESH_TOKEN_DURATION", 168*time.Hour, time.ParseDuration),
		MaxUploadSize:        lookup("MAX_UPLOAD_SIZE", int64(5<<20), bytesSize),
		BannedWords:          lookup("BANNED_WORDS", DefaultBannedWords, list),
		TimeZone:             lookup("TIME_ZONE", "Asia/Ho_Chi_Minh", str),
		PostEditWindow:       lookup("POST_EDIT_WINDOW", 15*time.Minute, time.ParseDuration),
		LogConfig:            lookup("LOG_CONFIG", "<root>=INFO", str),
		CORSAllowedOrigins:   lookup("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}, list),
		MigrationsPath:       lookup("MIGRATIONS_PATH", "migrations/001_create_tables.sql", str),
	}
}

// Location resolves TimeZone, falling back to a fixed UTC+7 zone when the
// tz database is unavailable.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		logger.Warningf("unknown time zone %q, using UTC+7: %v", c.TimeZone, err)
		return time.FixedZone("UTC+7", 7*60*60)
	}
	return loc
}
