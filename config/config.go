package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	APIURL string
	APIKey string

	RedisHost string
	RedisPort string
	CacheTTL  time.Duration

	SessionKey []byte
	SessionTTL time.Duration

	Debounce time.Duration
	PageSize int
	Currency string

	SMTPServer   string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailSubject string
}

// FromEnv reads the process environment. Missing upstream settings are not
// an error here, they show up as failed searches.
func FromEnv() Config {
	cfg := Config{
		Port:         getenv("PORT", "8000"),
		APIURL:       os.Getenv("API_URL"),
		APIKey:       os.Getenv("API_KEY"),
		RedisHost:    os.Getenv("REDIS_HOST"),
		RedisPort:    getenv("REDIS_PORT", "6379"),
		CacheTTL:     duration("SEARCH_CACHE_TTL", 5*time.Minute),
		SessionTTL:   duration("SESSION_TTL", 30*time.Minute),
		Debounce:     duration("DEBOUNCE", 300*time.Millisecond),
		PageSize:     integer("PAGE_SIZE", 8),
		Currency:     getenv("CURRENCY", "MXN"),
		SMTPServer:   os.Getenv("EMAIL_SMTP_SERVER"),
		SMTPPort:     integer("EMAIL_SMTP_PORT", 587),
		SMTPUsername: os.Getenv("EMAIL_SMTP_USERNAME"),
		SMTPPassword: os.Getenv("EMAIL_SMTP_PASSWORD"),
		EmailFrom:    os.Getenv("EMAIL_MESSAGE_FROM"),
		EmailSubject: os.Getenv("EMAIL_CART_SUBJECT"),
	}

	key, err := sessionKey(os.Getenv("SESSION_KEY"))
	if err != nil {
		log.Fatalf("Cannot generate session key: %v", err)
	}
	cfg.SessionKey = key

	return cfg
}

var randRead = rand.Read

// sessionKey decodes encoded, falling back to a random per-process key.
func sessionKey(encoded string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(encoded)
	if err == nil && len(key) > 0 {
		return key, nil
	}

	log.Println("SESSION_KEY missing or not base64, using a per-process key")
	key = make([]byte, 32)
	if _, err := randRead(key); err != nil {
		return nil, err
	}
	return key, nil
}

func (c Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func (c Config) EmailEnabled() bool {
	return c.SMTPServer != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		log.Println(key, err)
		return fallback
	}
	return d
}

func integer(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		log.Println(key, err)
		return fallback
	}
	return n
}
