package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=acelera port=5432 sslmode=disable TimeZone=America/Sao_Paulo"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"
	DATE_FORMAT       = "2006-01-02"
	CLOCK_FORMAT      = "15:04"
	DEFAULT_TIMEZONE  = "America/Sao_Paulo"
	STUDIO_NAME       = "Acelera Tattoo"

	STORE_MEMORY   = "memory"
	STORE_POSTGRES = "postgres"
)

// StudioLocation is the single timezone used for every calendar-day comparison.
func StudioLocation() *time.Location {
	name := os.Getenv("STUDIO_TIMEZONE")
	if name == "" {
		name = DEFAULT_TIMEZONE
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Could not load timezone %s, falling back to UTC: %s\n", name, err.Error())
		return time.UTC
	}
	return loc
}

func StoreDriver() string {
	if d := os.Getenv("STORE_DRIVER"); d != "" {
		return d
	}
	return STORE_MEMORY
}

// SubmitDelay is the artificial wait applied to public intake submissions.
func SubmitDelay() time.Duration {
	return durationMs("SUBMIT_DELAY_MS", 1500)
}

// LoginDelay is the artificial wait of the simulated login.
func LoginDelay() time.Duration {
	return durationMs("LOGIN_DELAY_MS", 1000)
}

func JWTSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("acelera-local-secret")
}

func TokenTTL() time.Duration {
	return time.Duration(intEnv("TOKEN_TTL_HOURS", 12)) * time.Hour
}

func IsLocal() bool {
	return os.Getenv("API_ENV") == "local"
}

func durationMs(key string, def int) time.Duration {
	return time.Duration(intEnv(key, def)) * time.Millisecond
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Invalid value for %s: %q\n", key, v)
		return def
	}
	return n
}

// MailFrom is the sender of studio emails.
func MailFrom() string {
	if v := os.Getenv("MAIL_FROM"); v != "" {
		return v
	}
	return "agenda@aceleratattoo.com"
}

// DigestRecipients are the addresses of the daily agenda email.
func DigestRecipients() []string {
	v := os.Getenv("AGENDA_DIGEST_TO")
	if v == "" {
		return []string{"artista@aceleratattoo.com"}
	}
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
