package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"exam-seating-go/seating"
)

// Config holds the runtime settings of the seating server
type Config struct {
	Port           string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	BenchOptions   []int // Bench counts offered to the exam office
	DefaultBenches int
	MaxStudents    int // Upper bound on rolls expanded by one seating run
	SchoolName     string
}

// Load reads an optional .env file and then the process environment
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	} else {
		log.Println(".env file loaded")
	}

	cfg := Config{
		Port:           GetEnv("PORT", "8080"),
		RedisAddr:      GetEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:  GetEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		BenchOptions:   ParseBenchOptions(GetEnv("SEATING_BENCH_OPTIONS", "25,30,31")),
		DefaultBenches: getEnvInt("SEATING_DEFAULT_BENCHES", 25),
		MaxStudents:    getEnvInt("SEATING_MAX_STUDENTS", seating.DefaultMaxStudents),
		SchoolName:     GetEnv("SCHOOL_NAME", ""),
	}
	if cfg.DefaultBenches <= 0 {
		log.Printf("Invalid SEATING_DEFAULT_BENCHES %d, falling back to 25", cfg.DefaultBenches)
		cfg.DefaultBenches = 25
	}
	if cfg.MaxStudents <= 0 {
		log.Printf("Invalid SEATING_MAX_STUDENTS %d, falling back to %d", cfg.MaxStudents, seating.DefaultMaxStudents)
		cfg.MaxStudents = seating.DefaultMaxStudents
	}
	return cfg
}

// GetEnv returns the value of key or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Ignoring %s=%q: %v", key, raw, err)
		return fallback
	}
	return n
}

// ParseBenchOptions reads a CSV of positive bench counts, skipping bad entries
func ParseBenchOptions(csv string) []int {
	var opts []int
	for _, token := range strings.Split(csv, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(token))
		if err != nil || n <= 0 {
			continue
		}
		opts = append(opts, n)
	}
	return opts
}
