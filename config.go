package main

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI      string
	MongoDB       string
	LedgerURI     string
	LedgerTimeout time.Duration
	FetchWorkers  int
	JWTSecret     string
	Port          string
}

func mustConfig() Config {
	cfg := Config{
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getenv("MONGO_DB", "croptrace"),
		LedgerURI:     getenv("LEDGER_URL", "http://127.0.0.1:8545"),
		LedgerTimeout: getenvDuration("LEDGER_TIMEOUT", 15*time.Second),
		FetchWorkers:  getenvInt("FETCH_WORKERS", 8),
		JWTSecret:     getenv("JWT_SECRET", "change_me"),
		Port:          getenv("PORT", "8080"),
	}

	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s '%s', using default %d", k, v, def)
		return def
	}
	return n
}

func getenvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s '%s', using default %s", k, v, def)
		return def
	}
	return d
}
