package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreSQLite = "sqlite"
)

type Config struct {
	Port         string
	Store        string
	MongoURI     string
	DBName       string
	SQLiteDSN    string
	TokenSecret  string
	TokenTTL     time.Duration
	PaymentKey   string
	Currency     string
	StoreTimeout time.Duration
	LogFile      string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[warn] could not read .env: %v", err)
	}

	cfg := Config{
		Port:         getenv("PORT", "5000"),
		Store:        strings.ToLower(getenv("STORE", StoreMongo)),
		MongoURI:     os.Getenv("MONGO_URI"),
		DBName:       getenv("DB_NAME", "toysDB"),
		SQLiteDSN:    getenv("SQLITE_DSN", "kidzplay.db"),
		TokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		TokenTTL:     duration("TOKEN_TTL", time.Hour),
		PaymentKey:   os.Getenv("PAYMENT_SECRET_KEY"),
		Currency:     strings.ToLower(getenv("PAYMENT_CURRENCY", "usd")),
		StoreTimeout: duration("STORE_TIMEOUT", 10*time.Second),
		LogFile:      os.Getenv("LOG_FILE"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = atlasURI(os.Getenv("DB_USER"), os.Getenv("DB_PASS"), getenv("DB_HOST", "cluster0.xvfigcf.mongodb.net"))
	}

	log.Printf("[config] PORT=%s STORE=%s DB_NAME=%s SQLITE_DSN=%s TOKEN_TTL=%s STORE_TIMEOUT=%s",
		cfg.Port, cfg.Store, cfg.DBName, cfg.SQLiteDSN, cfg.TokenTTL, cfg.StoreTimeout)
	return cfg
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.TokenSecret == "" {
		errs = append(errs, errors.New("ACCESS_TOKEN_SECRET is required"))
	}
	switch c.Store {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI or DB_USER/DB_PASS is required for the mongo store"))
		}
	case StoreSQLite:
		if c.SQLiteDSN == "" {
			errs = append(errs, errors.New("SQLITE_DSN is required for the sqlite store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE %q", c.Store))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, errors.New("STORE_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

func atlasURI(user, pass, host string) string {
	if user == "" || pass == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[warn] bad %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
