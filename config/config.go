package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	DBTimeZone string `env:"DB_TIMEZONE" envDefault:"UTC"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"survey.db"`

	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	CORSOrigins      []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	SupportedLocales []string `env:"SUPPORTED_LOCALES" envSeparator:"," envDefault:"en,vi"`

	ExportDir string `env:"EXPORT_DIR" envDefault:"./exports"`

	SubmitRatePerMin int `env:"SUBMIT_RATE_PER_MIN" envDefault:"30"`
	SubmitBurst      int `env:"SUBMIT_BURST" envDefault:"10"`
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using system environment")
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SubmitRatePerMin <= 0 || c.SubmitBurst <= 0 {
		return errors.New("SUBMIT_RATE_PER_MIN and SUBMIT_BURST must be positive")
	}
	return nil
}

func (c *Config) dialector() gorm.Dialector {
	if c.DBDriver == "sqlite" {
		return sqlite.Open(c.SQLitePath)
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode, c.DBTimeZone)
	return postgres.Open(dsn)
}

// GormConfig is shared by ConnectDB and the test databases.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         NewGormLogger(),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}

// ConnectDB opens the database and migrates every model.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.dialector(), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Printf("Connected to %s & migrated successfully", cfg.DBDriver)
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
