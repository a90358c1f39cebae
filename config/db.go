package config

import (
	"fmt"
	"os"

	"github.com/gorilla/sessions"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	Store *sessions.CookieStore
)

// InitStore builds the cookie session store. Called from main after the
// environment is loaded so SESSION_SECRET from .env is honoured.
func InitStore() {
	Store = sessions.NewCookieStore([]byte(os.Getenv("SESSION_SECRET")))
}

func InitDB() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	DB = db
	return nil
}
