package config

import (
	"fmt"
	"log"
	"time"

	"github.com/pgabrielsw/gridline-v4/global"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDB() {
	db, err := OpenDB(AppConfig.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Connected to database %s on %s:%s", AppConfig.Database.Name, AppConfig.Database.Host, AppConfig.Database.Port)

	global.DB = db
}

// OpenDB opens the application database and applies the pool limits.
func OpenDB(dbConf DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dbConf.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("set up database pool: %w", err)
	}
	sqlDB.SetMaxIdleConns(dbConf.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConf.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func (c DatabaseConfig) DSN() string {
	sslmode := c.Sslmode
	if sslmode == "" {
		sslmode = "disable"
	}
	timezone := c.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, sslmode, timezone,
	)
}
