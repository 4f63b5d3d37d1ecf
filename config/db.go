package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"checkin-guide/models"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	cfg := gomysql.NewConfig()
	cfg.User = u.User.Username()
	cfg.Passwd, _ = u.User.Password()
	cfg.Net = "tcp"
	cfg.Addr = u.Hostname() + ":" + port
	cfg.DBName = dbName
	cfg.ParseTime = true
	cfg.Params = map[string]string{}
	for key, values := range u.Query() {
		if len(values) > 0 {
			cfg.Params[key] = values[0]
		}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}

// resolveDSN picks DB_DSN, then MYSQL_URL / DATABASE_URL, then the
// per-driver default built from DB_* parts.
func resolveDSN(cfg DatabaseConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}

	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	switch cfg.Driver {
	case "mysql":
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		if raw != "" {
			return raw, nil
		}
		c := gomysql.NewConfig()
		c.User = EnvOrDefault("DB_USER", "root")
		c.Passwd = EnvOrDefault("DB_PASS", "")
		c.Net = "tcp"
		c.Addr = EnvOrDefault("DB_HOST", "127.0.0.1") + ":" + EnvOrDefault("DB_PORT", "3306")
		c.DBName = EnvOrDefault("DB_NAME", "checkin_guide")
		c.ParseTime = true
		c.Params = map[string]string{"charset": "utf8mb4"}
		return c.FormatDSN(), nil
	case "postgres":
		if raw != "" {
			return raw, nil
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			EnvOrDefault("DB_HOST", "127.0.0.1"),
			EnvOrDefault("DB_PORT", "5432"),
			EnvOrDefault("DB_USER", "postgres"),
			EnvOrDefault("DB_PASS", ""),
			EnvOrDefault("DB_NAME", "checkin_guide"),
			EnvOrDefault("DB_SSL_MODE", "disable"),
		), nil
	case "sqlite":
		return EnvOrDefault("DB_NAME", "checkin-guide.db"), nil
	default:
		return "", fmt.Errorf("unknown DB_DRIVER %q", cfg.Driver)
	}
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// ConnectDatabase opens the SQL backend. Query logs go to w, which is
// normally the application logrus logger.
func ConnectDatabase(cfg DatabaseConfig, w logger.Writer) (*gorm.DB, error) {
	dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}
	dial, err := dialector(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(w, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormLogLevel(cfg.LogLevel),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})

	db, err := gorm.Open(dial, &gorm.Config{Logger: newLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if cfg.AutoMigrate {
		if err := models.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	if cfg.Seed {
		if err := SeedDatabase(db); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	return db, nil
}

// SeedDatabase inserts one demo apartment into an empty database.
func SeedDatabase(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ApartmentRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	wifi := "GuestWifi"
	wifiPass := "welcome2024"
	entrance := "1234"
	lock := "5678"
	complexName := "Демо"
	return db.Create(&models.ApartmentRow{
		ID:                 "demo-apartment",
		Name:               "Demo apartment",
		Number:             "12",
		Building:           "1",
		Complex:            &complexName,
		Address:            "1 Demo street",
		WifiName:           &wifi,
		WifiPassword:       &wifiPass,
		EntranceCode:       &entrance,
		ElectronicLockCode: &lock,
	}).Error
}
