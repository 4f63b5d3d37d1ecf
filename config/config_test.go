package config

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-guide/models"
)

func TestFromEnvRequiresSecrets(t *testing.T) {
	t.Setenv("MANAGER_PASSWORD", "")
	t.Setenv("SESSION_SECRET", "s")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "MANAGER_PASSWORD")

	t.Setenv("MANAGER_PASSWORD", "pw")
	t.Setenv("STORE_DRIVER", "rest")
	t.Setenv("STORE_BASE_URL", "")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "STORE_BASE_URL")
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MANAGER_PASSWORD", "pw")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MEDIA_DRIVER", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("CACHE_STALE_TIME", "")
	t.Setenv("CACHE_GC_TIME", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CACHE_QUERY_RETRY_MAX", "45")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "sql", cfg.Store.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 45*time.Second, cfg.Cache.QueryRetryMax)
	assert.Equal(t, 30*time.Minute, cfg.Cache.GCTime)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.Security.CorsOrigins)
	assert.False(t, cfg.Security.RateLimitEnabled)
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{"*"}, ParseList(" , "))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ParseList("https://a.example, ,https://b.example"))
}

func TestMysqlDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://user:secret@db:3307/guide")
	require.NoError(t, err)
	assert.Contains(t, dsn, "user:secret@tcp(db:3307)/guide?")
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "parseTime=true")

	_, err = mysqlDSNFromURL("mysql://user@db")
	assert.Error(t, err)
}

func TestConnectDatabaseSeedsSQLite(t *testing.T) {
	db, err := ConnectDatabase(DatabaseConfig{
		Driver:       "sqlite",
		DSN:          ":memory:",
		AutoMigrate:  true,
		Seed:         true,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	var row models.ApartmentRow
	require.NoError(t, db.First(&row, "id = ?", "demo-apartment").Error)
	assert.Equal(t, "12", row.Number)

	require.NoError(t, SeedDatabase(db))
	var count int64
	require.NoError(t, db.Model(&models.ApartmentRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
