package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TRAINER_PAYOUT_AMOUNT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "5001", cfg.ServerPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.True(t, cfg.TrainerPayout.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TRAINER_PAYOUT_AMOUNT", "25.50")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "25.5", cfg.TrainerPayout.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}

func TestLoad_RejectsNonPositivePayout(t *testing.T) {
	t.Setenv("TRAINER_PAYOUT_AMOUNT", "-3")

	cfg := Load()

	assert.True(t, cfg.TrainerPayout.Equal(decimal.NewFromInt(10)))
}
