package config

import (
	"homegame-server/internal/util"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("HOMEGAME_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOMEGAME_ROOM_CHAT_LIMIT", "50")()
	config.loaded = false

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":6000", cfg.Addr)
	a.Equal("paulhankin", cfg.Oracle)
	a.Equal("debug", cfg.Log.Level)
	a.Equal(2, cfg.Room.NextHandDelay)
	a.Equal(50, cfg.Room.ChatLimit)
	a.Equal(10, cfg.Room.MaxSeats)
	a.Equal("from-file", cfg.Token.Secret)

	// ensure that it's only loaded once
	_ = os.Setenv("HOMEGAME_ROOM_CHAT_LIMIT", "60")
	// ensure we aren't using a pointer
	cfg.Room.ChatLimit = 1
	cfg = Instance()
	a.Equal(50, cfg.Room.ChatLimit)
}

func TestDefaults(t *testing.T) {
	defer util.SetEnv("HOMEGAME_CONFIG_FILE", "testdata/missing.yaml")()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().Addr, cfg.Addr)
	assert.Equal(t, "chehsunliu", cfg.Oracle)
	assert.Equal(t, 4, cfg.Room.NextHandDelay)
	assert.Equal(t, 24, cfg.Token.TTL)
}
