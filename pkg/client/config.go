package client

import (
	"time"

	"github.com/dmitrymomot/socialkit/pkg/kvstore"
)

// Storage drivers understood by Config.StorageDriver.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the environment-driven configuration of a Client.
// Load it with config.Load.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"socialkit"`

	SocketURL         string        `env:"SOCKET_URL" envDefault:"ws://localhost:3001/socket"`
	SocketToken       string        `env:"SOCKET_TOKEN"`
	HandshakeTimeout  time.Duration `env:"SOCKET_HANDSHAKE_TIMEOUT" envDefault:"20s"`
	ReconnectInterval time.Duration `env:"SOCKET_RECONNECT_INTERVAL" envDefault:"1s"`
	ReconnectAttempts int           `env:"SOCKET_RECONNECT_ATTEMPTS" envDefault:"5"`

	StorageDriver string              `env:"STORAGE_DRIVER" envDefault:"file"`
	StorageDir    string              `env:"STORAGE_DIR" envDefault:".socialkit"`
	Redis         kvstore.RedisConfig // REDIS_* variables

	ToastMax      int           `env:"TOAST_MAX" envDefault:"5"`
	ToastDuration time.Duration `env:"TOAST_DURATION" envDefault:"4s"`

	// Desktop popups and sounds share one token bucket. A zero rate disables throttling.
	SideEffectRate  float64 `env:"SIDE_EFFECT_RATE" envDefault:"1"`
	SideEffectBurst int     `env:"SIDE_EFFECT_BURST" envDefault:"3"`

	DesktopCommand bool   `env:"DESKTOP_COMMAND" envDefault:"true"`
	SoundBell      bool   `env:"SOUND_BELL" envDefault:"true"`
	AppName        string `env:"DESKTOP_APP_NAME" envDefault:"socialkit"`
}
