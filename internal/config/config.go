package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string `validate:"omitempty,oneof=dev prod test"`
		Timezone string
	} `mapstructure:"app"`

	Storage struct {
		Driver      string `validate:"oneof=memory sqlite postgres"`
		SQLitePath  string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
		PostgresDSN string `mapstructure:"postgres_dsn" validate:"required_if=Driver postgres"`
	} `mapstructure:"storage"`

	HTTP struct {
		Addr string
		// Exports serves /snapshot, /journal and /summary. They carry no auth.
		Exports bool
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		TimeoutSec  int   `mapstructure:"timeout_sec" validate:"gte=0"`
	} `mapstructure:"telegram"`

	Transfer struct {
		Driver string `validate:"oneof=fs s3"`
		Dir    string
		S3     struct {
			Bucket    string
			Region    string
			Endpoint  string
			PathStyle bool `mapstructure:"path_style"`
		} `mapstructure:"s3"`
	} `mapstructure:"transfer"`
}

// Location resolves App.Timezone, falling back to the local zone.
func (c Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Europe/Berlin")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "hornet.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("http.exports", false)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_chat_id", 0)
	v.SetDefault("telegram.timeout_sec", 30)
	v.SetDefault("transfer.driver", "fs")
	v.SetDefault("transfer.dir", "transfer")
	v.SetDefault("transfer.s3.bucket", "")
	v.SetDefault("transfer.s3.region", "")
	v.SetDefault("transfer.s3.endpoint", "")
	v.SetDefault("transfer.s3.path_style", false)
}

// Load reads an optional .env file, then the YAML file at path (may be empty),
// then HORNET_* environment overrides such as HORNET_STORAGE_DRIVER.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("HORNET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, fmt.Errorf("read config: %w", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if c.Transfer.Driver == "s3" && c.Transfer.S3.Bucket == "" {
		return c, fmt.Errorf("invalid config: transfer.s3.bucket required for s3 driver")
	}
	if err := validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
