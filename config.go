package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"git.fiblab.net/sim/transit/router"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ENV_MONGO_URI = "TRANSIT_MONGO_URI"
	ENV_LOG_LEVEL = "TRANSIT_LOG_LEVEL"
)

// AppConfig 配置文件内容，优先级：默认值 < 配置文件 < 环境变量 < 命令行参数
type AppConfig struct {
	Server  ServerConfig    `yaml:"server"`
	Log     LogConfig       `yaml:"log"`
	Mongo   MongoConfig     `yaml:"mongo"`
	Cache   CacheConfig     `yaml:"cache"`
	Routing router.Settings `yaml:"routing"` // 输入文档未给出routing_settings时使用
}

type ServerConfig struct {
	Listen      string   `yaml:"listen" validate:"required,hostname_port"`
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error fatal panic"`
}

type MongoConfig struct {
	URI string `yaml:"uri" validate:"omitempty,uri"`
}

type CacheConfig struct {
	PathTTL time.Duration `yaml:"path_ttl" validate:"gte=0"` // 0表示不缓存
}

func defaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Listen:      "localhost:52101",
			CORSOrigins: []string{"*"},
		},
		Log:     LogConfig{Level: "info"},
		Cache:   CacheConfig{PathTTL: 10 * time.Minute},
		Routing: router.Settings{BusWaitTime: 6, BusVelocity: 40},
	}
}

// LoadConfig 读取配置文件（path为空时仅使用默认值）并叠加环境变量
func LoadConfig(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	// .env不存在时忽略
	_ = godotenv.Load()
	if uri := os.Getenv(ENV_MONGO_URI); uri != "" {
		cfg.Mongo.URI = uri
	}
	if level := os.Getenv(ENV_LOG_LEVEL); level != "" {
		cfg.Log.Level = level
	}
	return &cfg, nil
}

// Validate 检查配置合法性，需在命令行参数覆盖之后调用
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// applyFlags 仅用显式设置的命令行参数覆盖配置
func (c *AppConfig) applyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			c.Server.Listen = f.Value.String()
		case "log-level":
			c.Log.Level = f.Value.String()
		case "mongo_uri":
			c.Mongo.URI = f.Value.String()
		case "cache.path_ttl":
			if d, err := time.ParseDuration(f.Value.String()); err == nil {
				c.Cache.PathTTL = d
			}
		}
	})
}
