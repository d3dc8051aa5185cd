package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	// 会话超过该时长未操作会被清理
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// 前端静态文件目录，为空时不提供静态文件
	StaticDir string `mapstructure:"static_dir"`
}

var cfg *AppConfig

func GetConfig() *AppConfig {
	if cfg == nil {
		cfg = InitConfig()
	}

	return cfg
}

func InitConfig() *AppConfig {
	config, err := LoadConfig(".")
	if err != nil {
		panic(err)
	}

	cfg = config
	return cfg
}

// LoadConfig 读取 app_config.json（可选），环境变量 GRIMOIRE_* 优先
func LoadConfig(paths ...string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("session_ttl", "6h")
	v.SetDefault("cleanup_interval", "1m")
	v.SetDefault("static_dir", "")

	v.SetConfigName("app_config")
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("GRIMOIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("加载配置失败: %w", err)
		}
	}

	var config AppConfig

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if config.SessionTTL <= 0 || config.CleanupInterval <= 0 {
		return nil, fmt.Errorf("解析配置失败: session_ttl 和 cleanup_interval 必须为正数")
	}

	return &config, nil
}
