package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if intVal, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(intVal) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// Config 汇总进程启动时从环境变量读取的全部参数，Load 返回后不再修改。
type Config struct {
	// ServiceAddr 是监听地址，形如 127.0.0.1:3000 或 :3000。
	ServiceAddr string `mapstructure:"SERVICE_ADDR"`
	// BackendURL/FrontendURL 是允许跨域访问的两个 Origin，Load 会将其规范化为 scheme://host[:port]。
	BackendURL  string `mapstructure:"BACKEND_URL"`
	FrontendURL string `mapstructure:"FRONTEND_URL"`

	LogLevel      string `mapstructure:"LOG_LEVEL"`
	LogFilePath   string `mapstructure:"LOG_FILE_PATH"`
	LogMaxSize    int    `mapstructure:"LOG_MAX_SIZE"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogCompress   bool   `mapstructure:"LOG_COMPRESS"`

	// 0 表示沿用 Fiber/fasthttp 的默认行为（不限时）。
	ReadTimeout  Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout Duration `mapstructure:"WRITE_TIMEOUT"`
	IdleTimeout  Duration `mapstructure:"IDLE_TIMEOUT"`

	DiagnosticsEnabled bool `mapstructure:"DIAGNOSTICS_ENABLED"`
}

// AllowedOrigins 返回 CORS 白名单，顺序固定为 backend、frontend；两者相同时去重。
func (c *Config) AllowedOrigins() []string {
	if c == nil {
		return nil
	}
	origins := []string{c.BackendURL}
	if c.FrontendURL != c.BackendURL {
		origins = append(origins, c.FrontendURL)
	}
	return origins
}
