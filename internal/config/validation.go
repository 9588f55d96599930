package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate 校验必填项与格式，并将 Origin 规范化；失败时服务不得绑定监听端口。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	if err := validateServiceAddr(c.ServiceAddr); err != nil {
		return err
	}

	backend, err := normalizeOrigin(EnvBackendURL, c.BackendURL)
	if err != nil {
		return err
	}
	frontend, err := normalizeOrigin(EnvFrontendURL, c.FrontendURL)
	if err != nil {
		return err
	}
	c.BackendURL = backend
	c.FrontendURL = frontend

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return newFieldError("LOG_LEVEL", fmt.Sprintf("无法解析日志级别 %q", c.LogLevel))
	}
	if c.LogMaxSize < 0 {
		return newFieldError("LOG_MAX_SIZE", "不能为负数")
	}
	if c.LogMaxBackups < 0 {
		return newFieldError("LOG_MAX_BACKUPS", "不能为负数")
	}
	if c.ReadTimeout < 0 {
		return newFieldError("READ_TIMEOUT", "不能为负数")
	}
	if c.WriteTimeout < 0 {
		return newFieldError("WRITE_TIMEOUT", "不能为负数")
	}
	if c.IdleTimeout < 0 {
		return newFieldError("IDLE_TIMEOUT", "不能为负数")
	}
	return nil
}

func validateServiceAddr(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return newFieldError(EnvServiceAddr, "必须设置")
	}
	_, port, err := net.SplitHostPort(raw)
	if err != nil {
		return newFieldError(EnvServiceAddr, fmt.Sprintf("不是合法的 host:port: %v", err))
	}
	num, err := strconv.Atoi(port)
	if err != nil || num < 0 || num > 65535 {
		return newFieldError(EnvServiceAddr, fmt.Sprintf("端口必须在 0-65535: %s", port))
	}
	return nil
}

// normalizeOrigin 只接受 http/https 的 scheme://host[:port]，输出小写且不带结尾斜杠。
func normalizeOrigin(field, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", newFieldError(field, "必须设置")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", newFieldError(field, fmt.Sprintf("不是合法的 URL: %v", err))
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", newFieldError(field, fmt.Sprintf("仅支持 http/https: %s", raw))
	}
	if parsed.Host == "" {
		return "", newFieldError(field, fmt.Sprintf("缺少 Host: %s", raw))
	}
	if parsed.User != nil {
		return "", newFieldError(field, "Origin 不允许包含用户信息")
	}
	if parsed.Path != "" && parsed.Path != "/" {
		return "", newFieldError(field, "Origin 不允许包含路径")
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return "", newFieldError(field, "Origin 不允许包含查询串或片段")
	}
	return scheme + "://" + strings.ToLower(parsed.Host), nil
}
