package config

import (
	"os"
	"path/filepath"
	"testing"
)

// setRequiredEnv 设置三项必填环境变量，测试结束后自动还原。
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvServiceAddr, "127.0.0.1:3000")
	t.Setenv(EnvBackendURL, "http://localhost:8080")
	t.Setenv(EnvFrontendURL, "http://localhost:5173")
}

// unsetEnv 彻底移除变量（而不仅是置空），godotenv 只会填充未定义的变量。
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s 失败: %v", key, err)
	}
}

func writeTempEnv(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("写入临时 env 文件失败: %v", err)
	}
	return path
}
