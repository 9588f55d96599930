package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setServiceEnv 设置三项必填环境变量，测试结束后自动还原。
func setServiceEnv(t *testing.T, addr string) {
	t.Helper()
	t.Setenv("SERVICE_ADDR", addr)
	t.Setenv("BACKEND_URL", "http://localhost:8080")
	t.Setenv("FRONTEND_URL", "http://localhost:5173")
	t.Setenv("LOG_LEVEL", "info")
}

// missingEnvFile 返回一个不存在的 env 文件路径，避免读取工作目录中的 .env。
func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(file, []byte(strings.TrimSpace(content)), 0o600); err != nil {
		t.Fatalf("写入 env 文件失败: %v", err)
	}
	return file
}

// useBufferWriters 在测试期间把 stdOut/stdErr 换成内存缓冲区，便于断言 CLI 输出。
func useBufferWriters(t *testing.T) {
	t.Helper()

	prevOut, prevErr := stdOut, stdErr
	stdOut, stdErr = &bytes.Buffer{}, &bytes.Buffer{}

	t.Cleanup(func() {
		stdOut, stdErr = prevOut, prevErr
	})
}

func stdOutBuffer() *bytes.Buffer {
	buf, _ := stdOut.(*bytes.Buffer)
	return buf
}

func stdErrBuffer() *bytes.Buffer {
	buf, _ := stdErr.(*bytes.Buffer)
	return buf
}
