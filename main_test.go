package main

import (
	"net"
	"os"
	"strings"
	"testing"
)

func TestParseCLIFlagsPriority(t *testing.T) {
	t.Setenv("HELLO_HUB_ENV_FILE", "/tmp/env.env")

	opts, err := parseCLIFlags([]string{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.envFile != "/tmp/env.env" {
		t.Fatalf("应优先使用环境变量，得到 %s", opts.envFile)
	}

	opts, err = parseCLIFlags([]string{"--env-file", "/tmp/flag.env"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.envFile != "/tmp/flag.env" {
		t.Fatalf("flag 应高于环境变量，得到 %s", opts.envFile)
	}
}

func TestParseCLIFlagsDefaultsToDotEnv(t *testing.T) {
	t.Setenv("HELLO_HUB_ENV_FILE", "")

	opts, err := parseCLIFlags(nil)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if opts.envFile != ".env" {
		t.Fatalf("默认应读取 .env，得到 %s", opts.envFile)
	}
}

func TestParseCLIFlagsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseCLIFlags([]string{"--bogus"}); err == nil {
		t.Fatalf("未知参数应返回错误")
	}
}

func TestRunFailsWhenRequiredEnvMissing(t *testing.T) {
	for _, key := range []string{"SERVICE_ADDR", "BACKEND_URL", "FRONTEND_URL"} {
		t.Run(key, func(t *testing.T) {
			useBufferWriters(t)
			setServiceEnv(t, "127.0.0.1:0")
			t.Setenv(key, "")

			code := run(cliOptions{envFile: missingEnvFile(t)})
			if code == 0 {
				t.Fatalf("缺少 %s 应返回非零退出码", key)
			}
			if !strings.Contains(stdErrBuffer().String(), key) {
				t.Fatalf("错误输出应指明 %s，得到 %s", key, stdErrBuffer().String())
			}
		})
	}
}

func TestRunFailsWhenAddressInUse(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("占用端口失败: %v", err)
	}
	defer occupied.Close()

	useBufferWriters(t)
	setServiceEnv(t, occupied.Addr().String())

	code := run(cliOptions{envFile: missingEnvFile(t)})
	if code == 0 {
		t.Fatalf("端口被占用时应返回非零退出码")
	}
	if !strings.Contains(stdErrBuffer().String(), "HTTP 服务启动失败") {
		t.Fatalf("错误输出应提示监听失败，得到 %s", stdErrBuffer().String())
	}
}

func TestRunCheckConfigSuccess(t *testing.T) {
	useBufferWriters(t)
	setServiceEnv(t, "127.0.0.1:3000")

	code := run(cliOptions{envFile: missingEnvFile(t), checkOnly: true})
	if code != 0 {
		t.Fatalf("期望退出码 0，得到 %d (stderr=%s)", code, stdErrBuffer().String())
	}
}

func TestRunCheckConfigFromEnvFile(t *testing.T) {
	useBufferWriters(t)
	setServiceEnv(t, "")
	if err := os.Unsetenv("SERVICE_ADDR"); err != nil {
		t.Fatalf("unset 失败: %v", err)
	}
	envFile := writeEnvFile(t, `
SERVICE_ADDR=127.0.0.1:3000
`)

	code := run(cliOptions{envFile: envFile, checkOnly: true})
	if code != 0 {
		t.Fatalf("应从 env 文件补齐 SERVICE_ADDR，得到退出码 %d (stderr=%s)", code, stdErrBuffer().String())
	}
}

func TestRunVersionOutput(t *testing.T) {
	useBufferWriters(t)
	code := run(cliOptions{showVersion: true})
	if code != 0 {
		t.Fatalf("version 模式应成功退出，得到 %d", code)
	}
	if !strings.Contains(stdOutBuffer().String(), "hello-hub") {
		t.Fatalf("version 输出应包含 hello-hub 标识")
	}
}
