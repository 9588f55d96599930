package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/any-hub/hello-hub/internal/config"
	"github.com/any-hub/hello-hub/internal/logging"
	"github.com/any-hub/hello-hub/internal/server"
	"github.com/any-hub/hello-hub/internal/server/routes"
	"github.com/any-hub/hello-hub/internal/version"
)

// cliOptions 汇总 CLI 标志解析后的结果，便于在测试中注入。
type cliOptions struct {
	envFile     string
	checkOnly   bool
	showVersion bool
}

var (
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
)

func main() {
	opts, err := parseCLIFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(stdErr, err.Error())
		os.Exit(2)
	}
	os.Exit(run(opts))
}

// run 根据解析到的 CLI 选项执行业务流程，并返回退出码，方便测试。
// 配置、日志与端口绑定失败都会在开始服务前以非零退出码结束。
func run(opts cliOptions) int {
	if opts.showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		fmt.Fprintf(stdErr, "加载配置失败: %v\n", err)
		return 1
	}

	logger, err := logging.InitLogger(cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "初始化日志失败: %v\n", err)
		return 1
	}

	fields := logging.BaseFields("startup")
	fields["service_addr"] = cfg.ServiceAddr
	fields["allowed_origins"] = cfg.AllowedOrigins()
	fields["version"] = version.Full()

	if opts.checkOnly {
		fields["action"] = "check_config"
		fields["result"] = "ok"
		logger.WithFields(fields).Info("配置校验通过")
		return 0
	}

	// 启动顺序：配置 → 路由表（冻结）→ 中间件链 → 绑定监听 → accept 循环。
	table, err := routes.Default()
	if err != nil {
		fmt.Fprintf(stdErr, "构建路由表失败: %v\n", err)
		return 1
	}

	app, err := server.NewApp(server.AppOptions{
		Logger:         logger,
		Table:          table,
		AllowedOrigins: cfg.AllowedOrigins(),
		Diagnostics:    cfg.DiagnosticsEnabled,
		ReadTimeout:    cfg.ReadTimeout.DurationValue(),
		WriteTimeout:   cfg.WriteTimeout.DurationValue(),
		IdleTimeout:    cfg.IdleTimeout.DurationValue(),
	})
	if err != nil {
		fmt.Fprintf(stdErr, "构建 HTTP 应用失败: %v\n", err)
		return 1
	}

	ln, err := server.Bind(cfg.ServiceAddr)
	if err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务启动失败: %v\n", err)
		return 1
	}

	fields["routes"] = table.Len()
	logger.WithFields(fields).Info("配置加载完成")

	if err := server.Serve(app, ln, logger); err != nil {
		fmt.Fprintf(stdErr, "HTTP 服务异常退出: %v\n", err)
		return 1
	}
	return 0
}

// printVersion 输出注入的版本 + 提交信息。
func printVersion() {
	fmt.Fprintln(stdOut, version.Full())
}

// parseCLIFlags 解析 CLI 参数，并结合环境变量计算最终的 env 文件路径。
func parseCLIFlags(args []string) (cliOptions, error) {
	fs := flag.NewFlagSet("hello-hub", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		envFlag   string
		checkOnly bool
		showVer   bool
	)

	fs.StringVar(&envFlag, "env-file", "", "env 文件路径（默认 ./.env，可被 HELLO_HUB_ENV_FILE 覆盖）")
	fs.BoolVar(&checkOnly, "check-config", false, "仅校验配置后退出")
	fs.BoolVar(&showVer, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("解析参数失败: %w", err)
	}

	path := os.Getenv("HELLO_HUB_ENV_FILE")
	if envFlag != "" {
		path = envFlag
	}
	if path == "" {
		path = ".env"
	}

	return cliOptions{
		envFile:     path,
		checkOnly:   checkOnly,
		showVersion: showVer,
	}, nil
}
