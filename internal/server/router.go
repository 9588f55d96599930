package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/utils/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/hello-hub/internal/server/routes"
)

// AppOptions controls how the Fiber application should be assembled.
type AppOptions struct {
	Logger *logrus.Logger
	// Table 必须已冻结；NewApp 不会再向其中注册路由。
	Table *routes.Table
	// AllowedOrigins 是 CORS 白名单（已规范化的 scheme://host[:port]）。
	AllowedOrigins []string
	// Diagnostics 为 true 时挂载 GET /-/routes。
	Diagnostics bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

const (
	contextKeyRequestID = "_hellohub_request_id"
	headerRequestID     = "X-Request-ID"
)

// NewApp builds a Fiber application with the CORS → tracing middleware chain,
// the route table dispatcher and a catch-all 404.
func NewApp(opts AppOptions) (*fiber.App, error) {
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if opts.Table == nil {
		return nil, errors.New("route table is required")
	}
	if !opts.Table.Frozen() {
		return nil, errors.New("route table must be frozen before serving")
	}
	if len(opts.AllowedOrigins) == 0 {
		return nil, errors.New("at least one allowed origin is required")
	}

	app := fiber.New(fiber.Config{
		AppName:       "hello-hub",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   opts.ReadTimeout,
		WriteTimeout:  opts.WriteTimeout,
		IdleTimeout:   opts.IdleTimeout,
		ErrorHandler:  errorHandler(opts.Logger),
	})

	app.Use(requestContextMiddleware())
	app.Use(corsMiddleware(opts.AllowedOrigins))
	app.Use(traceMiddleware(opts.Logger))
	app.Use(recover.New())

	if opts.Diagnostics {
		app.Get(routes.DiagnosticsPath, routes.DiagnosticsHandler(opts.Table))
	}

	app.Use(dispatchHandler(opts.Table))

	return app, nil
}

// requestContextMiddleware 生成请求 ID，同时作为追踪 span 的标识。
func requestContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		reqID := uuid.NewString()
		c.Locals(contextKeyRequestID, reqID)
		c.Set(headerRequestID, reqID)
		return c.Next()
	}
}

// dispatchHandler 在路由表中精确查找 (method, path)，未命中时返回固定 404。
func dispatchHandler(table *routes.Table) fiber.Handler {
	return func(c fiber.Ctx) error {
		resp, err := table.Dispatch(c.Method(), c.Path())
		if errors.Is(err, routes.ErrNotFound) {
			return writeResponse(c, routes.NotFound())
		}
		if err != nil {
			return err
		}
		return writeResponse(c, resp)
	}
}

func writeResponse(c fiber.Ctx, resp routes.Response) error {
	for key, value := range resp.Headers {
		c.Set(key, value)
	}
	return c.Status(resp.Status).Send(resp.Body)
}

// errorHandler 将处理器错误转换为通用错误响应，不向客户端泄露错误详情。
func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}

		logger.WithFields(logrus.Fields{
			"action": "handler_error",
			"span":   RequestID(c),
			"method": utils.CopyString(c.Method()),
			"path":   utils.CopyString(c.Path()),
			"status": code,
		}).WithError(err).Error("request failed")

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(code).SendString(http.StatusText(code))
	}
}

// RequestID returns the request identifier stored by the request context middleware.
func RequestID(c fiber.Ctx) string {
	if value := c.Locals(contextKeyRequestID); value != nil {
		if reqID, ok := value.(string); ok {
			return reqID
		}
	}
	return ""
}
