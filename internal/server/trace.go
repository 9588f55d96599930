package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/utils/v2"
	"github.com/sirupsen/logrus"

	"github.com/any-hub/hello-hub/internal/logging"
)

// traceMiddleware 以 debug 级别记录请求生命周期：开始、响应耗时、响应体字节数、
// 流结束耗时，以及失败（处理器错误、panic 或 5xx）。只观察，不修改响应内容。
func traceMiddleware(logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		// c.Method()/c.Path() 指向 fasthttp 的复用缓冲区，写入日志字段前必须复制
		method := utils.CopyString(c.Method())
		path := utils.CopyString(c.Path())
		entry := logger.WithFields(logging.RequestFields(RequestID(c), method, path))
		entry.Debugf("started %s %s", method, path)

		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		latency := time.Since(start)
		status := c.Response().StatusCode()
		if chainErr != nil || status >= fiber.StatusInternalServerError {
			failed := entry.WithFields(logrus.Fields{
				"latency": latency.String(),
				"status":  status,
				"result":  "failure",
			})
			if chainErr != nil {
				failed = failed.WithError(chainErr)
			}
			failed.Debug("something went wrong")
			return nil
		}

		entry.WithFields(logrus.Fields{
			"latency": latency.String(),
			"status":  status,
			"result":  "success",
		}).Debugf("response generated in %s", latency)

		if !c.Response().IsBodyStream() {
			if size := len(c.Response().Body()); size > 0 {
				entry.WithField("bytes", size).Debugf("sending %d bytes", size)
			}
		}

		duration := time.Since(start)
		entry.WithField("duration", duration.String()).Debugf("stream closed after %s", duration)
		return nil
	}
}
