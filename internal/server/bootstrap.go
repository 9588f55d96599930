package server

import (
	"fmt"
	"net"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Bind 在 addr 上创建 TCP 监听；地址非法或被占用时直接返回错误，由调用方终止进程。
func Bind(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("监听 %s 失败: %w", addr, err)
	}
	return ln, nil
}

// Serve 在已绑定的 listener 上运行 accept 循环，直到进程被外部终止或 listener 关闭。
func Serve(app *fiber.App, ln net.Listener, logger *logrus.Logger) error {
	logger.WithFields(logrus.Fields{
		"action": "listen",
		"addr":   ln.Addr().String(),
	}).Debugf("listening on http://%s", ln.Addr().String())

	return app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
}
