package server

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

var corsAllowedMethods = []string{
	fiber.MethodGet,
	fiber.MethodPost,
	fiber.MethodOptions,
}

// corsMiddleware 仅对白名单 Origin 回写 CORS 头并允许携带凭证；
// 带 Access-Control-Request-Method 的 OPTIONS 预检请求在此直接返回 204，不会进入路由分发。
func corsMiddleware(origins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:     append([]string(nil), origins...),
		AllowMethods:     corsAllowedMethods,
		AllowCredentials: true,
		ExposeHeaders:    []string{headerRequestID},
	})
}
