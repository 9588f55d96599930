package routes

import "github.com/gofiber/fiber/v3"

// DiagnosticsPath 是路由表诊断接口，仅在 DIAGNOSTICS_ENABLED=true 时挂载。
const DiagnosticsPath = "/-/routes"

type routePayload struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type tablePayload struct {
	Frozen bool           `json:"frozen"`
	Routes []routePayload `json:"routes"`
}

// DiagnosticsHandler 以 JSON 输出当前路由表，供运维确认实际暴露的接口。
func DiagnosticsHandler(table *Table) fiber.Handler {
	return func(c fiber.Ctx) error {
		if table == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "route_table_missing"})
		}
		return c.JSON(encodeTable(table))
	}
}

func encodeTable(table *Table) tablePayload {
	list := table.List()
	payload := tablePayload{
		Frozen: table.Frozen(),
		Routes: make([]routePayload, 0, len(list)),
	}
	for _, route := range list {
		payload.Routes = append(payload.Routes, routePayload{Method: route.Method, Path: route.Path})
	}
	return payload
}
