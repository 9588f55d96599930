package routes

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotFound 表示 (method, path) 没有命中任何路由，调用方需映射为 404。
	ErrNotFound = errors.New("route not found")
	// ErrDuplicateRoute 表示同一 (method, path) 已注册；重复注册一律拒绝。
	ErrDuplicateRoute = errors.New("route already registered")
	// ErrTableFrozen 表示路由表已在启动完成后冻结，不再接受注册。
	ErrTableFrozen = errors.New("route table is frozen")
)

// Response 是处理器产出的响应，Headers 中的值会原样写入响应头。
type Response struct {
	Status  int
	Body    []byte
	Headers map[string]string
}

// Handler 生成一个响应；返回 error 时由中间件链统一转换为通用错误响应。
type Handler func() (Response, error)

// Route 将 (Method, Path) 绑定到处理器。
type Route struct {
	Method  string
	Path    string
	Handler Handler
}

type routeKey struct {
	method string
	path   string
}

// Table 提供精确匹配的 (method, path) → Handler 查询。
// 启动阶段注册完成后调用 Freeze，之后只读，可被所有连接并发共享。
type Table struct {
	mu     sync.RWMutex
	routes map[routeKey]Route
	frozen bool
}

// NewTable 返回一个可注册的空路由表。
func NewTable() *Table {
	return &Table{routes: make(map[routeKey]Route)}
}

// Register 添加路由；表已冻结、参数非法或 (method, path) 重复时返回错误。
func (t *Table) Register(method, path string, handler Handler) error {
	if strings.TrimSpace(method) == "" {
		return fmt.Errorf("route method is required")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("route path must start with '/': %q", path)
	}
	if handler == nil {
		return fmt.Errorf("route %s %s: handler is nil", method, path)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("register %s %s: %w", method, path, ErrTableFrozen)
	}
	key := routeKey{method: method, path: path}
	if _, exists := t.routes[key]; exists {
		return fmt.Errorf("register %s %s: %w", method, path, ErrDuplicateRoute)
	}
	t.routes[key] = Route{Method: method, Path: path, Handler: handler}
	return nil
}

// Add 注册一条已构造好的 Route。
func (t *Table) Add(route Route) error {
	return t.Register(route.Method, route.Path, route.Handler)
}

// MustRegister 在注册失败时 panic，适合启动阶段的固定路由。
func (t *Table) MustRegister(method, path string, handler Handler) {
	if err := t.Register(method, path, handler); err != nil {
		panic(err)
	}
}

// Freeze 禁止后续注册，可重复调用。
func (t *Table) Freeze() {
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

// Frozen 报告路由表是否已冻结。
func (t *Table) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}

// Lookup 精确匹配 method 与 path（区分大小写，结尾斜杠有意义）。
func (t *Table) Lookup(method, path string) (Route, bool) {
	if t == nil {
		return Route{}, false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	route, ok := t.routes[routeKey{method: method, path: path}]
	return route, ok
}

// Dispatch 查找并执行处理器；未命中时返回 ErrNotFound。
// 处理器返回的 Status 为 0 时按 200 处理。
func (t *Table) Dispatch(method, path string) (Response, error) {
	route, ok := t.Lookup(method, path)
	if !ok {
		return Response{}, ErrNotFound
	}
	resp, err := route.Handler()
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.Status == 0 {
		resp.Status = http.StatusOK
	}
	return resp, nil
}

// List 返回按 path、method 排序的路由副本，用于诊断输出。
func (t *Table) List() []Route {
	if t == nil {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.routes) == 0 {
		return nil
	}
	result := make([]Route, 0, len(t.routes))
	for _, route := range t.routes {
		result = append(result, route)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].Method < result[j].Method
	})
	return result
}

// Len 返回已注册路由数量。
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}
