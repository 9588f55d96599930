package routes

import (
	"fmt"
	"net/http"
)

const (
	contentTypeHeader = "Content-Type"
	textPlainUTF8     = "text/plain; charset=utf-8"
)

// NotFoundBody 是兜底处理器的固定响应体。
const NotFoundBody = "404"

// Text 构造 200 纯文本响应。
func Text(body string) Response {
	return Response{
		Status:  http.StatusOK,
		Body:    []byte(body),
		Headers: map[string]string{contentTypeHeader: textPlainUTF8},
	}
}

// NotFound 构造兜底 404 响应。
func NotFound() Response {
	return Response{
		Status:  http.StatusNotFound,
		Body:    []byte(NotFoundBody),
		Headers: map[string]string{contentTypeHeader: textPlainUTF8},
	}
}

func static(body string) Handler {
	return func() (Response, error) {
		return Text(body), nil
	}
}

// Root 对应 GET /。
func Root() Route {
	return Route{Method: http.MethodGet, Path: "/", Handler: static("Hello, World!")}
}

// GetFoo 对应 GET /foo。
func GetFoo() Route {
	return Route{Method: http.MethodGet, Path: "/foo", Handler: static("Hi from `GET /foo`")}
}

// PostFoo 对应 POST /foo。
func PostFoo() Route {
	return Route{Method: http.MethodPost, Path: "/foo", Handler: static("Hi from `POST /foo`")}
}

// Default 构建服务对外暴露的路由表，注册完成后即冻结。
func Default() (*Table, error) {
	return Build(Root(), GetFoo(), PostFoo())
}

// Build 按顺序注册给定路由并冻结路由表，任一注册失败即返回错误。
func Build(defs ...Route) (*Table, error) {
	table := NewTable()
	for _, def := range defs {
		if err := table.Add(def); err != nil {
			return nil, fmt.Errorf("构建路由表失败: %w", err)
		}
	}
	table.Freeze()
	return table, nil
}
