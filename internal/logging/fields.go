package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action 基础字段，便于不同入口复用。
func BaseFields(action string) logrus.Fields {
	return logrus.Fields{
		"action": action,
	}
}

// RequestFields 提供 span/method/path 字段，同一请求的追踪日志靠 span 关联。
func RequestFields(span, method, path string) logrus.Fields {
	return logrus.Fields{
		"action": "trace",
		"span":   span,
		"method": method,
		"path":   path,
	}
}
