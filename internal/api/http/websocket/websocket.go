package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// NOTE: 说书人工具只在局域网使用，允许所有来源
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

const (
	// 心跳间隔
	HEARTBEAT_INTERVAL = 30 * time.Second
	// 心跳超时时间，超过该时间未收到 pong 视为断线
	HEARTBEAT_TIMEOUT = 45 * time.Second
)

// heartbeatHandler 收到 pong 后延长读超时
func heartbeatHandler(conn *websocket.Conn) func(string) error {
	return func(string) error {
		zap.L().Debug("收到心跳响应", zap.String("remote_addr", conn.RemoteAddr().String()))
		return conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
	}
}
