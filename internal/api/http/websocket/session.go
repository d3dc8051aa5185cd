package websocket

import (
	"encoding/json"
	"time"

	"grimoire-be/internal/service/dto"
	"grimoire-be/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// JoinSession 说书人的实时通道：接收操作请求，推送名单变化
func JoinSession(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		sessionID := ctx.Params().Get("id")

		// 先订阅会话，会话不存在时不升级连接
		subID, pushCh, err := appState.SessionSvc.Subscribe(sessionID)
		if err != nil {
			zap.L().Warn(
				"订阅会话失败",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
			ctx.StopWithJSON(iris.StatusNotFound, iris.Map{
				"error": err.Error(),
			})
			return
		}

		defer appState.SessionSvc.Unsubscribe(sessionID, subID)

		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			return
		}

		defer conn.Close()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(heartbeatHandler(conn))

		clientIP := ctx.RemoteAddr()

		zap.L().Info(
			"说书人连接会话",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sessionID),
			zap.String("subscriber_id", subID),
		)

		// 只回复给当前连接的响应，由写协程统一发送
		replyCh := make(chan dto.ResponseWrapper, 16)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		go writeLoop(conn, clientIP, pushCh, replyCh, writeDoneCh)

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			var wrapper dto.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Error(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				sendReply(replyCh, dto.WrapErrResponse("无效的请求格式"))
				continue
			}

			if resp := appState.SessionSvc.HandleAction(sessionID, wrapper); resp != nil {
				sendReply(replyCh, *resp)
			}
		}

		zap.L().Info(
			"WebSocket连接处理完成",
			zap.String("client_ip", clientIP),
			zap.String("session_id", sessionID),
		)
	}
}

func sendReply(replyCh chan<- dto.ResponseWrapper, resp dto.ResponseWrapper) {
	select {
	case replyCh <- resp:
	default:
		zap.L().Warn("发送单播响应失败：响应通道已满")
	}
}

func writeLoop(
	conn *websocket.Conn,
	clientIP string,
	pushCh <-chan dto.ResponseWrapper,
	replyCh <-chan dto.ResponseWrapper,
	doneCh <-chan struct{},
) {
	ticker := time.NewTicker(HEARTBEAT_INTERVAL)
	defer ticker.Stop()

	write := func(resp dto.ResponseWrapper) bool {
		conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		if err := conn.WriteJSON(resp); err != nil {
			zap.L().Error(
				"发送消息失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return false
		}

		zap.L().Debug(
			"发送消息",
			zap.String("client_ip", clientIP),
			zap.String("response_type", resp.RespType),
		)
		return true
	}

	for {
		select {
		case <-doneCh:
			zap.L().Info(
				"WebSocket写入协程退出",
				zap.String("client_ip", clientIP),
			)
			return

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zap.L().Error(
					"发送心跳失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}

		case resp, ok := <-pushCh:
			// 会话被清理或取消订阅时通道关闭
			if !ok {
				zap.L().Info(
					"推送通道已关闭，关闭连接",
					zap.String("client_ip", clientIP),
				)
				conn.Close()
				return
			}

			if !write(resp) {
				return
			}

		case resp := <-replyCh:
			if !write(resp) {
				return
			}
		}
	}
}
