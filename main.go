package main

import (
	"grimoire-be/internal/api/http"
	"grimoire-be/internal/config"
	"grimoire-be/internal/logger"
	"grimoire-be/internal/service"
	"grimoire-be/internal/state"

	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)
	defer zap.L().Sync()

	sessionSvc := service.NewSessionService(cfg.SessionTTL, cfg.CleanupInterval)
	defer sessionSvc.Close()

	// 组装应用状态
	appState := state.NewAppState(
		cfg,
		sessionSvc,
	)

	// 启动服务器
	if err := http.RunServer(appState); err != nil {
		zap.L().Error("服务器退出", zap.Error(err))
	}
}
