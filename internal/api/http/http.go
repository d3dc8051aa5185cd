package http

import (
	"fmt"

	"grimoire-be/internal/api/http/websocket"
	"grimoire-be/internal/state"

	"github.com/kataras/iris/v12"
)

// NewApp 注册所有路由
func NewApp(appState *state.AppState) *iris.Application {
	app := iris.Default()

	if appState.Cfg.StaticDir != "" {
		app.HandleDir(
			"/",
			iris.Dir(appState.Cfg.StaticDir),
			iris.DirOptions{
				IndexName: "index.html",
				SPA:       true,
				Compress:  true,
			},
		)
	}

	api := app.Party("/api/v1")

	api.Get("/presets", ListPresets(appState))

	api.Post("/sessions", CreateSession(appState))

	session := api.Party("/sessions/{id:string}")
	{
		session.Get("/roles", ListRoles(appState))
		session.Put("/roles/excluded", SetExcluded(appState))

		session.Post("/setup", SetupGame(appState))
		session.Get("/roster", GetRoster(appState))

		session.Post("/seats/{seat:int}/death", ToggleDeath(appState))
		session.Post("/seats/{seat:int}/poison", TogglePoison(appState))
		session.Post("/seats/{seat:int}/reveal", RevealSeat(appState))
	}

	api.Get("/ws/sessions/{id:string}", websocket.JoinSession(appState))

	return app
}

func RunServer(appState *state.AppState) error {
	app := NewApp(appState)

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	return app.Listen(addr)
}
