package http

import (
	"errors"

	"grimoire-be/internal/service"
	"grimoire-be/internal/service/dto"
	"grimoire-be/internal/service/game"
	"grimoire-be/internal/state"

	"github.com/kataras/iris/v12"
)

// statusFor 将业务错误映射为 HTTP 状态码
func statusFor(err error) int {
	var insufficient *game.InsufficientRolesError

	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrSeatNotFound):
		return iris.StatusNotFound
	case errors.As(err, &insufficient):
		return iris.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoRoster), errors.Is(err, game.ErrSeatAlreadyViewed):
		return iris.StatusConflict
	default:
		return iris.StatusBadRequest
	}
}

func writeError(ctx iris.Context, err error) {
	ctx.StatusCode(statusFor(err))
	ctx.JSON(iris.Map{
		"error": err.Error(),
	})
}

func seatParam(ctx iris.Context) (int, bool) {
	seat, err := ctx.Params().GetInt("seat")
	if err != nil {
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"error": "座位号无效",
		})
		return 0, false
	}

	return seat, true
}

func CreateSession(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(appState.SessionSvc.CreateSession())
	}
}

func ListPresets(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(appState.SessionSvc.Presets())
	}
}

func SetupGame(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.SetupRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.SessionSvc.Setup(ctx.Params().Get("id"), req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func GetRoster(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		resp, err := appState.SessionSvc.Roster(
			ctx.Params().Get("id"),
			ctx.URLParamDefault("sort", ""),
		)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func ToggleDeath(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		seat, ok := seatParam(ctx)
		if !ok {
			return
		}

		resp, err := appState.SessionSvc.ToggleDeath(ctx.Params().Get("id"), seat)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func TogglePoison(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		seat, ok := seatParam(ctx)
		if !ok {
			return
		}

		resp, err := appState.SessionSvc.TogglePoison(ctx.Params().Get("id"), seat)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func RevealSeat(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		seat, ok := seatParam(ctx)
		if !ok {
			return
		}

		resp, err := appState.SessionSvc.RevealSeat(ctx.Params().Get("id"), seat)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func ListRoles(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		resp, err := appState.SessionSvc.Roles(ctx.Params().Get("id"))
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}

func SetExcluded(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.SetExcludedRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.JSON(iris.Map{
				"error": "请求参数无效",
			})
			return
		}

		resp, err := appState.SessionSvc.SetExcluded(ctx.Params().Get("id"), req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(resp)
	}
}
