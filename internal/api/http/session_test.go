package http

import (
	"errors"
	"fmt"
	"testing"

	"grimoire-be/internal/service"
	"grimoire-be/internal/service/game"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	insufficient := fmt.Errorf("创建游戏失败: %w", &game.InsufficientRolesError{
		Type:      game.TYPE_MINION,
		Requested: 5,
		Available: 4,
	})

	cases := []struct {
		err  error
		want int
	}{
		{service.ErrSessionNotFound, iris.StatusNotFound},
		{service.ErrSeatNotFound, iris.StatusNotFound},
		{insufficient, iris.StatusUnprocessableEntity},
		{service.ErrNoRoster, iris.StatusConflict},
		{game.ErrSeatAlreadyViewed, iris.StatusConflict},
		{game.ErrInvalidSortMode, iris.StatusBadRequest},
		{errors.New("other"), iris.StatusBadRequest},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Error())
	}
}
