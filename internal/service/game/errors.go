package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCounts   = errors.New("角色数量不能为负数")
	ErrUnknownRole     = errors.New("角色不存在")
	ErrInvalidSortMode = errors.New("未知的排序方式")
)

// InsufficientRolesError 排除后可用角色不足以满足请求的数量
type InsufficientRolesError struct {
	Type      RoleType
	Requested int
	Available int
}

func (e *InsufficientRolesError) Error() string {
	if e.Type == TYPE_DEMON {
		return "恶魔角色已被排除，无法创建游戏"
	}

	return fmt.Sprintf(
		"%s角色不足：需要 %d 个，可用 %d 个",
		e.Type.Label(),
		e.Requested,
		e.Available,
	)
}
