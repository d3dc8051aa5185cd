package service

import "errors"

var (
	ErrSessionNotFound = errors.New("会话不存在")
	ErrNoRoster        = errors.New("当前会话还没有创建游戏")
	ErrSeatNotFound    = errors.New("座位号不存在")
	ErrInvalidPreset   = errors.New("没有对应人数的预设配置")
	ErrInvalidRequest  = errors.New("无法处理请求：不支持的请求类型或请求数据无效")
)
