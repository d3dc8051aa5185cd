package dto

import (
	"encoding/json"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_SNAPSHOT      = "Snapshot"
	REQ_SETUP         = "Setup"
	REQ_TOGGLE_DEATH  = "ToggleDeath"
	REQ_TOGGLE_POISON = "TogglePoison"
	REQ_SORT          = "Sort"
	REQ_SET_EXCLUDED  = "SetExcluded"
	REQ_REVEAL_SEAT   = "RevealSeat"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data"`
}

func tryUnwrap[T any](wrapper RequestWrapper, reqType string) *T {
	if wrapper.ReqType != reqType {
		return nil
	}

	var req T

	if len(wrapper.Data) == 0 {
		return &req
	}

	err := json.Unmarshal(wrapper.Data, &req)
	if err != nil {
		zap.L().Error(
			"解析请求数据失败",
			zap.Error(err),
			zap.String("request_type", reqType),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &req
}

func TryUnwrapSetupRequest(wrapper RequestWrapper) *SetupRequest {
	return tryUnwrap[SetupRequest](wrapper, REQ_SETUP)
}

func TryUnwrapToggleDeathRequest(wrapper RequestWrapper) *SeatRequest {
	return tryUnwrap[SeatRequest](wrapper, REQ_TOGGLE_DEATH)
}

func TryUnwrapTogglePoisonRequest(wrapper RequestWrapper) *SeatRequest {
	return tryUnwrap[SeatRequest](wrapper, REQ_TOGGLE_POISON)
}

func TryUnwrapSortRequest(wrapper RequestWrapper) *SortRequest {
	return tryUnwrap[SortRequest](wrapper, REQ_SORT)
}

func TryUnwrapSetExcludedRequest(wrapper RequestWrapper) *SetExcludedRequest {
	return tryUnwrap[SetExcludedRequest](wrapper, REQ_SET_EXCLUDED)
}

func TryUnwrapRevealSeatRequest(wrapper RequestWrapper) *SeatRequest {
	return tryUnwrap[SeatRequest](wrapper, REQ_REVEAL_SEAT)
}

// 响应类型
const (
	RESP_ERROR = "Error"

	RESP_ROSTER = "Roster"
	RESP_ROLES  = "Roles"
	RESP_REVEAL = "Reveal"
	RESP_CLOSED = "Closed"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data"`
	ErrMsg   string `json:"error_message,omitempty"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(errMsg string) ResponseWrapper {
	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   errMsg,
	}
}
