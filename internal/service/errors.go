package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	GatewayTimeout      = 504
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrKindInvalid         = errors.New("关系类型不支持")
	ErrCompareModeInvalid  = errors.New("对比模式不支持")
	ErrGranularityInvalid  = errors.New("统计粒度不支持")
	ErrGrowthPeriodInvalid = errors.New("增长区间不支持")
	ErrImportInProgress    = errors.New("该账号有导入任务进行中，请稍后重试")
	ErrComputeTimeout      = errors.New("计算超时，请稍后重试")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrKindInvalid:         BadRequest,
	ErrCompareModeInvalid:  BadRequest,
	ErrGranularityInvalid:  BadRequest,
	ErrGrowthPeriodInvalid: BadRequest,
	ErrImportInProgress:    Conflict,
	ErrComputeTimeout:      GatewayTimeout,
	UnExpectedError:        InternalServerError,
}
