package catalogue

import "errors"

var (
	// 错误：重复的车站名
	ErrDuplicateStop = errors.New("duplicate stop")
	// 错误：重复的线路名
	ErrDuplicateRoute = errors.New("duplicate route")
	// 错误：引用了未登记的车站
	ErrUnknownStop = errors.New("unknown stop")
	// 错误：线路不包含任何车站
	ErrEmptyRoute = errors.New("route has no stops")
	// 错误：距离为负数
	ErrInvalidDistance = errors.New("distance should be non-negative")
)
