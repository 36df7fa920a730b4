package router

import "errors"

const (
	METERS_PER_KM    = 1000
	MINUTES_PER_HOUR = 60
)

var (
	// 错误：参数不合法（速度需为正，候车时间非负）
	ErrInvalidSettings = errors.New("invalid routing settings")
	// 错误：未配置参数即构建
	ErrNotConfigured = errors.New("router is not configured")
	// 错误：图只能构建一次
	ErrAlreadyBuilt = errors.New("router graph is already built")
)
