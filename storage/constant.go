package storage

import "errors"

// 错误：未配置MongoDB地址
var ErrEmptyURI = errors.New("mongo uri is empty")
