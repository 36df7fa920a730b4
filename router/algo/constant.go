package algo

import "errors"

var (
	// 错误：边权为负，Dijkstra无法处理
	ErrNegativeWeight = errors.New("negative edge weight")
	// 错误：结点编号越界
	ErrVertexOutOfRange = errors.New("vertex out of range")
)
