package algo

// EdgeID 边的编号，即插入顺序
type EdgeID = int

type Edge[ET any] struct {
	From   int
	To     int
	Weight float64
	Attr   ET
}

// RouteInfo 最短路结果：总权值与按顺序经过的边
type RouteInfo struct {
	Weight float64
	Edges  []EdgeID
}
