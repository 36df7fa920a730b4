package router

// Settings 路径规划参数
type Settings struct {
	BusWaitTime int     `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=0,lte=1000"` // 每次上车的候车时间（单位：分钟）
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity" validate:"gt=0,lte=1000"`    // 公交速度（单位：km/h）
}

// EdgeInfo 搜索图中一条边对应的乘车信息：在Bus线路上从From坐SpanCount站到To
type EdgeInfo struct {
	Bus        string
	SpanCount  int
	From       string
	To         string
	TravelTime float64 // 不含候车的行驶时间（单位：分钟）
}

type ItemType string

const (
	ITEM_WAIT ItemType = "Wait"
	ITEM_BUS  ItemType = "Bus"
)

// PathItem 行程中的一段：候车或乘车
type PathItem struct {
	Type ItemType
	// Wait: 候车站；Bus: 上车站
	StopName string
	// 以下仅Bus有效
	Bus       string
	SpanCount int
	To        string

	Time float64 // 单位：分钟
}

type Path struct {
	Items     []PathItem
	TotalTime float64
}
