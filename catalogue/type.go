package catalogue

import (
	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

type Stop struct {
	Name        string
	Coordinates geo.Coordinates

	// 在车站数组中的下标，作为车站的唯一标识
	index int
}

// Index 车站在目录中的编号，按插入顺序从0开始
func (s *Stop) Index() int {
	return s.index
}

type Route struct {
	Name        string
	Stops       []string // 给定的车站序列，不含返程
	IsRoundtrip bool

	index int
}

func (r *Route) Index() int {
	return r.index
}

// FullStops 完整的行驶序列，非环线会追加镜像的返程
//
//	A-B-C (非环线) -> A-B-C-B-A
func (r *Route) FullStops() []string {
	if r.IsRoundtrip || len(r.Stops) == 0 {
		return append([]string(nil), r.Stops...)
	}
	full := make([]string, 0, len(r.Stops)*2-1)
	full = append(full, r.Stops...)
	return append(full, lo.Reverse(append([]string(nil), r.Stops[:len(r.Stops)-1]...))...)
}

// RouteInfo 线路统计信息，每次查询时重新计算
type RouteInfo struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     int // 实际道路长度（单位：米）
	Curvature       float64
}
