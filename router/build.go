package router

import (
	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router/algo"
	"github.com/samber/lo"
)

// 行驶distance米所需时间（单位：分钟）
func (r *Router) travelTime(distance int) float64 {
	return float64(distance) * MINUTES_PER_HOUR / (METERS_PER_KM * r.settings.BusVelocity)
}

func (r *Router) buildBusGraph(c *catalogue.Catalogue) {
	stops := c.Stops()
	r.vertexIDs = make(map[string]int, len(stops))
	for _, stop := range stops {
		r.vertexIDs[stop.Name] = stop.Index()
	}
	r.graph = algo.NewGraph[EdgeInfo](len(stops))
	for _, route := range c.Routes() {
		r.addRouteEdges(c, route.Name, route.Stops)
		if !route.IsRoundtrip {
			// 非环线的返程
			backward := lo.Reverse(append([]string(nil), route.Stops...))
			r.addRouteEdges(c, route.Name, backward)
		}
	}
}

// 线路一个方向上任意i<j连边，距离逐段累加
func (r *Router) addRouteEdges(c *catalogue.Catalogue, routeName string, stops []string) {
	wait := float64(r.settings.BusWaitTime)
	for i := 0; i < len(stops); i++ {
		distance := 0
		for j := i + 1; j < len(stops); j++ {
			distance += c.GetDistance(stops[j-1], stops[j])
			travel := r.travelTime(distance)
			r.graph.AddEdge(r.vertexIDs[stops[i]], r.vertexIDs[stops[j]], wait+travel, EdgeInfo{
				Bus:        routeName,
				SpanCount:  j - i,
				From:       stops[i],
				To:         stops[j],
				TravelTime: travel,
			})
		}
	}
}
