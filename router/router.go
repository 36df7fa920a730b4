package router

import (
	"fmt"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/router/algo"
)

type state int

const (
	stateEmpty state = iota
	stateConfigured
	stateBuilt
)

// Router 公交最短时间路径规划
//
// 搜索图拓扑
//
//	A ---------------> C   (线路1 A->C 跨2站，边权=候车+行驶)
//	 \               ^
//	  +----> B -----+      (线路1 A->B, B->C)
//
// 1. 拓扑中的点为车站，编号为车站在目录中的下标
// 2. 同一线路同一方向上任意两站i<j之间连一条边，表示上车后不换乘直接坐到j
// 3. 边权为候车时间+行驶时间，从而每次上车只计一次候车时间
type Router struct {
	state    state
	settings Settings

	// stop name -> vertex id
	vertexIDs map[string]int
	// 边属性即乘车信息，edge id -> EdgeInfo
	graph *algo.Graph[EdgeInfo]
}

func New() *Router {
	return &Router{state: stateEmpty}
}

// Configure 设置候车时间与速度，必须在Build之前调用
func (r *Router) Configure(settings Settings) error {
	if r.state == stateBuilt {
		return ErrAlreadyBuilt
	}
	if settings.BusVelocity <= 0 || settings.BusWaitTime < 0 {
		return fmt.Errorf("%w: wait=%d velocity=%v", ErrInvalidSettings, settings.BusWaitTime, settings.BusVelocity)
	}
	r.settings = settings
	r.state = stateConfigured
	return nil
}

func (r *Router) Settings() Settings {
	return r.settings
}

// Build 由加载完成的目录一次性构建搜索图，之后不再修改
func (r *Router) Build(c *catalogue.Catalogue) error {
	switch r.state {
	case stateEmpty:
		return ErrNotConfigured
	case stateBuilt:
		return ErrAlreadyBuilt
	}
	r.buildBusGraph(c)
	r.state = stateBuilt
	log.Infof("router graph built: %d vertices, %d edges", r.graph.VertexCount(), r.graph.EdgeCount())
	return nil
}

func (r *Router) IsBuilt() bool {
	return r.state == stateBuilt
}

func (r *Router) VertexCount() int {
	if r.graph == nil {
		return 0
	}
	return r.graph.VertexCount()
}

func (r *Router) EdgeCount() int {
	if r.graph == nil {
		return 0
	}
	return r.graph.EdgeCount()
}

// FindPath 查询from到to的最短时间路径
// 车站未知、不可达、尚未构建均返回false，不做区分
func (r *Router) FindPath(from, to string) (*Path, bool) {
	if r.state != stateBuilt {
		return nil, false
	}
	fromID, ok := r.vertexIDs[from]
	if !ok {
		return nil, false
	}
	toID, ok := r.vertexIDs[to]
	if !ok {
		return nil, false
	}
	route, ok := r.graph.FindRoute(fromID, toID)
	if !ok {
		log.Debugf("routing failed, no path between %s and %s", from, to)
		return nil, false
	}
	path := &Path{Items: make([]PathItem, 0, len(route.Edges)*2)}
	wait := float64(r.settings.BusWaitTime)
	for _, id := range route.Edges {
		info := r.graph.Edge(id).Attr
		path.Items = append(path.Items,
			PathItem{Type: ITEM_WAIT, StopName: info.From, Time: wait},
			PathItem{
				Type:      ITEM_BUS,
				StopName:  info.From,
				Bus:       info.Bus,
				SpanCount: info.SpanCount,
				To:        info.To,
				Time:      info.TravelTime,
			},
		)
	}
	// 总时间按各段顺序累加，保证与各段之和严格相等
	for _, item := range path.Items {
		path.TotalTime += item.Time
	}
	return path, true
}
