package catalogue

import (
	"fmt"
	"sort"

	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

// Catalogue 车站、线路与站间距离的目录
// 加载阶段单线程写入，加载完成后只读，内部不加锁
type Catalogue struct {
	// 仅追加的车站与线路数组，指针在整个生命周期内有效
	stops  []*Stop
	routes []*Route

	stopsByName  map[string]*Stop
	routesByName map[string]*Route

	// stop index -> route names
	routesThroughStop map[int]map[string]struct{}
	// (from index, to index) -> 距离（单位：米）
	distances map[uint64]int
}

func New() *Catalogue {
	return &Catalogue{
		stops:             make([]*Stop, 0),
		routes:            make([]*Route, 0),
		stopsByName:       make(map[string]*Stop),
		routesByName:      make(map[string]*Route),
		routesThroughStop: make(map[int]map[string]struct{}),
		distances:         make(map[uint64]int),
	}
}

// 有向车站对的key
func pairKey(from, to int) uint64 {
	return uint64(uint32(from))<<32 | uint64(uint32(to))
}

func (c *Catalogue) AddStop(name string, coordinates geo.Coordinates) error {
	if _, ok := c.stopsByName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStop, name)
	}
	stop := &Stop{Name: name, Coordinates: coordinates, index: len(c.stops)}
	c.stops = append(c.stops, stop)
	c.stopsByName[name] = stop
	// 已知但无线路经过的车站也有（空的）记录
	c.routesThroughStop[stop.index] = make(map[string]struct{})
	return nil
}

// AddDistance 记录from->to的道路距离
// 若to->from尚未设置，则默认与from->to相同；之后显式设置的to->from会覆盖默认值
func (c *Catalogue) AddDistance(from, to string, distance int) error {
	if distance < 0 {
		return fmt.Errorf("%w: %s->%s %d", ErrInvalidDistance, from, to, distance)
	}
	fromStop, ok := c.stopsByName[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStop, from)
	}
	toStop, ok := c.stopsByName[to]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStop, to)
	}
	c.distances[pairKey(fromStop.index, toStop.index)] = distance
	reverse := pairKey(toStop.index, fromStop.index)
	if _, ok := c.distances[reverse]; !ok {
		c.distances[reverse] = distance
	}
	return nil
}

func (c *Catalogue) AddRoute(name string, stops []string, isRoundtrip bool) error {
	if _, ok := c.routesByName[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, name)
	}
	if len(stops) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyRoute, name)
	}
	// 先全部检查，避免写入一半
	for _, stopName := range stops {
		if _, ok := c.stopsByName[stopName]; !ok {
			return fmt.Errorf("%w: %s in route %s", ErrUnknownStop, stopName, name)
		}
	}
	route := &Route{
		Name:        name,
		Stops:       append([]string(nil), stops...),
		IsRoundtrip: isRoundtrip,
		index:       len(c.routes),
	}
	c.routes = append(c.routes, route)
	c.routesByName[name] = route
	for _, stopName := range stops {
		c.routesThroughStop[c.stopsByName[stopName].index][name] = struct{}{}
	}
	return nil
}

func (c *Catalogue) GetStop(name string) (*Stop, bool) {
	stop, ok := c.stopsByName[name]
	return stop, ok
}

func (c *Catalogue) GetRoute(name string) (*Route, bool) {
	route, ok := c.routesByName[name]
	return route, ok
}

// LookupDistance 查询from->to的距离，车站未知或距离未记录时返回false
func (c *Catalogue) LookupDistance(from, to string) (int, bool) {
	fromStop, ok := c.stopsByName[from]
	if !ok {
		return 0, false
	}
	toStop, ok := c.stopsByName[to]
	if !ok {
		return 0, false
	}
	distance, ok := c.distances[pairKey(fromStop.index, toStop.index)]
	return distance, ok
}

// GetDistance 查询from->to的距离
// 调用方需保证两站均存在且距离已记录，否则视为程序错误
func (c *Catalogue) GetDistance(from, to string) int {
	distance, ok := c.LookupDistance(from, to)
	if !ok {
		log.Panicf("no distance between %s and %s", from, to)
	}
	return distance
}

func (c *Catalogue) GetRouteInfo(name string) (RouteInfo, bool) {
	route, ok := c.routesByName[name]
	if !ok {
		return RouteInfo{}, false
	}
	stopCount := len(route.Stops)
	if !route.IsRoundtrip {
		stopCount = stopCount*2 - 1
	}
	realLength := c.realRouteLength(route)
	geoLength := c.geoRouteLength(route)
	// 单站线路或车站重合时几何长度为0，曲率定义为1
	curvature := 1.0
	if !geo.IsZero(geoLength) {
		curvature = float64(realLength) / geoLength
	}
	return RouteInfo{
		StopCount:       stopCount,
		UniqueStopCount: len(lo.Uniq(route.Stops)),
		RouteLength:     realLength,
		Curvature:       curvature,
	}, true
}

// GetRoutesThroughStop 经过车站的线路名（已排序），车站未知时返回false
func (c *Catalogue) GetRoutesThroughStop(name string) ([]string, bool) {
	stop, ok := c.stopsByName[name]
	if !ok {
		return nil, false
	}
	names := lo.Keys(c.routesThroughStop[stop.index])
	sort.Strings(names)
	return names, true
}

func (c *Catalogue) GetAllStops() map[string]*Stop {
	return c.stopsByName
}

func (c *Catalogue) GetAllRoutes() map[string]*Route {
	return c.routesByName
}

// Stops 按插入顺序返回所有车站
func (c *Catalogue) Stops() []*Stop {
	return c.stops
}

// Routes 按插入顺序返回所有线路
func (c *Catalogue) Routes() []*Route {
	return c.routes
}

// 沿正向（非环线再加反向）逐段累加的有向道路距离
func (c *Catalogue) realRouteLength(route *Route) int {
	length := 0
	for i := 0; i+1 < len(route.Stops); i++ {
		length += c.GetDistance(route.Stops[i], route.Stops[i+1])
	}
	if !route.IsRoundtrip {
		for i := 0; i+1 < len(route.Stops); i++ {
			length += c.GetDistance(route.Stops[i+1], route.Stops[i])
		}
	}
	return length
}

// 沿正向逐段累加的大圆距离，非环线返程按原路计算，直接翻倍
func (c *Catalogue) geoRouteLength(route *Route) float64 {
	coords := lo.Map(route.Stops, func(name string, _ int) geo.Coordinates {
		return c.stopsByName[name].Coordinates
	})
	length := 0.0
	for i := 0; i+1 < len(coords); i++ {
		length += geo.ComputeDistance(coords[i], coords[i+1])
	}
	if !route.IsRoundtrip {
		length *= 2
	}
	return length
}

// Summary 目录规模，用于日志
func (c *Catalogue) Summary() (stops, routes, distances int) {
	return len(c.stops), len(c.routes), len(c.distances)
}
