package reader

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	"git.fiblab.net/sim/transit/handler"
	"git.fiblab.net/sim/transit/render"
	"git.fiblab.net/sim/transit/router"
	"github.com/samber/lo"
)

func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}

// RoutingSettings 文档未给出时返回零值，由调用方决定默认值
func (d *Document) RoutingSettings() router.Settings {
	if d.Routing == nil {
		return router.Settings{}
	}
	return *d.Routing
}

func (d *Document) RenderSettings() render.Settings {
	if d.Render == nil {
		return render.Settings{}
	}
	return *d.Render
}

// FillCatalogue 按车站、距离、线路的顺序加载目录，保证距离与线路引用的车站均已存在
func FillCatalogue(c *catalogue.Catalogue, base []BaseRequest) error {
	stops := lo.Filter(base, func(r BaseRequest, _ int) bool { return r.Type == REQUEST_STOP })
	buses := lo.Filter(base, func(r BaseRequest, _ int) bool { return r.Type == REQUEST_BUS })
	if unknown := len(base) - len(stops) - len(buses); unknown > 0 {
		log.Warnf("%d base requests with unknown type ignored", unknown)
	}

	for _, req := range stops {
		if err := c.AddStop(req.Name, geo.Coordinates{Lat: req.Latitude, Lng: req.Longitude}); err != nil {
			return fmt.Errorf("failed to add stop %q: %w", req.Name, err)
		}
	}
	for _, req := range stops {
		// 按目标站名排序，保证加载顺序与文档中map的遍历顺序无关
		targets := lo.Keys(req.RoadDistances)
		sort.Strings(targets)
		for _, to := range targets {
			if err := c.AddDistance(req.Name, to, req.RoadDistances[to]); err != nil {
				return fmt.Errorf("failed to add distance %q -> %q: %w", req.Name, to, err)
			}
		}
	}
	for _, req := range buses {
		if err := c.AddRoute(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return fmt.Errorf("failed to add bus %q: %w", req.Name, err)
		}
	}
	nStops, nRoutes, nDistances := c.Summary()
	log.Debugf("catalogue loaded: %d stops, %d routes, %d distances", nStops, nRoutes, nDistances)
	return nil
}

// Process 依次处理统计查询，每个查询对应一个响应
func Process(h *handler.RequestHandler, stats []StatRequest) []any {
	return lo.Map(stats, func(req StatRequest, _ int) any {
		resp, _ := Respond(h, req)
		return resp
	})
}

// Respond 处理单个统计查询，未找到或类型未知时返回错误响应与false
func Respond(h *handler.RequestHandler, req StatRequest) (any, bool) {
	notFound := errorResponse{RequestID: req.ID, ErrorMessage: NOT_FOUND}
	switch req.Type {
	case REQUEST_BUS:
		info, ok := h.GetBusStat(req.Name)
		if !ok {
			return notFound, false
		}
		return busResponse{
			RequestID:       req.ID,
			StopCount:       info.StopCount,
			UniqueStopCount: info.UniqueStopCount,
			RouteLength:     info.RouteLength,
			Curvature:       info.Curvature,
		}, true
	case REQUEST_STOP:
		buses, ok := h.GetBusesByStop(req.Name)
		if !ok {
			return notFound, false
		}
		return stopResponse{RequestID: req.ID, Buses: buses}, true
	case REQUEST_MAP:
		var sb strings.Builder
		if err := h.RenderMap(&sb); err != nil {
			log.Errorf("render map for request %d failed: %v", req.ID, err)
			return notFound, false
		}
		return mapResponse{RequestID: req.ID, Map: sb.String()}, true
	case REQUEST_ROUTE:
		path, ok := h.GetPath(req.From, req.To)
		if !ok {
			return notFound, false
		}
		return routeResponse{
			RequestID: req.ID,
			TotalTime: path.TotalTime,
			Items: lo.Map(path.Items, func(item router.PathItem, _ int) routeItem {
				if item.Type == router.ITEM_WAIT {
					return routeItem{Type: string(item.Type), StopName: item.StopName, Time: item.Time}
				}
				return routeItem{Type: string(item.Type), Bus: item.Bus, SpanCount: item.SpanCount, Time: item.Time}
			}),
		}, true
	default:
		log.Warnf("unknown stat request type %q (id=%d)", req.Type, req.ID)
		return notFound, false
	}
}

func WriteResponses(w io.Writer, responses []any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(responses); err != nil {
		return fmt.Errorf("failed to encode responses: %w", err)
	}
	return nil
}
