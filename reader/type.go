package reader

import (
	"git.fiblab.net/sim/transit/render"
	"git.fiblab.net/sim/transit/router"
)

const (
	REQUEST_STOP  = "Stop"
	REQUEST_BUS   = "Bus"
	REQUEST_MAP   = "Map"
	REQUEST_ROUTE = "Route"

	NOT_FOUND = "not found"
)

// BaseRequest 目录加载请求，Type为Stop或Bus，仅对应类型的字段有效
type BaseRequest struct {
	Type string `json:"type" bson:"type"`
	Name string `json:"name" bson:"name"`

	// Stop
	Latitude      float64        `json:"latitude" bson:"latitude"`
	Longitude     float64        `json:"longitude" bson:"longitude"`
	RoadDistances map[string]int `json:"road_distances" bson:"road_distances"`

	// Bus
	Stops       []string `json:"stops" bson:"stops"`
	IsRoundtrip bool     `json:"is_roundtrip" bson:"is_roundtrip"`
}

// StatRequest 统计查询，Bus/Stop使用Name，Route使用From与To
type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type Document struct {
	BaseRequests []BaseRequest   `json:"base_requests"`
	Routing      *router.Settings `json:"routing_settings"`
	Render       *render.Settings `json:"render_settings"`
	StatRequests []StatRequest   `json:"stat_requests"`
}

type errorResponse struct {
	RequestID    int    `json:"request_id"`
	ErrorMessage string `json:"error_message"`
}

type busResponse struct {
	RequestID       int     `json:"request_id"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
	RouteLength     int     `json:"route_length"`
	Curvature       float64 `json:"curvature"`
}

type stopResponse struct {
	RequestID int      `json:"request_id"`
	Buses     []string `json:"buses"`
}

type mapResponse struct {
	RequestID int    `json:"request_id"`
	Map       string `json:"map"`
}

type routeResponse struct {
	RequestID int         `json:"request_id"`
	TotalTime float64     `json:"total_time"`
	Items     []routeItem `json:"items"`
}

type routeItem struct {
	Type      string  `json:"type"`
	StopName  string  `json:"stop_name,omitempty"`
	Bus       string  `json:"bus,omitempty"`
	SpanCount int     `json:"span_count,omitempty"`
	Time      float64 `json:"time"`
}
