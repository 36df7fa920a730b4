package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/geo"
	svg "github.com/ajstarks/svgo/float"
	"github.com/samber/lo"
)

const FONT_FAMILY = "Verdana"

// Settings 地图渲染参数
type Settings struct {
	Width             float64 `json:"width"`
	Height            float64 `json:"height"`
	Padding           float64 `json:"padding"`
	LineWidth         float64 `json:"line_width"`
	StopRadius        float64 `json:"stop_radius"`
	BusLabelFontSize  int     `json:"bus_label_font_size"`
	BusLabelOffset    Point   `json:"bus_label_offset"`
	StopLabelFontSize int     `json:"stop_label_font_size"`
	StopLabelOffset   Point   `json:"stop_label_offset"`
	UnderlayerColor   Color   `json:"underlayer_color"`
	UnderlayerWidth   float64 `json:"underlayer_width"`
	ColorPalette      []Color `json:"color_palette"`
}

type MapRenderer struct {
	settings Settings
}

func New(settings Settings) *MapRenderer {
	if len(settings.ColorPalette) == 0 {
		log.Warn("empty color palette, routes will be drawn in black")
	}
	return &MapRenderer{settings: settings}
}

func (m *MapRenderer) Settings() Settings {
	return m.settings
}

type routeLayer struct {
	name      string
	stops     []string // 含返程
	points    []Point
	roundtrip bool
	color     Color
}

type stopLayer struct {
	name  string
	point Point
}

// 线路按名称排序，颜色按调色板循环分配（跳过无车站的线路）
func (m *MapRenderer) prepare(c *catalogue.Catalogue) ([]routeLayer, []stopLayer) {
	routes := lo.Filter(c.Routes(), func(r *catalogue.Route, _ int) bool { return len(r.Stops) > 0 })
	sort.Slice(routes, func(i, j int) bool { return routes[i].Name < routes[j].Name })

	// 只绘制有线路经过的车站
	usedStops := lo.Filter(c.Stops(), func(s *catalogue.Stop, _ int) bool {
		names, _ := c.GetRoutesThroughStop(s.Name)
		return len(names) > 0
	})
	sort.Slice(usedStops, func(i, j int) bool { return usedStops[i].Name < usedStops[j].Name })

	allStops := c.GetAllStops()
	proj := NewSphereProjector(
		lo.Map(usedStops, func(s *catalogue.Stop, _ int) geo.Coordinates { return s.Coordinates }),
		m.settings.Width, m.settings.Height, m.settings.Padding,
	)

	routeLayers := make([]routeLayer, 0, len(routes))
	for i, route := range routes {
		full := route.FullStops()
		routeLayers = append(routeLayers, routeLayer{
			name:  route.Name,
			stops: full,
			points: lo.Map(full, func(name string, _ int) Point {
				return proj.Project(allStops[name].Coordinates)
			}),
			roundtrip: route.IsRoundtrip,
			color:     m.paletteColor(i),
		})
	}
	stopLayers := lo.Map(usedStops, func(s *catalogue.Stop, _ int) stopLayer {
		return stopLayer{name: s.Name, point: proj.Project(s.Coordinates)}
	})
	return routeLayers, stopLayers
}

func (m *MapRenderer) paletteColor(i int) Color {
	if len(m.settings.ColorPalette) == 0 {
		return Color("black")
	}
	return m.settings.ColorPalette[i%len(m.settings.ColorPalette)]
}

// Render 依次绘制：线路折线、线路名、车站圆点、车站名
func (m *MapRenderer) Render(w io.Writer, c *catalogue.Catalogue) error {
	routes, stops := m.prepare(c)
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(m.settings.Width, m.settings.Height)
	for _, route := range routes {
		m.drawRouteLine(canvas, route)
	}
	for _, route := range routes {
		m.drawRouteLabels(canvas, route)
	}
	for _, stop := range stops {
		canvas.Circle(stop.point.X, stop.point.Y, m.settings.StopRadius, `fill="white"`)
	}
	for _, stop := range stops {
		m.drawStopLabel(canvas, stop)
	}
	canvas.End()
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write svg: %w", err)
	}
	return nil
}

func (m *MapRenderer) drawRouteLine(canvas *svg.SVG, route routeLayer) {
	xs := lo.Map(route.points, func(p Point, _ int) float64 { return p.X })
	ys := lo.Map(route.points, func(p Point, _ int) float64 { return p.Y })
	canvas.Polyline(xs, ys, fmt.Sprintf(
		`fill="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"`,
		NONE_COLOR, route.color, ftoa(m.settings.LineWidth),
	))
}

func (m *MapRenderer) underlayerAttrs() string {
	return fmt.Sprintf(
		`fill="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round"`,
		m.settings.UnderlayerColor, m.settings.UnderlayerColor, ftoa(m.settings.UnderlayerWidth),
	)
}

// 非环线在两端各标注一次线路名（两端相同则只标一次）
func (m *MapRenderer) drawRouteLabels(canvas *svg.SVG, route routeLayer) {
	font := fmt.Sprintf(`dx="%s" dy="%s" font-size="%d" font-family="%s" font-weight="bold"`,
		ftoa(m.settings.BusLabelOffset.X), ftoa(m.settings.BusLabelOffset.Y), m.settings.BusLabelFontSize, FONT_FAMILY)
	anchors := []Point{route.points[0]}
	last := len(route.stops) / 2
	if !route.roundtrip && route.stops[0] != route.stops[last] {
		anchors = append(anchors, route.points[last])
	}
	for _, p := range anchors {
		canvas.Text(p.X, p.Y, route.name, font, m.underlayerAttrs())
		canvas.Text(p.X, p.Y, route.name, font, fmt.Sprintf(`fill="%s"`, route.color))
	}
}

func (m *MapRenderer) drawStopLabel(canvas *svg.SVG, stop stopLayer) {
	font := fmt.Sprintf(`dx="%s" dy="%s" font-size="%d" font-family="%s"`,
		ftoa(m.settings.StopLabelOffset.X), ftoa(m.settings.StopLabelOffset.Y), m.settings.StopLabelFontSize, FONT_FAMILY)
	canvas.Text(stop.point.X, stop.point.Y, stop.name, font, m.underlayerAttrs())
	canvas.Text(stop.point.X, stop.point.Y, stop.name, font, `fill="black"`)
}
