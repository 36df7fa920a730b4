package render

import (
	"math"

	"git.fiblab.net/sim/transit/geo"
	"github.com/samber/lo"
)

// SphereProjector 将经纬度线性投影到画布，保持横纵比例一致
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

func NewSphereProjector(points []geo.Coordinates, maxWidth, maxHeight, padding float64) SphereProjector {
	p := SphereProjector{padding: padding}
	if len(points) == 0 {
		return p
	}
	lngs := lo.Map(points, func(c geo.Coordinates, _ int) float64 { return c.Lng })
	lats := lo.Map(points, func(c geo.Coordinates, _ int) float64 { return c.Lat })
	p.minLng, p.maxLat = lo.Min(lngs), lo.Max(lats)
	maxLng, minLat := lo.Max(lngs), lo.Min(lats)

	widthZoom, heightZoom := math.Inf(0), math.Inf(0)
	if !geo.IsZero(maxLng - p.minLng) {
		widthZoom = (maxWidth - 2*padding) / (maxLng - p.minLng)
	}
	if !geo.IsZero(p.maxLat - minLat) {
		heightZoom = (maxHeight - 2*padding) / (p.maxLat - minLat)
	}
	// 两个方向跨度都为0时，所有点投影到左上角
	if zoom := math.Min(widthZoom, heightZoom); !math.IsInf(zoom, 0) {
		p.zoom = zoom
	}
	return p
}

func (p SphereProjector) Project(c geo.Coordinates) Point {
	return Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
