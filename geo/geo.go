package geo

import (
	"math"

	"github.com/samber/lo"
)

const (
	// 地球半径（单位：米）
	EARTH_RADIUS = 6371000
	// 坐标比较精度
	EPSILON = 1e-6
)

// Coordinates 经纬度坐标（单位：度）
type Coordinates struct {
	Lat float64 `json:"latitude" bson:"latitude"`
	Lng float64 `json:"longitude" bson:"longitude"`
}

func (c Coordinates) Equal(other Coordinates) bool {
	return c.Lat == other.Lat && c.Lng == other.Lng
}

// ComputeDistance 球面余弦公式计算两点间的大圆距离（单位：米）
func ComputeDistance(from, to Coordinates) float64 {
	if from.Equal(to) {
		return 0
	}
	dr := math.Pi / 180
	cos := math.Sin(from.Lat*dr)*math.Sin(to.Lat*dr) +
		math.Cos(from.Lat*dr)*math.Cos(to.Lat*dr)*math.Cos(math.Abs(from.Lng-to.Lng)*dr)
	// 浮点误差可能使cos略微超出[-1,1]
	return math.Acos(lo.Clamp(cos, -1, 1)) * EARTH_RADIUS
}

// IsZero 判断数值是否可视为0
func IsZero(value float64) bool {
	return math.Abs(value) < EPSILON
}
