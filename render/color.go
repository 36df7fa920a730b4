package render

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Color SVG颜色，JSON中可为 "red"、[r,g,b] 或 [r,g,b,opacity]
type Color string

const NONE_COLOR Color = "none"

func Rgb(r, g, b uint8) Color {
	return Color(fmt.Sprintf("rgb(%d,%d,%d)", r, g, b))
}

func Rgba(r, g, b uint8, opacity float64) Color {
	return Color(fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, ftoa(opacity)))
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*c = Color(name)
		return nil
	}
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("invalid color %s: %w", data, err)
	}
	switch len(values) {
	case 3:
		*c = Rgb(uint8(values[0]), uint8(values[1]), uint8(values[2]))
	case 4:
		*c = Rgba(uint8(values[0]), uint8(values[1]), uint8(values[2]), values[3])
	default:
		return fmt.Errorf("invalid color %s: expect 3 or 4 components", data)
	}
	return nil
}

func (c Color) String() string {
	if c == "" {
		return string(NONE_COLOR)
	}
	return string(c)
}

// Point 平面坐标或偏移量，JSON中为 [x, y]
type Point struct {
	X float64
	Y float64
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != 2 {
		return fmt.Errorf("invalid point %s: expect 2 components", data)
	}
	p.X, p.Y = values[0], values[1]
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
