package reader_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/handler"
	"git.fiblab.net/sim/transit/reader"
	"git.fiblab.net/sim/transit/render"
	"git.fiblab.net/sim/transit/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 距离引用的车站在文档中出现在其后，线路出现在车站之前
const document = `{
	"base_requests": [
		{"type": "Bus", "name": "1", "stops": ["A", "B", "C"], "is_roundtrip": false},
		{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 1000}},
		{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01, "road_distances": {"C": 1000}},
		{"type": "Stop", "name": "C", "latitude": 0, "longitude": 0.02},
		{"type": "Stop", "name": "D", "latitude": 1, "longitude": 1}
	],
	"routing_settings": {"bus_wait_time": 6, "bus_velocity": 60},
	"render_settings": {
		"width": 200, "height": 200, "padding": 10, "line_width": 4, "stop_radius": 2,
		"bus_label_font_size": 10, "bus_label_offset": [1, 2],
		"stop_label_font_size": 8, "stop_label_offset": [3, -1],
		"underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
		"color_palette": ["green"]
	},
	"stat_requests": [
		{"id": 1, "type": "Bus", "name": "1"},
		{"id": 2, "type": "Bus", "name": "404"},
		{"id": 3, "type": "Stop", "name": "B"},
		{"id": 4, "type": "Stop", "name": "D"},
		{"id": 5, "type": "Stop", "name": "Z"},
		{"id": 6, "type": "Route", "from": "A", "to": "C"},
		{"id": 7, "type": "Route", "from": "A", "to": "D"},
		{"id": 8, "type": "Map"},
		{"id": 9, "type": "Teleport"}
	]
}`

func load(t *testing.T) (*reader.Document, *handler.RequestHandler) {
	doc, err := reader.ReadDocument(strings.NewReader(document))
	require.NoError(t, err)
	c := catalogue.New()
	require.NoError(t, reader.FillCatalogue(c, doc.BaseRequests))
	h := handler.New(c, render.New(doc.RenderSettings()), 0)
	require.NoError(t, h.BuildRouter(doc.RoutingSettings()))
	return doc, h
}

func TestReadDocument(t *testing.T) {
	doc, _ := load(t)
	assert.Len(t, doc.BaseRequests, 5)
	assert.Equal(t, router.Settings{BusWaitTime: 6, BusVelocity: 60}, doc.RoutingSettings())
	assert.Equal(t, 200.0, doc.RenderSettings().Width)
	assert.Len(t, doc.StatRequests, 9)

	_, err := reader.ReadDocument(strings.NewReader(`{"base_requests": [`))
	assert.Error(t, err)
}

func TestMissingSettings(t *testing.T) {
	doc, err := reader.ReadDocument(strings.NewReader(`{"base_requests": []}`))
	require.NoError(t, err)
	assert.Equal(t, router.Settings{}, doc.RoutingSettings())
	assert.Equal(t, render.Settings{}, doc.RenderSettings())
}

func TestFillCatalogue(t *testing.T) {
	_, h := load(t)
	c := h.Catalogue()
	d, ok := c.LookupDistance("B", "A")
	require.True(t, ok)
	assert.Equal(t, 1000, d)
	route, ok := c.GetRoute("1")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, route.Stops)
}

func TestFillCatalogueErrors(t *testing.T) {
	c := catalogue.New()
	err := reader.FillCatalogue(c, []reader.BaseRequest{
		{Type: reader.REQUEST_STOP, Name: "A", RoadDistances: map[string]int{"X": 10}},
	})
	assert.ErrorIs(t, err, catalogue.ErrUnknownStop)

	c = catalogue.New()
	err = reader.FillCatalogue(c, []reader.BaseRequest{
		{Type: reader.REQUEST_STOP, Name: "A"},
		{Type: reader.REQUEST_BUS, Name: "1", Stops: []string{"A", "B"}},
	})
	assert.ErrorIs(t, err, catalogue.ErrUnknownStop)

	c = catalogue.New()
	err = reader.FillCatalogue(c, []reader.BaseRequest{
		{Type: reader.REQUEST_STOP, Name: "A"},
		{Type: reader.REQUEST_STOP, Name: "A"},
	})
	assert.ErrorIs(t, err, catalogue.ErrDuplicateStop)
}

func TestProcess(t *testing.T) {
	doc, h := load(t)
	var buf bytes.Buffer
	require.NoError(t, reader.WriteResponses(&buf, reader.Process(h, doc.StatRequests)))

	var responses []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &responses))
	require.Len(t, responses, 9)

	bus := responses[0]
	assert.Equal(t, 1.0, bus["request_id"])
	assert.Equal(t, 5.0, bus["stop_count"])
	assert.Equal(t, 3.0, bus["unique_stop_count"])
	assert.Equal(t, 4000.0, bus["route_length"])
	assert.Contains(t, bus, "curvature")

	assert.Equal(t, map[string]any{"request_id": 2.0, "error_message": "not found"}, responses[1])
	assert.Equal(t, []any{"1"}, responses[2]["buses"])
	assert.Equal(t, []any{}, responses[3]["buses"])
	assert.Equal(t, "not found", responses[4]["error_message"])

	route := responses[5]
	assert.Equal(t, 8.0, route["total_time"])
	assert.Equal(t, []any{
		map[string]any{"type": "Wait", "stop_name": "A", "time": 6.0},
		map[string]any{"type": "Bus", "bus": "1", "span_count": 2.0, "time": 2.0},
	}, route["items"])
	assert.Equal(t, "not found", responses[6]["error_message"])

	svg, ok := responses[7]["map"].(string)
	require.True(t, ok)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "<polyline")

	assert.Equal(t, "not found", responses[8]["error_message"])
}

func TestProcessEmpty(t *testing.T) {
	_, h := load(t)
	var buf bytes.Buffer
	require.NoError(t, reader.WriteResponses(&buf, reader.Process(h, nil)))
	assert.Equal(t, "[]\n", buf.String())
}
