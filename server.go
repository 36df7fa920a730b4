package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"git.fiblab.net/sim/transit/handler"
	"git.fiblab.net/sim/transit/reader"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// TransitServer 查询接口，所有请求在搜索图构建完成后只读访问
type TransitServer struct {
	h *handler.RequestHandler
}

func NewTransitServer(h *handler.RequestHandler) *TransitServer {
	return &TransitServer{h: h}
}

// Routes
//
//	GET /health
//	GET /buses/{name}
//	GET /stops/{name}
//	GET /route?from=&to=
//	GET /map
func (s *TransitServer) Routes(corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))
	r.Get("/health", s.health)
	r.Get("/buses/{name}", s.bus)
	r.Get("/stops/{name}", s.stop)
	r.Get("/route", s.route)
	r.Get("/map", s.renderMap)
	return r
}

func newHTTPServer(h *handler.RequestHandler, cfg ServerConfig) *http.Server {
	// 使用HTTP/2 w.o. TLS
	return &http.Server{
		Addr:              cfg.Listen,
		Handler:           h2c.NewHandler(NewTransitServer(h).Routes(cfg.CORSOrigins), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *TransitServer) health(w http.ResponseWriter, r *http.Request) {
	stops, routes, _ := s.h.Catalogue().Summary()
	status := http.StatusOK
	if !s.h.Router().IsBuilt() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": http.StatusText(status),
		"stops":  stops,
		"routes": routes,
		"edges":  s.h.Router().EdgeCount(),
	})
}

func (s *TransitServer) bus(w http.ResponseWriter, r *http.Request) {
	s.respond(w, reader.StatRequest{ID: requestID(r), Type: reader.REQUEST_BUS, Name: chi.URLParam(r, "name")})
}

func (s *TransitServer) stop(w http.ResponseWriter, r *http.Request) {
	s.respond(w, reader.StatRequest{ID: requestID(r), Type: reader.REQUEST_STOP, Name: chi.URLParam(r, "name")})
}

func (s *TransitServer) route(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"request_id":    requestID(r),
			"error_message": "from and to are required",
		})
		return
	}
	s.respond(w, reader.StatRequest{ID: requestID(r), Type: reader.REQUEST_ROUTE, From: q.Get("from"), To: q.Get("to")})
}

func (s *TransitServer) renderMap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := s.h.RenderMap(w); err != nil {
		log.Errorf("render map: %v", err)
	}
}

func (s *TransitServer) respond(w http.ResponseWriter, req reader.StatRequest) {
	resp, ok := reader.Respond(s.h, req)
	if !ok {
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// requestID 可选的查询参数id，原样写回响应
func requestID(r *http.Request) int {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		return 0
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("write response: %v", err)
	}
}
