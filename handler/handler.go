package handler

import (
	"io"
	"time"

	"git.fiblab.net/sim/transit/catalogue"
	"git.fiblab.net/sim/transit/render"
	"git.fiblab.net/sim/transit/router"
	"github.com/patrickmn/go-cache"
)

// RequestHandler 面向请求的查询入口，组合目录、路径规划与地图渲染
type RequestHandler struct {
	catalogue *catalogue.Catalogue
	router    *router.Router
	renderer  *render.MapRenderer

	// 路径查询结果缓存，搜索图构建后不再变化；为nil表示不缓存
	paths *cache.Cache
}

type pathResult struct {
	path *router.Path
	ok   bool
}

// New 创建RequestHandler，pathTTL<=0时不缓存路径查询结果
func New(c *catalogue.Catalogue, renderer *render.MapRenderer, pathTTL time.Duration) *RequestHandler {
	h := &RequestHandler{
		catalogue: c,
		router:    router.New(),
		renderer:  renderer,
	}
	if pathTTL > 0 {
		h.paths = cache.New(pathTTL, 2*pathTTL)
	}
	return h
}

func (h *RequestHandler) Catalogue() *catalogue.Catalogue {
	return h.catalogue
}

func (h *RequestHandler) Router() *router.Router {
	return h.router
}

// BuildRouter 配置并构建路径规划器，目录必须已加载完成
func (h *RequestHandler) BuildRouter(settings router.Settings) error {
	if err := h.router.Configure(settings); err != nil {
		return err
	}
	if err := h.router.Build(h.catalogue); err != nil {
		return err
	}
	if h.paths != nil {
		h.paths.Flush()
	}
	return nil
}

func (h *RequestHandler) GetBusStat(name string) (catalogue.RouteInfo, bool) {
	return h.catalogue.GetRouteInfo(name)
}

func (h *RequestHandler) GetBusesByStop(name string) ([]string, bool) {
	return h.catalogue.GetRoutesThroughStop(name)
}

func (h *RequestHandler) RenderMap(w io.Writer) error {
	return h.renderer.Render(w, h.catalogue)
}

// GetPath 最短时间路径，返回的Path可能被缓存共享，调用方不得修改
func (h *RequestHandler) GetPath(from, to string) (*router.Path, bool) {
	if h.paths == nil || !h.router.IsBuilt() {
		return h.router.FindPath(from, to)
	}
	key := from + "\x00" + to
	if v, ok := h.paths.Get(key); ok {
		res := v.(pathResult)
		return res.path, res.ok
	}
	path, ok := h.router.FindPath(from, to)
	h.paths.SetDefault(key, pathResult{path: path, ok: ok})
	log.Debugf("path %s -> %s cached, found=%v", from, to, ok)
	return path, ok
}
