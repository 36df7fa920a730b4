package algo

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/samber/lo"
)

// Graph 有向带权图，结点为[0, vertexCount)，边按插入顺序编号
// 构建阶段单线程写入，构建完成后可并发查询
type Graph[ET any] struct {
	edges []Edge[ET]
	// 邻接表，from -> 出边编号（按插入顺序）
	incidence [][]EdgeID

	mu *xsync.RBMutex
}

func NewGraph[ET any](vertexCount int) *Graph[ET] {
	return &Graph[ET]{
		edges:     make([]Edge[ET], 0),
		incidence: make([][]EdgeID, vertexCount),
		mu:        xsync.NewRBMutex(),
	}
}

func (g *Graph[ET]) VertexCount() int {
	return len(g.incidence)
}

func (g *Graph[ET]) EdgeCount() int {
	return len(g.edges)
}

func (g *Graph[ET]) AddEdge(from, to int, weight float64, attr ET) EdgeID {
	if from < 0 || from >= len(g.incidence) || to < 0 || to >= len(g.incidence) {
		panic(fmt.Errorf("%w: edge %d->%d with %d vertices", ErrVertexOutOfRange, from, to, len(g.incidence)))
	}
	if weight < 0 || math.IsNaN(weight) {
		panic(fmt.Errorf("%w: edge %d->%d weight %v", ErrNegativeWeight, from, to, weight))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	id := len(g.edges)
	g.edges = append(g.edges, Edge[ET]{From: from, To: to, Weight: weight, Attr: attr})
	g.incidence[from] = append(g.incidence[from], id)
	return id
}

func (g *Graph[ET]) Edge(id EdgeID) Edge[ET] {
	return g.edges[id]
}

// IncidentEdges from的所有出边
func (g *Graph[ET]) IncidentEdges(from int) []EdgeID {
	return g.incidence[from]
}

func (g *Graph[ET]) reconstructRoute(prevEdge []EdgeID, to int, weight float64) RouteInfo {
	edgesBeforeReversed := make([]EdgeID, 0)
	for cur := to; prevEdge[cur] != -1; {
		id := prevEdge[cur]
		edgesBeforeReversed = append(edgesBeforeReversed, id)
		cur = g.edges[id].From
	}
	return RouteInfo{Weight: weight, Edges: lo.Reverse(edgesBeforeReversed)}
}

// FindRoute Dijkstra求from到to的最短路
// 同等权值时：出边按插入顺序松弛，只有严格更短才替换前驱，堆中按结点编号出队
func (g *Graph[ET]) FindRoute(from, to int) (RouteInfo, bool) {
	token := g.mu.RLock()
	defer g.mu.RUnlock(token)
	n := len(g.incidence)
	if from < 0 || from >= n || to < 0 || to >= n {
		return RouteInfo{}, false
	}
	if from == to {
		return RouteInfo{Weight: 0, Edges: []EdgeID{}}, true
	}
	dist := make([]float64, n)
	prevEdge := make([]EdgeID, n)
	for i := range dist {
		dist[i] = math.Inf(0)
		prevEdge[i] = -1
	}
	dist[from] = 0
	openSet := make(PriorityQueue, 1)
	openSetMap := make(map[int]*Item, 1) // vertex -> 堆中元素
	openSet[0] = &Item{Value: from, Priority: 0, Index: 0}
	openSetMap[from] = openSet[0]
	heap.Init(&openSet)
	for openSet.Len() > 0 {
		cur := heap.Pop(&openSet).(*Item).Value
		delete(openSetMap, cur)
		if cur == to {
			return g.reconstructRoute(prevEdge, to, dist[to]), true
		}
		for _, id := range g.incidence[cur] {
			edge := g.edges[id]
			tentative := dist[cur] + edge.Weight
			if tentative < dist[edge.To] {
				dist[edge.To] = tentative
				prevEdge[edge.To] = id
				if item, ok := openSetMap[edge.To]; ok {
					// 已在堆中，修改其优先级
					item.Priority = tentative
					heap.Fix(&openSet, item.Index)
				} else {
					item := &Item{Value: edge.To, Priority: tentative}
					heap.Push(&openSet, item)
					openSetMap[edge.To] = item
				}
			}
		}
	}
	return RouteInfo{}, false
}
