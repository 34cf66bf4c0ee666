package graph

import "container/heap"

// ShortestDistances runs Dijkstra from source and returns the distance to
// every known node. Unreachable nodes map to Infinity. An unknown source is
// reported at distance 0 with every other node unreachable.
func (g *Graph) ShortestDistances(source string) map[string]float64 {
	dist := make(map[string]float64, len(g.nodes)+1)
	for _, n := range g.nodes {
		dist[n] = Infinity
	}
	dist[source] = 0

	visited := make(map[string]bool, len(g.nodes))
	pq := &distanceQueue{}
	heap.Push(pq, &queueItem{node: source, dist: 0, seq: pq.next()})

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*queueItem)
		if visited[item.node] {
			continue
		}
		visited[item.node] = true

		for _, v := range g.neighbors[item.node] {
			candidate := item.dist + g.adj[item.node][v]
			if candidate < dist[v] {
				dist[v] = candidate
				heap.Push(pq, &queueItem{node: v, dist: candidate, seq: pq.next()})
			}
		}
	}
	return dist
}

type queueItem struct {
	node string
	dist float64
	seq  uint64
}

// distanceQueue is a min-heap on tentative distance. Equal distances pop in
// insertion order. Stale entries stay in the heap and are skipped once their
// node is visited.
type distanceQueue struct {
	items []*queueItem
	seq   uint64
}

func (q *distanceQueue) next() uint64 {
	q.seq++
	return q.seq
}

func (q distanceQueue) Len() int { return len(q.items) }

func (q distanceQueue) Less(i, j int) bool {
	if q.items[i].dist != q.items[j].dist {
		return q.items[i].dist < q.items[j].dist
	}
	return q.items[i].seq < q.items[j].seq
}

func (q distanceQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *distanceQueue) Push(x any) { q.items = append(q.items, x.(*queueItem)) }

func (q *distanceQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.items = old[:n-1]
	return item
}
