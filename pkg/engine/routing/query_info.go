package routing

import (
	da "github.com/safepath-labs/riskrouter/pkg/datastructure"
)

// vertexEdgePair is the back-pointer of a labelled vertex: the parent
// vertex and the edge used to reach the labelled vertex from it.
type vertexEdgePair struct {
	vertex da.Index
	edge   da.Index
}

func newVertexEdgePair(vertex, edge da.Index) vertexEdgePair {
	return vertexEdgePair{vertex: vertex, edge: edge}
}

func (p vertexEdgePair) getVertex() da.Index {
	return p.vertex
}

func (p vertexEdgePair) getEdge() da.Index {
	return p.edge
}

// VertexInfo is the search label of one vertex: best known cost so far,
// back-pointer for reconstruction, and the frontier entry for DecreaseKey.
type VertexInfo struct {
	cost     float64
	parent   vertexEdgePair
	heapNode *da.PriorityQueueNode[da.AstarQueryKey]
}

func NewVertexInfo(cost float64, parent vertexEdgePair,
	heapNode *da.PriorityQueueNode[da.AstarQueryKey]) *VertexInfo {
	return &VertexInfo{cost: cost, parent: parent, heapNode: heapNode}
}

func (vi *VertexInfo) GetCost() float64 {
	return vi.cost
}

func (vi *VertexInfo) GetParent() vertexEdgePair {
	return vi.parent
}

func (vi *VertexInfo) GetHeapNode() *da.PriorityQueueNode[da.AstarQueryKey] {
	return vi.heapNode
}

func (vi *VertexInfo) UpdateCost(cost float64) {
	vi.cost = cost
}

func (vi *VertexInfo) UpdateParent(parent vertexEdgePair) {
	vi.parent = parent
}

func (vi *VertexInfo) SetHeapNode(heapNode *da.PriorityQueueNode[da.AstarQueryKey]) {
	vi.heapNode = heapNode
}
