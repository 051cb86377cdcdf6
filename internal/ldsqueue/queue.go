/*
 Copyright (C) 2026 Douglas Wayne Potter

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as
 published by the Free Software Foundation, either version 3 of the
 License, or (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package ldsqueue is the node priority queue for limited discrepancy
// search, adapted from the teacher's lower-bound priority queue
// (container/heap over a node's bound) to the discrepancy/depth ordering
// limited discrepancy search needs instead: nodes with fewer discrepancies
// are explored first, and among equal discrepancy counts the deepest node
// goes first, matching a depth-first dive within each discrepancy wave.
package ldsqueue

import "container/heap"

// Node is one item carried by Queue. ID is opaque to the queue; it exists
// so a caller can recover which node a Pop'd item corresponds to.
type Node struct {
	Discrepancy int
	Depth       int
	ID          int
}

type innerHeap []Node

func (h innerHeap) Len() int { return len(h) }

func (h innerHeap) Less(i, j int) bool {
	if h[i].Discrepancy != h[j].Discrepancy {
		return h[i].Discrepancy < h[j].Discrepancy
	}
	return h[i].Depth > h[j].Depth
}

func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *innerHeap) Push(x any) { *h = append(*h, x.(Node)) }

func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is a (discrepancy ascending, depth descending) priority queue of
// Nodes, backed by container/heap the same way the teacher's
// LowerBoundPriorityQueue is.
type Queue struct {
	h innerHeap
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push adds n to the queue.
func (q *Queue) Push(n Node) {
	heap.Push(&q.h, n)
}

// Pop removes and returns the queue's least item (smallest discrepancy,
// then largest depth). Pop on an empty Queue panics, as with
// container/heap itself; callers should check Len first.
func (q *Queue) Pop() Node {
	return heap.Pop(&q.h).(Node)
}

// Len returns the number of nodes currently queued.
func (q *Queue) Len() int { return q.h.Len() }
