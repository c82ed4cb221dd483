// Package pathfind turns straight-line delivery requirements into legal,
// obstacle-avoiding sequences of fixed-length compass moves.
package pathfind

import (
	"container/heap"
	"drone-dispatch-service/internal/domain"
	"drone-dispatch-service/internal/geo"
	"errors"
	"fmt"
	"math"
)

var (
	ErrDestinationBlocked = errors.New("destination lies inside a no-fly zone")
	ErrUnreachable        = errors.New("no path found within the search budget")
)

// maxExpansions bounds a single leg search. There is no other cancellation
// mechanism: an exhausted search fails the whole flight path.
const maxExpansions = 10000

// directions holds the 16 legal compass angles.
var directions = func() [16]float64 {
	var d [16]float64
	for k := range d {
		d[k] = geo.AngleUnit * float64(k)
	}
	return d
}()

// gridKey quantizes a position to step resolution so revisited cells
// deduplicate to one search node.
type gridKey struct {
	lng int64
	lat int64
}

func keyFor(p domain.Coordinate) gridKey {
	return gridKey{
		lng: int64(math.Round(p.Lng / geo.StepLength)),
		lat: int64(math.Round(p.Lat / geo.StepLength)),
	}
}

// node is one search state. Nodes live in a flat arena addressed by index;
// parent links are indices, so there are no reference cycles and the slice
// is released in one piece when the leg finishes.
type node struct {
	pos     domain.Coordinate
	parent  int32
	g       float64
	f       float64
	closed  bool
	heapPos int32
}

const noParent = int32(-1)

// openHeap is a min-heap over arena indices ordered by f score.
type openHeap struct {
	arena *[]node
	items []int32
}

func (h *openHeap) Len() int { return len(h.items) }

func (h *openHeap) Less(i, j int) bool {
	a := &(*h.arena)[h.items[i]]
	b := &(*h.arena)[h.items[j]]
	return a.f < b.f
}

func (h *openHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	(*h.arena)[h.items[i]].heapPos = int32(i)
	(*h.arena)[h.items[j]].heapPos = int32(j)
}

func (h *openHeap) Push(x any) {
	idx := x.(int32)
	(*h.arena)[idx].heapPos = int32(len(h.items))
	h.items = append(h.items, idx)
}

func (h *openHeap) Pop() any {
	idx := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	(*h.arena)[idx].heapPos = -1
	return idx
}

// insideAnyZone reports whether the point lies in any supplied no-fly zone.
// Malformed rings surface as errors, never as a silently legal step.
func insideAnyZone(p domain.Coordinate, zones []domain.NoFlyZone) (bool, error) {
	for _, zone := range zones {
		in, err := geo.PointInPolygon(p, zone.Vertices)
		if err != nil {
			return false, fmt.Errorf("zone %q: %w", zone.Name, err)
		}
		if in {
			return true, nil
		}
	}
	return false, nil
}

// searchLeg runs A* from start to goal over the 16-direction step grid and
// returns the waypoint sequence including the start position and ending
// exactly at the goal.
func searchLeg(start, goal domain.Coordinate, zones []domain.NoFlyZone) ([]domain.Coordinate, error) {
	blocked, err := insideAnyZone(goal, zones)
	if err != nil {
		return nil, fmt.Errorf("search leg: %w", err)
	}
	if blocked {
		return nil, fmt.Errorf("search leg to (%v, %v): %w", goal.Lng, goal.Lat, ErrDestinationBlocked)
	}

	arena := make([]node, 0, 1024)
	visited := make(map[gridKey]int32)
	open := &openHeap{arena: &arena}

	arena = append(arena, node{
		pos:    start,
		parent: noParent,
		g:      0,
		f:      geo.Distance(start, goal),
	})
	visited[keyFor(start)] = 0
	heap.Push(open, int32(0))

	for expansions := 0; open.Len() > 0 && expansions < maxExpansions; expansions++ {
		currIdx := heap.Pop(open).(int32)

		if geo.IsClose(arena[currIdx].pos, goal) {
			return reconstruct(arena, currIdx, goal), nil
		}

		arena[currIdx].closed = true
		currPos := arena[currIdx].pos
		tentativeG := arena[currIdx].g + geo.StepLength

		for _, angle := range directions {
			neighbor, err := geo.Step(currPos, angle)
			if err != nil {
				return nil, fmt.Errorf("search leg: %w", err)
			}

			illegal, err := insideAnyZone(neighbor, zones)
			if err != nil {
				return nil, fmt.Errorf("search leg: %w", err)
			}
			if illegal {
				continue
			}

			key := keyFor(neighbor)
			existing, seen := visited[key]

			if !seen {
				arena = append(arena, node{
					pos:    neighbor,
					parent: currIdx,
					g:      tentativeG,
					f:      tentativeG + geo.Distance(neighbor, goal),
				})
				idx := int32(len(arena) - 1)
				visited[key] = idx
				heap.Push(open, idx)
				continue
			}

			// Relax only nodes not yet finalized with a better cost.
			n := &arena[existing]
			if n.closed || tentativeG >= n.g {
				continue
			}
			h := n.f - n.g
			n.g = tentativeG
			n.f = tentativeG + h
			n.parent = currIdx
			if n.heapPos >= 0 {
				heap.Fix(open, int(n.heapPos))
			} else {
				heap.Push(open, existing)
			}
		}
	}

	return nil, fmt.Errorf("search leg to (%v, %v): %w", goal.Lng, goal.Lat, ErrUnreachable)
}

// reconstruct walks parent links back to the origin and snaps the terminal
// waypoint to the exact goal when the search stopped merely close to it.
func reconstruct(arena []node, terminal int32, goal domain.Coordinate) []domain.Coordinate {
	var path []domain.Coordinate
	for idx := terminal; idx != noParent; idx = arena[idx].parent {
		path = append(path, arena[idx].pos)
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	last := path[len(path)-1]
	if last.Lng != goal.Lng || last.Lat != goal.Lat {
		path = append(path, goal)
	}

	return path
}
