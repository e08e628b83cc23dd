// Package search implements a generic best-first (A*) engine over implicit
// graphs. The graph is never materialized: callers supply a successor
// function and the engine discovers states on the fly.
package search

import (
	"container/heap"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned when the frontier empties or the deadline elapses
// before a goal state is popped.
var ErrNotFound = errors.New("no path found")

// State is any node type with a value identity. Two states describing the
// same world must return the same key.
type State interface {
	Key() string
}

// Edge is a weighted transition out of a state. Costs must be positive.
type Edge[S State] struct {
	To   S
	Cost float64
}

// Graph produces the outgoing edges of a state. Implementations should be
// pure; the engine may expand any reachable state.
type Graph[S State] interface {
	Successors(s S) []Edge[S]
}

// Result holds the path from start to a goal state (inclusive, in order),
// its accumulated cost, and search statistics.
type Result[S State] struct {
	Path     []S
	Cost     float64
	Expanded int // states finalized
	Visited  int // distinct states discovered
}

// visitedEntry is the per-state bookkeeping: best known g, cached h, and
// the predecessor key for path reconstruction.
type visitedEntry[S State] struct {
	state  S
	gCost  float64
	hCost  float64
	pred   string
	closed bool
}

// frontierEntry is a snapshot of a state's cost at insertion time. When a
// cheaper path is found later the old entry stays in the heap and is
// recognized as stale on pop (its gCost no longer matches the visited
// table), which stands in for a decrease-key operation.
type frontierEntry struct {
	key   string
	gCost float64
	fCost float64
	seq   int // insertion order, breaks f-cost ties deterministically
}

type frontier []*frontierEntry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].fCost != f[j].fCost {
		return f[i].fCost < f[j].fCost
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) {
	*f = append(*f, x.(*frontierEntry))
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*f = old[0 : n-1]
	return e
}

// Search runs A* from start until a state satisfying isGoal is popped, the
// frontier empties, or the wall-clock deadline elapses. The heuristic is
// called at most once per discovered state. All bookkeeping is local to the
// call; one invocation runs synchronously on the calling goroutine.
func Search[S State](g Graph[S], start S, isGoal func(S) bool, h func(S) float64, deadline time.Duration) (*Result[S], error) {
	expiry := time.Now().Add(deadline)

	open := &frontier{}
	heap.Init(open)
	visited := make(map[string]*visitedEntry[S])

	seq := 0
	push := func(key string, gCost, fCost float64) {
		heap.Push(open, &frontierEntry{key: key, gCost: gCost, fCost: fCost, seq: seq})
		seq++
	}

	startKey := start.Key()
	startH := h(start)
	visited[startKey] = &visitedEntry[S]{state: start, gCost: 0, hCost: startH}
	push(startKey, 0, startH)

	expanded := 0
	for open.Len() > 0 {
		if !time.Now().Before(expiry) {
			log.Warn("Search deadline elapsed", "expanded", expanded, "frontier", open.Len())
			return nil, fmt.Errorf("%w: deadline elapsed after %d expansions", ErrNotFound, expanded)
		}

		entry := heap.Pop(open).(*frontierEntry)
		rec := visited[entry.key]

		// Shadowed entry: a cheaper path to this state was recorded
		// after this entry was pushed.
		if rec.closed || entry.gCost > rec.gCost {
			continue
		}
		rec.closed = true
		expanded++

		if isGoal(rec.state) {
			path := reconstruct(visited, entry.key)
			log.Debug("Search complete", "cost", rec.gCost, "length", len(path), "expanded", expanded)
			return &Result[S]{
				Path:     path,
				Cost:     rec.gCost,
				Expanded: expanded,
				Visited:  len(visited),
			}, nil
		}

		for _, edge := range g.Successors(rec.state) {
			key := edge.To.Key()
			newG := rec.gCost + edge.Cost

			next, seen := visited[key]
			if seen {
				if next.closed || next.gCost <= newG {
					continue
				}
				// Cheaper path: relax and re-insert, reusing the
				// cached heuristic value.
				next.gCost = newG
				next.pred = entry.key
				push(key, newG, newG+next.hCost)
				continue
			}

			hCost := h(edge.To)
			visited[key] = &visitedEntry[S]{
				state: edge.To,
				gCost: newG,
				hCost: hCost,
				pred:  entry.key,
			}
			push(key, newG, newG+hCost)
		}
	}

	log.Warn("Search frontier exhausted", "expanded", expanded)
	return nil, fmt.Errorf("%w: frontier exhausted after %d expansions", ErrNotFound, expanded)
}

// reconstruct follows predecessor links back to the start and reverses the
// chain into start-to-goal order.
func reconstruct[S State](visited map[string]*visitedEntry[S], goalKey string) []S {
	var rev []S
	key := goalKey
	for {
		rec := visited[key]
		rev = append(rev, rec.state)
		if rec.pred == "" {
			break
		}
		key = rec.pred
	}

	path := make([]S, len(rev))
	for i, s := range rev {
		path[len(rev)-1-i] = s
	}
	return path
}
