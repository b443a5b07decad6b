// Package graph builds the per-request dependency graph over a task set
// and answers the two questions scoring needs: how many tasks each task
// blocks, and which dependency edges participate in a cycle.
package graph

import (
	"sort"

	"github.com/felixgeelhaar/triage/internal/triage/domain/task"
)

// Edge is a directed dependency edge: From depends on To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is a throwaway adjacency structure built once per request.
type Graph struct {
	adjacency map[string][]string
	present   map[string]struct{}
	blocking  map[string]int
}

// Build constructs the dependency graph for a task set. Dependency ids
// that reference tasks absent from the set are kept in the adjacency
// lists but contribute no edges during traversal.
func Build(tasks []task.Task) *Graph {
	g := &Graph{
		adjacency: make(map[string][]string, len(tasks)),
		present:   make(map[string]struct{}, len(tasks)),
		blocking:  make(map[string]int),
	}

	for _, t := range tasks {
		g.present[t.ID] = struct{}{}
	}

	for _, t := range tasks {
		deps := make([]string, 0, len(t.Dependencies))
		seen := make(map[string]struct{}, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			deps = append(deps, dep)
			if _, ok := g.present[dep]; ok {
				g.blocking[dep]++
			}
		}
		g.adjacency[t.ID] = deps
	}

	return g
}

// BlockingCount returns how many other tasks in the set list the given
// task as a dependency.
func (g *Graph) BlockingCount(id string) int {
	return g.blocking[id]
}

// nodeState tracks DFS progress per node.
type nodeState int

const (
	stateUnvisited nodeState = iota
	stateInProgress
	stateDone
)

// CycleEdges runs a depth-first traversal from every unvisited node and
// returns the back-edges that close a cycle, deduplicated by unordered
// endpoint pair. Dangling dependency ids are treated as terminal leaves.
func (g *Graph) CycleEdges() []Edge {
	state := make(map[string]nodeState, len(g.present))

	// Deterministic traversal order regardless of map iteration.
	ids := make([]string, 0, len(g.present))
	for id := range g.present {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var edges []Edge
	seen := make(map[[2]string]struct{})

	var visit func(id string)
	visit = func(id string) {
		state[id] = stateInProgress
		for _, dep := range g.adjacency[id] {
			if _, ok := g.present[dep]; !ok {
				continue
			}
			switch state[dep] {
			case stateUnvisited:
				visit(dep)
			case stateInProgress:
				key := pairKey(id, dep)
				if _, dup := seen[key]; !dup {
					seen[key] = struct{}{}
					edges = append(edges, Edge{From: id, To: dep})
				}
			}
		}
		state[id] = stateDone
	}

	for _, id := range ids {
		if state[id] == stateUnvisited {
			visit(id)
		}
	}

	return edges
}

func pairKey(a, b string) [2]string {
	if a < b {
		return [2]string{a, b}
	}
	return [2]string{b, a}
}
