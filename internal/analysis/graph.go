package analysis

import (
	"fmt"
	"sort"

	"github.com/quantmind-br/onboarddocs-go/internal/domain"
)

// ConceptGraph is the directed prerequisite graph over concept names. Nodes
// are case-normalized names in first-seen order.
type ConceptGraph struct {
	nodes   []string
	index   map[string]int
	prereqs map[string][]string // node -> its prerequisites
}

// BuildConceptGraph constructs the prerequisite graph for a merged concept
// list. Dangling prerequisite references are excluded from the graph and
// reported as warnings. Cycles are detected once; the offending edges are
// dropped and reported via a GraphCycleError-derived warning.
func BuildConceptGraph(concepts []domain.Concept) (*ConceptGraph, []domain.Warning) {
	g := &ConceptGraph{
		index:   make(map[string]int),
		prereqs: make(map[string][]string),
	}
	var warnings []domain.Warning

	for _, c := range concepts {
		name := c.NormalizedName()
		if _, ok := g.index[name]; ok {
			continue
		}
		g.index[name] = len(g.nodes)
		g.nodes = append(g.nodes, name)
	}

	for _, c := range concepts {
		node := c.NormalizedName()
		for _, prereq := range c.Prerequisites {
			key := domain.NormalizeName(prereq)
			if _, ok := g.index[key]; !ok {
				warnings = append(warnings, domain.Warning{
					Category: domain.CategoryConcepts,
					Message:  fmt.Sprintf("concept %q requires unknown concept %q", c.Name, prereq),
				})
				continue
			}
			if key == node {
				warnings = append(warnings, domain.Warning{
					Category: domain.CategoryConcepts,
					Message:  fmt.Sprintf("concept %q requires itself", c.Name),
				})
				continue
			}
			g.prereqs[node] = append(g.prereqs[node], key)
		}
	}

	if cycleWarnings := g.breakCycles(); len(cycleWarnings) > 0 {
		warnings = append(warnings, cycleWarnings...)
	}

	return g, warnings
}

// breakCycles detects cycles with a DFS over the prerequisite edges, drops
// every back edge and reports the nodes involved.
func (g *ConceptGraph) breakCycles() []domain.Warning {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(g.nodes))
	cycleNodes := make(map[string]bool)
	var dropped []string

	var visit func(node string)
	visit = func(node string) {
		state[node] = inStack
		kept := g.prereqs[node][:0]
		for _, prereq := range g.prereqs[node] {
			switch state[prereq] {
			case inStack:
				// Back edge closes a cycle; drop it.
				cycleNodes[node] = true
				cycleNodes[prereq] = true
				dropped = append(dropped, fmt.Sprintf("%s -> %s", node, prereq))
			case unvisited:
				visit(prereq)
				kept = append(kept, prereq)
			default:
				kept = append(kept, prereq)
			}
		}
		g.prereqs[node] = kept
		state[node] = done
	}

	for _, node := range g.nodes {
		if state[node] == unvisited {
			visit(node)
		}
	}

	if len(dropped) == 0 {
		return nil
	}

	nodes := make([]string, 0, len(cycleNodes))
	for node := range cycleNodes {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	err := domain.NewGraphCycleError(nodes)
	return []domain.Warning{{
		Category: domain.CategoryConcepts,
		Message:  fmt.Sprintf("%s; dropped edges: %v", err.Error(), dropped),
	}}
}

// Prerequisites returns the resolved prerequisites of a concept, in input
// order, after dangling and cycle edges were removed.
func (g *ConceptGraph) Prerequisites(name string) []string {
	return g.prereqs[domain.NormalizeName(name)]
}

// TopoOrder returns every node in a stable topological order: prerequisites
// before dependents, ties broken by first-seen input order.
func (g *ConceptGraph) TopoOrder() []string {
	indegree := make(map[string]int, len(g.nodes))
	dependents := make(map[string][]string)
	for _, node := range g.nodes {
		indegree[node] = len(g.prereqs[node])
		for _, prereq := range g.prereqs[node] {
			dependents[prereq] = append(dependents[prereq], node)
		}
	}

	// Kahn's algorithm; the ready set is kept in input order.
	var ready []string
	for _, node := range g.nodes {
		if indegree[node] == 0 {
			ready = append(ready, node)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		sort.SliceStable(ready, func(i, j int) bool {
			return g.index[ready[i]] < g.index[ready[j]]
		})
		node := ready[0]
		ready = ready[1:]
		order = append(order, node)

		for _, dep := range dependents[node] {
			indegree[dep]--
			if indegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	return order
}
