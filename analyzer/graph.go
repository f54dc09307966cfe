package analyzer

import "github.com/boltzmannbrain/bb/model"

// Graph is the dependency graph of spec §3: vertex set = types ∪
// seqTypes, with edges recorded as an adjacency list keyed by vertex
// name. It is a small, purpose-built graph over type-name strings rather
// than a general-purpose graph library's node type, since this compiler
// never needs more than adjacency and strong-connectivity over a
// handful of vertices built once per compilation (see DESIGN.md).
type Graph struct {
	adj map[string]map[string]bool
}

func newGraph() *Graph {
	return &Graph{adj: make(map[string]map[string]bool)}
}

func (g *Graph) addVertex(v string) {
	if _, ok := g.adj[v]; !ok {
		g.adj[v] = make(map[string]bool)
	}
}

func (g *Graph) addEdge(from, to string) {
	g.addVertex(from)
	g.addVertex(to)
	g.adj[from][to] = true
}

// Vertices returns every vertex of g.
func (g *Graph) Vertices() []string {
	out := make([]string, 0, len(g.adj))
	for v := range g.adj {
		out = append(out, v)
	}
	return out
}

// Neighbors returns the out-neighbors of v.
func (g *Graph) Neighbors(v string) []string {
	out := make([]string, 0, len(g.adj[v]))
	for n := range g.adj[v] {
		out = append(out, n)
	}
	return out
}

// seqVertex is the synthetic dependency-graph vertex name for the
// sequence type over elem. It is kept distinct from elem itself so that
// the "self-loop plus edge to element type" structure of spec §3 is
// representable: the sequence type and its element type are different
// vertices connected by an edge, not the same vertex.
func seqVertex(elem string) string { return "List<" + elem + ">" }

// DependencyGraph builds the dependency graph of s per spec §3: for each
// constructor c of type u and each argument a of c, an edge u ->
// referenced_type (the synthetic sequence vertex for a List argument);
// if the referenced type is atomic, the reverse edge is also added
// (atoms are terminal and always reachable from any dependent). For
// each sequence type, a self-loop and an edge to its element type.
func DependencyGraph(s *model.System) *Graph {
	g := newGraph()
	atomic := AtomicTypes(s)

	for _, v := range s.Order {
		g.addVertex(v)
	}

	for _, u := range s.Order {
		for _, c := range s.Types[u] {
			for _, a := range c.Args {
				if a.IsList() {
					sv := seqVertex(a.Type)
					g.addEdge(u, sv)
					g.addEdge(sv, sv)     // self-loop
					g.addEdge(sv, a.Type) // sequence type -> its element type
				} else {
					g.addEdge(u, a.Type)
					if atomic[a.Type] {
						g.addEdge(a.Type, u)
					}
				}
			}
		}
	}
	return g
}

// SCCs returns the strongly connected components of g via Tarjan's
// algorithm, each as a slice of vertex names.
func (g *Graph) SCCs() [][]string {
	idx := 0
	indices := make(map[string]int)
	lowlink := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var result [][]string

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = idx
		lowlink[v] = idx
		idx++
		stack = append(stack, v)
		onStack[v] = true

		for w := range g.adj[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			result = append(result, comp)
		}
	}

	for _, v := range g.Vertices() {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}
	return result
}
