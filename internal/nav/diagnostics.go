package nav

import "sort"

// ValidationReport summarizes graph connectivity for a venue. Components
// partitions every node id into its connected component, each sorted.
type ValidationReport struct {
	NodeCount        int        `json:"node_count"`
	EdgeCount        int        `json:"edge_count"`
	Components       [][]string `json:"components"`
	LargestComponent int        `json:"largest_component"`
	IsolatedNodes    []string   `json:"isolated_nodes,omitempty"`
	Connected        bool       `json:"connected"`
}

// reachableFrom walks the graph breadth-first from start. Booth nodes are
// reported when reached but never expanded, matching path search semantics.
func (g *Graph) reachableFrom(start string) []string {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}
	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur != start && g.nodes[cur].Type == NodeBooth {
			continue
		}
		for _, nb := range g.adjacent[cur] {
			if visited[nb.id] {
				continue
			}
			visited[nb.id] = true
			queue = append(queue, nb.id)
		}
	}
	out := make([]string, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// validate builds a connectivity report over the whole graph, ignoring the
// booth traversal restriction so that a booth wired to a corridor counts as
// part of that corridor's component.
func (g *Graph) validate() ValidationReport {
	report := ValidationReport{NodeCount: len(g.ids)}
	for _, edges := range g.incident {
		report.EdgeCount += len(edges)
	}
	report.EdgeCount /= 2

	visited := make(map[string]bool, len(g.ids))
	for _, id := range g.ids {
		if visited[id] {
			continue
		}
		var members []string
		queue := []string{id}
		visited[id] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for _, nb := range g.adjacent[cur] {
				if !visited[nb.id] {
					visited[nb.id] = true
					queue = append(queue, nb.id)
				}
			}
		}
		sort.Strings(members)
		report.Components = append(report.Components, members)
		if len(members) > report.LargestComponent {
			report.LargestComponent = len(members)
		}
		if len(members) == 1 {
			report.IsolatedNodes = append(report.IsolatedNodes, id)
		}
	}
	report.Connected = len(report.Components) <= 1
	return report
}
