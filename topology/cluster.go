package topology

// Cluster is a named group of nodes.
type Cluster struct {
	Name  string `json:"name"`
	Nodes []Node `json:"nodes"`
}

// PodCount returns the number of pods across the cluster's nodes.
func (c Cluster) PodCount() int {
	total := 0
	for _, n := range c.Nodes {
		total += len(n.Pods)
	}
	return total
}

// Clusters groups nodes by cluster name. Clusters appear in the order their
// first node appears and nodes keep their relative order. Nodes without a
// cluster land in DefaultCluster.
func Clusters(nodes []Node) []Cluster {
	index := make(map[string]int)
	var out []Cluster
	for _, n := range nodes {
		name := n.Cluster
		if name == "" {
			name = DefaultCluster
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Cluster{Name: name})
		}
		out[i].Nodes = append(out[i].Nodes, n)
	}
	return out
}
