package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusters_GroupsInFirstSeenOrder(t *testing.T) {
	nodes := []Node{
		{Name: "a1", Cluster: "alpha", Pods: []Pod{{Name: "p1"}}},
		{Name: "b1", Cluster: "beta"},
		{Name: "a2", Cluster: "alpha", Pods: []Pod{{Name: "p2"}, {Name: "p3"}}},
		{Name: "x", Cluster: ""},
	}

	clusters := Clusters(nodes)
	require.Len(t, clusters, 3)

	assert.Equal(t, "alpha", clusters[0].Name)
	assert.Equal(t, "beta", clusters[1].Name)
	assert.Equal(t, DefaultCluster, clusters[2].Name)

	require.Len(t, clusters[0].Nodes, 2)
	assert.Equal(t, "a1", clusters[0].Nodes[0].Name)
	assert.Equal(t, "a2", clusters[0].Nodes[1].Name)
	assert.Equal(t, 3, clusters[0].PodCount())
	assert.Equal(t, 0, clusters[1].PodCount())
}

func TestClusters_Empty(t *testing.T) {
	assert.Empty(t, Clusters(nil))
}
