package sandbox

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/topology"
)

func newStore(t *testing.T, nodes ...string) *Store {
	t.Helper()
	s := NewStore("test")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	for _, n := range nodes {
		require.NoError(t, s.AddNode(topology.Node{Name: n}))
	}
	return s
}

func TestStore_AddNode(t *testing.T) {
	s := newStore(t, "n1")

	err := s.AddNode(topology.Node{Name: "n1"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists))

	n, err := s.Node("n1")
	require.NoError(t, err)
	assert.Equal(t, "test", n.Cluster)
	assert.NotNil(t, n.Pods)
}

func TestStore_NotFound(t *testing.T) {
	s := newStore(t, "n1")

	_, err := s.Node("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = s.Pod("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = s.DeletePod("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = s.StartPod("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	_, err = s.Logs("ghost")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestStore_CreatePod_Placement(t *testing.T) {
	s := newStore(t, "n1", "n2")

	for i := range 4 {
		_, err := s.CreatePod(topology.PodSpec{Name: fmt.Sprintf("p%d", i), Image: "nginx"})
		require.NoError(t, err)
	}

	nodes := s.Nodes()
	require.Len(t, nodes, 2)
	assert.Len(t, nodes[0].Pods, 2)
	assert.Len(t, nodes[1].Pods, 2)
	assert.Equal(t, "p0", nodes[0].Pods[0].Name)
	assert.Equal(t, "p1", nodes[1].Pods[0].Name)
}

func TestStore_CreatePod_Conflicts(t *testing.T) {
	s := newStore(t, "n1")

	pod, err := s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx", Ports: []string{"8080:80"}})
	require.NoError(t, err)
	assert.NotEmpty(t, pod.ID)
	assert.Equal(t, topology.StateRunning, pod.State)

	_, err = s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeAlreadyExists, appErr.Code)
	assert.Equal(t, topology.StateNameConflict, appErr.Details["state"])

	_, err = s.CreatePod(topology.PodSpec{Name: "web2", Image: "nginx", Ports: []string{"8080:81"}})
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, topology.StatePortConflict, appErr.Details["state"])
}

func TestStore_PortConflictFallsBackToOtherNode(t *testing.T) {
	s := newStore(t, "n1", "n2")

	_, err := s.CreatePod(topology.PodSpec{Name: "a", Image: "x", Ports: []string{"8080:80"}})
	require.NoError(t, err)
	_, err = s.CreatePod(topology.PodSpec{Name: "b", Image: "x"})
	require.NoError(t, err)
	_, err = s.CreatePod(topology.PodSpec{Name: "c", Image: "x", Ports: []string{"8080:80"}})
	require.NoError(t, err)

	nodes := s.Nodes()
	assert.Equal(t, []string{"a"}, podNames(nodes[0]))
	assert.Equal(t, []string{"b", "c"}, podNames(nodes[1]))
}

func TestStore_CreatePod_NoNodes(t *testing.T) {
	s := newStore(t)
	_, err := s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}

func TestStore_Lifecycle(t *testing.T) {
	s := newStore(t, "n1")
	_, err := s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	require.NoError(t, err)

	pod, err := s.StopPod("web")
	require.NoError(t, err)
	assert.Equal(t, topology.StateStopped, pod.State)

	pod, err = s.StartPod("web")
	require.NoError(t, err)
	assert.Equal(t, topology.StateRunning, pod.State)

	pod, err = s.RestartPod("web")
	require.NoError(t, err)
	assert.Equal(t, topology.StateRunning, pod.State)

	logs, err := s.Logs("web")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2026-01-02T03:04:05Z pulled image nginx",
		"2026-01-02T03:04:05Z container started on n1",
		"2026-01-02T03:04:05Z container stopped",
		"2026-01-02T03:04:05Z container started",
		"2026-01-02T03:04:05Z container restarting",
		"2026-01-02T03:04:05Z container started",
	}, logs)

	deleted, err := s.DeletePod("web")
	require.NoError(t, err)
	assert.Equal(t, "web", deleted.Name)
	assert.Empty(t, s.Pods())
	_, err = s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	assert.NoError(t, err, "name is free again after delete")
}

func TestStore_LogsBounded(t *testing.T) {
	s := newStore(t, "n1")
	_, err := s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx"})
	require.NoError(t, err)

	for range maxLogLines {
		_, err = s.StartPod("web")
		require.NoError(t, err)
	}
	logs, err := s.Logs("web")
	require.NoError(t, err)
	assert.Len(t, logs, maxLogLines)
	assert.Contains(t, logs[len(logs)-1], "already running")
}

func TestStore_SnapshotsAreCopies(t *testing.T) {
	s := newStore(t, "n1")
	_, err := s.CreatePod(topology.PodSpec{Name: "web", Image: "nginx", Ports: []string{"8080:80"}})
	require.NoError(t, err)

	pod, err := s.Pod("web")
	require.NoError(t, err)
	pod.Ports[0] = "9999:1"

	again, err := s.Pod("web")
	require.NoError(t, err)
	assert.Equal(t, "8080:80", again.Ports[0])
}

func TestSeed(t *testing.T) {
	cfg := Config{SeedPods: true}
	cfg.ApplyDefaults()

	store, err := Seed(cfg)
	require.NoError(t, err)

	nodes := store.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "k8-pico", nodes[0].Cluster)
	assert.Equal(t, topology.Port("5001"), nodes[0].Port)
	assert.Len(t, store.Pods(), len(demoPods))
}

func podNames(n topology.Node) []string {
	var names []string
	for _, p := range n.Pods {
		names = append(names, p.Name)
	}
	return names
}
