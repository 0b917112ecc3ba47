package topology

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPort_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Port
	}{
		{"string", `"5000"`, "5000"},
		{"number", `5000`, "5000"},
		{"float integral", `5000.0`, "5000"},
		{"exponent", `5e3`, "5000"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
		{"non numeric string", `"http"`, "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Port
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPort_UnmarshalJSON_Invalid(t *testing.T) {
	for _, in := range []string{`true`, `{}`, `[1]`} {
		var p Port
		assert.Error(t, json.Unmarshal([]byte(in), &p), in)
	}
}

func TestPort_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Port("5000"))
	require.NoError(t, err)
	assert.JSONEq(t, `"5000"`, string(b))
}

func TestPort_Int(t *testing.T) {
	n, ok := Port("8080").Int()
	assert.True(t, ok)
	assert.Equal(t, 8080, n)

	_, ok = Port("").Int()
	assert.False(t, ok)
}

func TestNode_Decode(t *testing.T) {
	body := `{"Name":"agent-1","address":"10.0.0.5","port":5000,"cluster":"k8-pico",
		"pods":[{"name":"web","image":"nginx","state":"RUNNING","ports":["8080:80"],"env":["A=1"]}]}`

	var n Node
	require.NoError(t, json.Unmarshal([]byte(body), &n))

	assert.Equal(t, "agent-1", n.Name)
	assert.Equal(t, Port("5000"), n.Port)
	assert.Equal(t, "10.0.0.5:5000", n.Endpoint())
	require.Len(t, n.Pods, 1)
	assert.Equal(t, StateRunning, n.Pods[0].State)
	assert.Equal(t, []string{"8080:80"}, n.Pods[0].Ports)
}

func TestNode_EncodeOmitsEmptyAddress(t *testing.T) {
	b, err := json.Marshal(Node{Name: "n1", Cluster: "c"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"n1","cluster":"c","pods":null}`, string(b))
}

func TestNode_EndpointWithoutPort(t *testing.T) {
	assert.Equal(t, "10.0.0.5", Node{Address: "10.0.0.5"}.Endpoint())
}
