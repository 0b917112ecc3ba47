package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/kbukum/picoview/topology"
)

// render writes v as indented JSON when the json output is selected,
// otherwise calls table.
func (c *cli) render(v any, table func(w io.Writer)) error {
	if c.cfg.Output == outputJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	table(c.out)
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetColumnSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func nodeTable(w io.Writer, nodes []topology.Node) {
	t := newTable(w, "NAME", "CLUSTER", "ENDPOINT", "PODS")
	for _, n := range nodes {
		t.Append([]string{n.Name, n.Cluster, n.Endpoint(), strconv.Itoa(len(n.Pods))})
	}
	t.Render()
}

func podTable(w io.Writer, pods []topology.Pod) {
	t := newTable(w, "NAME", "IMAGE", "STATE", "PORTS")
	for _, p := range pods {
		t.Append([]string{p.Name, p.Image, p.State, strings.Join(p.Ports, ",")})
	}
	t.Render()
}

func podDetail(w io.Writer, p topology.Pod) {
	t := newTable(w, "FIELD", "VALUE")
	t.Append([]string{"id", p.ID})
	t.Append([]string{"name", p.Name})
	t.Append([]string{"image", p.Image})
	t.Append([]string{"state", p.State})
	t.Append([]string{"ports", strings.Join(p.Ports, ",")})
	t.Append([]string{"env", strings.Join(p.Env, ",")})
	t.Render()
}

func clusterTable(w io.Writer, clusters []topology.Cluster) {
	t := newTable(w, "CLUSTER", "NODE", "ENDPOINT", "PODS")
	for _, cl := range clusters {
		for _, n := range cl.Nodes {
			t.Append([]string{cl.Name, n.Name, n.Endpoint(), strconv.Itoa(len(n.Pods))})
		}
	}
	t.Render()
	for _, cl := range clusters {
		fmt.Fprintf(w, "%s: %d nodes, %d pods\n", cl.Name, len(cl.Nodes), cl.PodCount())
	}
}

func logLines(w io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
