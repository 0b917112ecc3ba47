// Package topology holds the pico cluster data model (nodes, pods, clusters)
// and a Service that reads and drives it through the REST client.
//
//	svc := topology.NewService(client)
//	clusters, err := svc.Topology(ctx)
//	for _, c := range clusters {
//	    fmt.Println(c.Name, len(c.Nodes), c.PodCount())
//	}
package topology
