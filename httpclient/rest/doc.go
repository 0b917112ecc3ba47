// Package rest is the typed REST client for the pico backend.
//
// A Client is created uninitialized and must be given a base address before
// use. Every endpoint is resolved against base address + "/api/":
//
//	client := rest.New(rest.WithTimeout(10 * time.Second))
//	if err := client.Initialize("http://localhost:5000"); err != nil { ... }
//
//	node, err := rest.Fetch[topology.Node](ctx, client, "nodes/n1")
//	switch rest.Category(err) {
//	case rest.KindNone:
//	case rest.KindRequestFailed:
//	    // rest.StatusCode(err), rest.Body(err)
//	case rest.KindDecodeFailed, rest.KindTransport, rest.KindNotInitialized:
//	}
//
// Each operation performs exactly one round-trip. Nothing is retried or cached.
package rest
