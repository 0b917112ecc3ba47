// Package sandbox is an in-memory pico backend. It serves the same /api
// routes as a real cluster controller so picoview can be exercised without
// one:
//
//	GET    /api/nodes                    404 when no node is registered
//	GET    /api/nodes/{name}
//	GET    /api/containers
//	POST   /api/containers               400 on an invalid pod or a conflict
//	GET    /api/containers/{name}
//	DELETE /api/containers/{name}
//	GET    /api/containers/{name}/logs
//	PUT    /api/containers/{name}/start|stop|restart
//
// Mutating routes answer with the affected pod.
package sandbox
