// Package httpclient provides the HTTP transport context used by the picoview
// REST client: a configured *http.Client with TLS, default headers and a
// round-trip timeout, plus classification of non-2xx responses.
//
// The rest subpackage builds the typed JSON operations on top of it.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://localhost:5000/api",
//	    Timeout: 10 * time.Second,
//	})
//
//	resp, err := adapter.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "nodes",
//	})
//	if httpclient.IsRequestFailed(err) {
//	    // resp.StatusCode and resp.Body describe the failure
//	}
package httpclient
