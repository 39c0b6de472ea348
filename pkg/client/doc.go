// Package client fetches documents for the probe over HTTP.
//
// # Quick Start
//
//	c := client.New()
//	doc, err := c.Fetch(ctx, "https://status.example.org/slurm.xml")
//
// Use custom configuration:
//
//	c := client.New(
//	    client.WithHTTPClient(&http.Client{Transport: customTransport}),
//	    client.WithUserAgent("my-probe/2.0"),
//	    client.WithMaxBodyBytes(1 << 20),
//	)
//
// # Timeouts
//
// Fetch does not impose its own deadline. Bound the call with a context:
//
//	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
//	defer cancel()
//	doc, err := c.Fetch(ctx, url)
//
// A request that runs out of time returns an error for which IsTimeout
// reports true.
//
// # Errors
//
// Responses outside the 2xx range return a *StatusError carrying the status
// code. Failed requests are never retried; the probe is expected to be run
// again by its scheduler.
package client
