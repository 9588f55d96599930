// Package server hosts the Fiber HTTP service: the middleware chain (request
// ID, CORS, tracing, panic recovery), the catch-all dispatcher that resolves
// requests against the frozen route table, and the listener bootstrap used by
// the hello-hub binary. Everything here is built once at startup and shared
// read-only across connections, so keep exports narrow and accept explicit
// dependencies.
package server
