// Package requestid provides request ID propagation for HTTP handlers:
// a middleware that accepts or generates X-Request-ID, context helpers, and
// a logger extractor that stamps the ID onto log records.
package requestid
