// Package httputil provides the JSON response helpers shared by the
// admin API handlers. Tracking endpoints do not use it: they respond
// with pixels, HTML and redirects, never JSON errors.
package httputil
