// Package constants defines application-wide constants and version information.
package constants

import "runtime"

// Version holds the application version information
const Version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// RequestIDHeader carries the per-request UUID on every HTTP response
const RequestIDHeader = "X-Request-ID"
