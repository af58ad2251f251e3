// Package web carries the embedded static dashboard page.
package web

import "embed"

//go:embed index.html
var Files embed.FS
