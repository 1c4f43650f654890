// Package web provides the embedded static assets served at /static/. The
// only asset is the live styling client that blog pages include to apply
// surface snapshots pushed over the WebSocket.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
