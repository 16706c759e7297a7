// Package web holds the dashboard served at "/".
package web

import (
	"embed"
	"io/fs"
)

//go:embed index.html static
var assets embed.FS

// Index returns the dashboard page.
func Index() ([]byte, error) {
	return assets.ReadFile("index.html")
}

// Static returns the asset tree mounted under /static.
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		// "static" is embedded above, so Sub cannot fail.
		panic(err)
	}
	return sub
}
