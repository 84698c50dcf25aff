// embed.go declares the embedded render profiles.
// It must live in the project root next to data/ because go:embed only
// reaches files below the declaring package directory.
package main

import "embed"

//go:embed data/profiles
var dataFS embed.FS
