// Package module holds the module contract and the bootstrap port registry
package module

import (
	phttp "criticode/internal/platform/net/http"
)

// Module is the contract the API mount loop drives.
// It lives in its own package so a module exporting a ports type does not
// pull the whole modkit into its imports
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
