// Package core describes named search index instances.
package core

// GeneratedNamePrefix prefixes names generated for anonymous cores.
const GeneratedNamePrefix = "dlfCore-"

// Handle resolves a core name to its engine index. Core is empty when the core does not exist.
type Handle struct {
	Name string
	Core string
}

// Exists reports whether the handle points at a live index.
func (h Handle) Exists() bool { return h.Core != "" }

// Info is the stored description of a core.
type Info struct {
	Name      string
	Index     string
	CreatedAt int64
}
