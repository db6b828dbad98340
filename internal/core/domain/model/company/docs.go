// Package company holds the companies an AGU deals with: the distribution
// network operator (DNO) that owns the grid connection and the transport
// companies that deliver gas. Both are identified by a UUID and have a
// unique name.
package company
