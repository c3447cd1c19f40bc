// Package cache stores resolved adapter types.
//
// Memory holds loaded types for the lifetime of the process. Disk persists
// compiled binaries as <name>-<key>.so next to a YAML manifest; lookups go
// by key only, the name is there for humans.
package cache
