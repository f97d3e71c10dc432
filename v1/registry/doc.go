// Package registry keeps a process-wide inventory of named timed locks for
// diagnostics. Locks opt in at construction time; the registry then tracks
// how often each instance was acquired, how often it timed out and how many
// callers are currently waiting on or holding it.
package registry
