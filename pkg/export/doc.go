// Package export renders simulation runs as a text log, JSON or CSV.
package export
