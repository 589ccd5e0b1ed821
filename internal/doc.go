// Package internal wires configuration, data sources, rendering, transports
// and output writers into a runnable merge. It is re-exported by the root
// mailmerge package; import that instead.
package internal
