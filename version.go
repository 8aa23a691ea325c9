// Package bilkit collects clients and tools for the Brain Image Library.
package bilkit

const (
	// Version of the toolkit, printed by all commands.
	Version = "0.1.0"
	// AppName is used to namespace data, cache and config directories.
	AppName = "bilkit"
)
