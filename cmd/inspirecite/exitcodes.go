package main

// Exit codes returned by the CLI.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed input, unreadable document)
	ExitNoMatch     = 4 // Nothing recognized or resolved
	ExitNetwork     = 5 // Bibliographic service unreachable
)
