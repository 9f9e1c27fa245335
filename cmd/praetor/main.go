// Praetor is a compiler and registry for the Statute Definition
// Language (SDL), a DSL for encoding legal statutes as executable
// rules.
//
// Usage:
//
//	# Parse a statute file and print its AST
//	praetor parse --file statutes/curfew.sdl
//
//	# Lint statute files with full diagnostics
//	praetor lint --dir statutes/
//
//	# Run the registry with filesystem watching
//	praetor run --config /etc/praetor/config.yaml
//
//	# Show version information
//	praetor version
package main

func main() {
	Execute()
}
