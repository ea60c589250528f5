// =============================================================================
// X3 Flat Bridge - Main Entry Point
// =============================================================================
//
// This is the main entry point for the X3 Flat Bridge CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   x3bridge export    - Export and decode business data from the backend
//   x3bridge submit    - Validate and submit an order
//   x3bridge process   - Decode saved flat export files offline
//   x3bridge version   - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/X3-flat-bridge/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
