package debug

import (
	"fmt"
	"log"
	"os"
	"time"
)

// Set MATCH_DEBUG=1 before a run to see per-pair trace output explaining why
// individual candidate pairs were kept or rejected.
var enabled = os.Getenv("MATCH_DEBUG") != ""

// Logf prints trace output when debugging is enabled.
func Logf(format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Timing measures and logs execution time when debugging is enabled.
func Timing(operation string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Logf("Starting: %s", operation)

	return func() {
		Logf("Completed: %s (took %v)", operation, time.Since(start))
	}
}
