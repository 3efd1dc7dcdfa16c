package runner

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable digest of a task's resolved command list, so
// history shows when the commands behind a task name changed.
func Fingerprint(commands []string) string {
	hasher := xxhash.New()
	for _, cmd := range commands {
		_, _ = hasher.WriteString(cmd)
		_, _ = hasher.Write([]byte{0}) // Separator
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}
