// filepath: internal/projection/format.go
package projection

import "fmt"

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes renders a byte count with binary (1024-based) units, picking
// the largest unit that keeps the scaled value >= 1. Whole bytes print
// without decimals, everything else with one.
func FormatBytes(n int64) string {
	if n == 0 {
		return "0 B"
	}

	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	if unit == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", value, byteUnits[unit])
}
