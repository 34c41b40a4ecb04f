package diag

import "fmt"

// Severity ranks a diagnostic. Only SevError rejects a file.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", uint8(s))
}

// Fails reports whether a diagnostic of this severity stops formatting.
func (s Severity) Fails() bool {
	return s >= SevError
}
