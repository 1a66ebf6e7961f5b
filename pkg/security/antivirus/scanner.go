// Package antivirus scans uploaded files before they are stored.
package antivirus

import "context"

// Verdict is the outcome of a scan. Threat is set only when Infected is true.
type Verdict struct {
	Infected bool
	Threat   string
}

// Scanner checks file content for malware. An error means the content could
// not be scanned; callers reject the upload rather than store it unscanned.
type Scanner interface {
	Scan(ctx context.Context, data []byte) (Verdict, error)
	Name() string
}
