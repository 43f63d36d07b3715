package augur

import (
	"regexp"
	"strconv"
	"strings"
)

// progressPattern matches progress-bar lines of the shape
// "NN%|██        | current/total [...]" as emitted by common training and
// inference loops.
var progressPattern = regexp.MustCompile(`^\s*(\d+)%\s*\|.+?\|\s*(\d+)/(\d+)`)

// ParseProgress extracts the most recent progress-bar line from a log
// snapshot. It scans lines from the end backwards and returns nil when no
// line matches; absent progress is a normal result, not an error.
//
// The parse is stateless: every call re-scans the full text, because the
// server may truncate or replace the log blob between polls.
func ParseProgress(logs string) *Progress {
	lines := strings.Split(logs, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		m := progressPattern.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			continue
		}
		// The pattern guarantees digits-only groups.
		percentage, _ := strconv.Atoi(m[1])
		current, _ := strconv.Atoi(m[2])
		total, _ := strconv.Atoi(m[3])
		return &Progress{
			Percentage: float64(percentage) / 100.0,
			Current:    current,
			Total:      total,
		}
	}
	return nil
}

// Progress returns the prediction's current progress, parsed fresh from its
// logs, or nil if no progress line is present.
func (p *Prediction) Progress() *Progress {
	if p.Logs == "" {
		return nil
	}
	return ParseProgress(p.Logs)
}

// Progress returns the training's current progress, parsed fresh from its
// logs, or nil if no progress line is present.
func (t *Training) Progress() *Progress {
	if t.Logs == "" {
		return nil
	}
	return ParseProgress(t.Logs)
}
