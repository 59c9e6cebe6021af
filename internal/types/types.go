// Package types defines the shared data structures (tool results, the
// aggregate report, run summaries) used across runner, report, and the
// serving surfaces to prevent import cycles.
package types

import "time"

// SolcResult is the outcome of one compiler invocation on one contract.
// Output carries stdout on success and stderr on a nonzero exit; it is
// present (possibly empty) whenever the process actually launched, and
// absent when the launch itself failed.
type SolcResult struct {
	File    string  `json:"file"`
	Success bool    `json:"success"`
	Output  *string `json:"solc_output,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// SlitherResult is the outcome of one linter invocation on one contract.
// Output holds the re-parsed JSON payload the tool emitted (an empty object
// when both streams were empty). A launch failure or an unparseable payload
// leaves Output absent and records the failure in Error, with Success
// forced false.
type SlitherResult struct {
	File    string `json:"file"`
	Success bool   `json:"success"`
	Output  any    `json:"slither_output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status is a one-word reading of the record: "compiled" when the
// compiler exited zero, "error" when it never ran, "failed" otherwise.
func (r SolcResult) Status() string {
	switch {
	case r.Success:
		return "compiled"
	case r.Error != "":
		return "error"
	default:
		return "failed"
	}
}

// Status is a one-word reading of the record: "clean" on a zero exit,
// "error" when the tool never ran or its output was unparseable,
// "findings" otherwise.
func (r SlitherResult) Status() string {
	switch {
	case r.Success:
		return "clean"
	case r.Error != "":
		return "error"
	default:
		return "findings"
	}
}

// ContractResult pairs both tool results for a single contract.
type ContractResult struct {
	Solc    SolcResult    `json:"solc"`
	Slither SlitherResult `json:"slither"`
}

// Report is the aggregate of a whole run, keyed by "<model>/<contract>".
// It is built incrementally in memory and written to disk exactly once.
type Report map[string]ContractResult

// Stats are the counts a report yields about itself. They are derived from
// the success flags this tool wrote, never from the embedded tool payloads.
type Stats struct {
	Targets       int `json:"targets"`
	SolcPassed    int `json:"solc_passed"`
	SlitherPassed int `json:"slither_passed"`
}

// Stats tallies pass counts across all entries.
func (r Report) Stats() Stats {
	s := Stats{Targets: len(r)}
	for _, entry := range r {
		if entry.Solc.Success {
			s.SolcPassed++
		}
		if entry.Slither.Success {
			s.SlitherPassed++
		}
	}
	return s
}

// Models returns the distinct model prefixes present in the report.
func (r Report) Models() []string {
	seen := map[string]bool{}
	var models []string
	for key := range r {
		model, _, ok := SplitKey(key)
		if !ok || seen[model] {
			continue
		}
		seen[model] = true
		models = append(models, model)
	}
	return models
}

// SplitKey splits "<model>/<contract>" into its parts. Contracts may contain
// further slashes in principle, so only the first separator counts.
func SplitKey(key string) (model, contract string, ok bool) {
	for i := 0; i < len(key); i++ {
		if key[i] == '/' {
			return key[:i], key[i+1:], true
		}
	}
	return "", "", false
}

// RunSummary describes one completed batch for the run log and the history
// backends. It is never embedded in the report file itself.
type RunSummary struct {
	ID            string    `json:"id"`
	Root          string    `json:"root"`
	ReportPath    string    `json:"report_path"`
	Targets       int       `json:"targets"`
	SolcPassed    int       `json:"solc_passed"`
	SlitherPassed int       `json:"slither_passed"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Duration is the wall-clock span of the run.
func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
