package result

import "sort"

// ExUnits is a memory/steps execution-unit pair, used both for a redeemer's
// declared budget and for what a script actually consumed.
type ExUnits struct {
	Memory uint64 `json:"memory"`
	Steps  uint64 `json:"steps"`
}

// EvalRedeemerResult is the Phase-2 outcome for a single redeemer: whether
// its script accepted, the execution-unit budget it was given and what it
// actually consumed, and (on failure) the error message and any evaluation
// logs the script emitted.
type EvalRedeemerResult struct {
	Tag               string   `json:"tag"`
	Index             uint32   `json:"index"`
	Success           bool     `json:"success"`
	ProvidedExUnits   ExUnits  `json:"provided_ex_units"`
	CalculatedExUnits ExUnits  `json:"calculated_ex_units"`
	Error             string   `json:"error,omitempty"`
	Logs              []string `json:"logs,omitempty"`
}

// ValidationResult is the complete, JSON-serializable verdict returned by a
// single Validate call. Phase-1 (structural) and Phase-2 (script evaluation)
// findings are kept in separate error/warning pairs, since a caller that only
// cares about structural validity (e.g. before a script budget is even known)
// should not have to filter Source out of a merged list.
type ValidationResult struct {
	TxHash              string               `json:"txHash"`
	Valid               bool                 `json:"valid"`
	Errors              []Finding            `json:"errors"`
	Warnings            []Finding            `json:"warnings"`
	Phase2Errors        []Finding            `json:"phase2_errors,omitempty"`
	Phase2Warnings      []Finding            `json:"phase2_warnings,omitempty"`
	EvalRedeemerResults []EvalRedeemerResult `json:"evalRedeemerResults,omitempty"`
}

func sortFindings(findings []Finding) []Finding {
	sorted := append([]Finding(nil), findings...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Code < b.Code
	})
	return sorted
}

// Aggregate merges Phase-1 structural findings and Phase-2 script-evaluation
// findings into one verdict, keeping each phase's errors and warnings
// separate. Findings are sorted by (source, location, code) within each
// phase before being split by severity, so two runs over the same
// transaction and context always return byte-identical JSON regardless of
// which goroutine finished a validator first.
func Aggregate(txHash string, phase1Findings, phase2Findings []Finding, evalResults []EvalRedeemerResult) ValidationResult {
	res := ValidationResult{TxHash: txHash, Valid: true, EvalRedeemerResults: evalResults}

	for _, f := range sortFindings(phase1Findings) {
		if f.Severity == SeverityError {
			res.Errors = append(res.Errors, f)
			res.Valid = false
		} else {
			res.Warnings = append(res.Warnings, f)
		}
	}

	for _, f := range sortFindings(phase2Findings) {
		if f.Severity == SeverityError {
			res.Phase2Errors = append(res.Phase2Errors, f)
			res.Valid = false
		} else {
			res.Phase2Warnings = append(res.Phase2Warnings, f)
		}
	}

	for _, er := range evalResults {
		if !er.Success {
			res.Valid = false
		}
	}

	return res
}
