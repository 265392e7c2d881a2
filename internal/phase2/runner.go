// Package phase2 evaluates a transaction's Plutus scripts: for each
// redeemer it builds the script context the corresponding language version
// expects, runs the script against its declared execution-unit budget, and
// reports whether it accepted within that budget.
package phase2

import "github.com/go-cardano/ledgercheck/internal/ledgerctx"

// ScriptRunner is the narrow surface this package needs from a Plutus-core
// evaluator. Everything specific to the evaluator's own API — program
// decoding, the flat/CBOR encoding of terms, its internal cost accounting —
// stays behind this interface and inside plutigoRunner; nothing else in
// this package imports the evaluator directly.
type ScriptRunner interface {
	// Run evaluates a flat-encoded UPLC program (the script applied to its
	// arguments) against costModel and budget. It returns the execution
	// units actually consumed, or an error describing why the script
	// failed or ran out of budget.
	Run(program []byte, costModel []int64, budget ledgerctx.ExUnitsParam) (ExUnits, error)
}

// ExUnits is the memory/step pair a single script evaluation consumed, plus
// any trace logs the script emitted along the way.
type ExUnits struct {
	Memory uint64
	Steps  uint64
	Logs   []string
}
