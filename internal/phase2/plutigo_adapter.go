package phase2

import (
	"fmt"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/blinklabs-io/plutigo/syn"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
)

// plutigoRunner implements ScriptRunner against plutigo's UPLC evaluator.
// This is the only file in the module that imports plutigo directly.
type plutigoRunner struct{}

// NewPlutigoRunner returns the production ScriptRunner.
func NewPlutigoRunner() ScriptRunner { return plutigoRunner{} }

func (plutigoRunner) Run(program []byte, costModel []int64, budget ledgerctx.ExUnitsParam) (ExUnits, error) {
	term, err := syn.DecodeFlat[data.PlutusData](program)
	if err != nil {
		return ExUnits{}, fmt.Errorf("decoding flat-encoded script: %w", err)
	}

	machine := syn.NewMachine[data.PlutusData](costModel, syn.Budget{
		Memory: int64(budget.Memory),
		Steps:  int64(budget.Steps),
	})

	// plutigo's Machine does not currently expose per-evaluation trace logs
	// (Plutus "trace" builtin output) separately from its result value, so
	// Logs stays nil here until that surface exists upstream.
	result, spent, err := machine.Eval(term)
	if err != nil {
		return ExUnits{Memory: uint64(spent.Memory), Steps: uint64(spent.Steps)},
			fmt.Errorf("script evaluation failed: %w", err)
	}
	if result == nil {
		return ExUnits{Memory: uint64(spent.Memory), Steps: uint64(spent.Steps)},
			fmt.Errorf("script evaluation produced no result")
	}

	return ExUnits{Memory: uint64(spent.Memory), Steps: uint64(spent.Steps)}, nil
}
