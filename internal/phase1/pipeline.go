// Package phase1 implements the eight independent structural validators
// that together make up Phase-1 validation: AuxiliaryData, Balance,
// Collateral, Fee, Output, Registration, TransactionLimits and Witness.
// Each validator only ever reads the transaction and the context; none of
// them depend on another's output, so the pipeline runs them concurrently
// and still returns a deterministic result.
package phase1

import (
	"sync"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// Validator is one Phase-1 check. Name identifies it as Finding.Source.
type Validator interface {
	Name() string
	Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding
}

// All returns the eight structural validators, in a stable order (the
// order findings are collected in before Aggregate sorts them, not an
// order of precedence — every validator always runs).
func All() []Validator {
	return []Validator{
		AuxiliaryDataValidator{},
		BalanceValidator{},
		CollateralValidator{},
		FeeValidator{},
		OutputValidator{},
		RegistrationValidator{},
		TransactionLimitsValidator{},
		WitnessValidator{},
	}
}

// Run executes every Phase-1 validator concurrently and returns the
// combined, unsorted finding list. A panic inside any single validator is
// recovered and turned into an UnknownError finding attributed to that
// validator: one broken check can never prevent the other seven from
// reporting, and never crashes the caller.
func Run(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	validators := All()
	results := make([][]result.Finding, len(validators))

	var wg sync.WaitGroup
	wg.Add(len(validators))
	for i, v := range validators {
		go func(i int, v Validator) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = []result.Finding{result.Unknown(v.Name(), r)}
				}
			}()
			results[i] = v.Check(tx, ctx)
		}(i, v)
	}
	wg.Wait()

	var out []result.Finding
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
