// Package validate wires the parser, Phase-1 pipeline, Phase-2 evaluator
// and result aggregator into the single entry point callers use: Validate.
// It does not run the necessary-data extractor.
package validate

import (
	"encoding/hex"
	"fmt"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/phase1"
	"github.com/go-cardano/ledgercheck/internal/phase2"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// Validate decodes txHex (a hex-encoded, canonical CBOR transaction),
// runs the Phase-1 validators concurrently, runs Phase-2 if the
// transaction carries any redeemers, and returns the aggregated verdict.
// It returns a non-nil error only when txHex does not decode as a
// well-formed Conway-era transaction; every other kind of problem
// surfaces as a Finding inside the returned ValidationResult.
func Validate(txHex string, ctx *ledgerctx.Context, runner phase2.ScriptRunner) (*result.ValidationResult, error) {
	raw, err := hex.DecodeString(txHex)
	if err != nil {
		return nil, fmt.Errorf("decoding transaction hex: %w", err)
	}

	tx, err := txmodel.Parse(raw)
	if err != nil {
		return nil, err
	}

	findings := phase1.Run(tx, ctx)

	var scriptResults []result.EvalRedeemerResult
	var phase2Findings []result.Finding
	if len(tx.Redeemers) > 0 {
		scriptResults, phase2Findings = phase2.Evaluate(tx, ctx, runner)
	}

	bodyHash := cryptoutil.Blake2b256(tx.RawCBOR[tx.BodyRange.Start:tx.BodyRange.End])
	verdict := result.Aggregate(hex.EncodeToString(bodyHash[:]), findings, phase2Findings, scriptResults)
	return &verdict, nil
}
