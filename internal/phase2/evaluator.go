package phase2

import (
	"strconv"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// exUnitsFarBelowBudgetThreshold is the fraction of the declared budget a
// script must consume to avoid WarnExUnitsFarBelowBudget: consuming less
// than this share of either the memory or step budget usually means the
// submitter is overpaying and the redeemer's ExUnits should be retuned.
const exUnitsFarBelowBudgetThreshold = 0.10

// Evaluate runs every redeemer's script and returns one EvalRedeemerResult
// per redeemer (except a redeemer whose script resolves to a native
// reference script, which gets none) plus any findings explaining a failure (unresolvable
// script, missing cost model, evaluation rejection, or exceeding the
// redeemer's declared execution-unit budget). It never looks at anything
// Phase-1 already checked (witness presence, fee, balance); a script is
// only ever run once its redeemer has been resolved to a script here.
func Evaluate(tx *txmodel.Transaction, lc *ledgerctx.Context, runner ScriptRunner) ([]result.EvalRedeemerResult, []result.Finding) {
	var results []result.EvalRedeemerResult
	var findings []result.Finding

	for i, r := range tx.Redeemers {
		loc := redeemerLocation(i)
		tag := redeemerTagName(r.Tag)
		provided := result.ExUnits{Memory: r.ExUnits.Memory, Steps: r.ExUnits.Steps}

		script, err := resolveScript(tx, lc, r)
		if err != nil {
			findings = append(findings, result.Errorf(
				"phase2", result.CodeUnresolvableScript, loc, map[string]any{"reason": err.Error()},
				"redeemer's script could not be resolved"))
			results = append(results, result.EvalRedeemerResult{
				Tag: tag, Index: r.Index, Success: false, ProvidedExUnits: provided, Error: err.Error(),
			})
			continue
		}

		if script.Version == txmodel.PlutusNone {
			// native scripts are evaluated structurally in Phase-1's
			// witness matching; Phase-2 only runs Plutus scripts.
			continue
		}

		costModel, err := costModelFor(lc, script.Version)
		if err != nil {
			findings = append(findings, result.Errorf(
				"phase2", result.CodeUnsupportedLanguage, loc, map[string]any{"reason": err.Error()},
				"no cost model available for this script's Plutus language version"))
			results = append(results, result.EvalRedeemerResult{
				Tag: tag, Index: r.Index, Success: false, ProvidedExUnits: provided, Error: err.Error(),
			})
			continue
		}

		program, err := builderFor(script.Version).Build(tx, lc, r)
		if err != nil {
			findings = append(findings, result.Errorf(
				"phase2", result.CodeTranslationMissingInput, loc, map[string]any{"reason": err.Error()},
				"script context could not be built for this redeemer"))
			results = append(results, result.EvalRedeemerResult{
				Tag: tag, Index: r.Index, Success: false, ProvidedExUnits: provided, Error: err.Error(),
			})
			continue
		}
		program = append(append([]byte{}, script.Bytes...), program...)

		budget := ledgerctx.ExUnitsParam{Memory: r.ExUnits.Memory, Steps: r.ExUnits.Steps}
		used, err := runner.Run(program, costModel, budget)
		calculated := result.ExUnits{Memory: used.Memory, Steps: used.Steps}
		if err != nil {
			findings = append(findings, result.Errorf(
				"phase2", result.CodeScriptEvaluationFailed, loc, map[string]any{"reason": err.Error()},
				"script evaluation failed or did not return a result"))
			results = append(results, result.EvalRedeemerResult{
				Tag: tag, Index: r.Index, Success: false,
				ProvidedExUnits: provided, CalculatedExUnits: calculated,
				Error: err.Error(), Logs: used.Logs,
			})
			continue
		}

		if used.Memory > r.ExUnits.Memory || used.Steps > r.ExUnits.Steps {
			findings = append(findings, result.Errorf(
				"phase2", result.CodeExUnitsExceedBudget, loc, map[string]any{
					"declaredMemory": r.ExUnits.Memory, "declaredSteps": r.ExUnits.Steps,
					"usedMemory": used.Memory, "usedSteps": used.Steps,
				},
				"script consumed more execution units than the redeemer declared"))
			results = append(results, result.EvalRedeemerResult{
				Tag: tag, Index: r.Index, Success: false,
				ProvidedExUnits: provided, CalculatedExUnits: calculated, Logs: used.Logs,
			})
			continue
		}

		if exUnitsFarBelowBudget(used.Memory, r.ExUnits.Memory) || exUnitsFarBelowBudget(used.Steps, r.ExUnits.Steps) {
			findings = append(findings, result.Warnf(
				"phase2", result.WarnExUnitsFarBelowBudget, loc, map[string]any{
					"declaredMemory": r.ExUnits.Memory, "declaredSteps": r.ExUnits.Steps,
					"usedMemory": used.Memory, "usedSteps": used.Steps,
				},
				"script consumed far fewer execution units than the redeemer declared"))
		}

		results = append(results, result.EvalRedeemerResult{
			Tag: tag, Index: r.Index, Success: true,
			ProvidedExUnits: provided, CalculatedExUnits: calculated, Logs: used.Logs,
		})
	}

	return results, findings
}

func exUnitsFarBelowBudget(used, declared uint64) bool {
	if declared == 0 {
		return false
	}
	return float64(used) < float64(declared)*exUnitsFarBelowBudgetThreshold
}

func redeemerLocation(i int) string {
	return "/redeemers/" + strconv.Itoa(i)
}

func redeemerTagName(t txmodel.RedeemerTag) string {
	switch t {
	case txmodel.RedeemerSpend:
		return "spend"
	case txmodel.RedeemerMint:
		return "mint"
	case txmodel.RedeemerCert:
		return "cert"
	case txmodel.RedeemerReward:
		return "reward"
	case txmodel.RedeemerVote:
		return "vote"
	case txmodel.RedeemerPropose:
		return "propose"
	default:
		return "unknown"
	}
}
