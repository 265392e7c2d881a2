package phase1

import (
	"bytes"
	"fmt"

	"github.com/go-cardano/ledgercheck/internal/cborx"
	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/result"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// WitnessValidator checks that every vkey signature verifies against the
// transaction body hash, that every key hash required by an input, a
// withdrawal, a certificate or requiredSigners has a vkey witness, that
// every script-locked spend input has a spend redeemer and a matching
// script (in the witness set or a reference input), that no spend redeemer
// points past the inputs, and that the declared script-data hash matches
// the redeemers and datums actually present. Redeemers and scripts for
// purposes other than spending are not paired here.
type WitnessValidator struct{}

func (WitnessValidator) Name() string { return "witness" }

func (WitnessValidator) Check(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	bodyHash := cryptoutil.Blake2b256(tx.RawCBOR[tx.BodyRange.Start:tx.BodyRange.End])

	providedVKeys := map[[28]byte]bool{}
	for i, w := range tx.VkeyWitnesses {
		keyHash := cryptoutil.Blake2b224(w.VKey[:])
		providedVKeys[keyHash] = true
		if !cryptoutil.VerifyEd25519(w.VKey, bodyHash[:], w.Signature) {
			findings = append(findings, result.Errorf(
				"witness", result.CodeInvalidWitness, fmt.Sprintf("/witnessSet/vkeys/%d", i), nil,
				"vkey witness signature does not verify against the transaction body hash"))
		}
	}

	required := map[[28]byte]bool{}
	for _, h := range tx.RequiredSigners {
		required[h] = true
	}
	for _, in := range tx.Inputs {
		if entry, ok := ctx.Lookup(in); ok {
			if c := entry.Output.Address.Payment; c != nil && c.Kind == txmodel.CredentialKey {
				required[c.Hash] = true
			}
		}
	}
	for _, w := range tx.Withdrawals {
		if c := w.StakeAddress.Stake; c != nil && c.Kind == txmodel.CredentialKey {
			required[c.Hash] = true
		}
	}
	for _, c := range tx.Certificates {
		if c.StakeCredential != nil && c.StakeCredential.Kind == txmodel.CredentialKey {
			required[c.StakeCredential.Hash] = true
		}
	}

	for h := range required {
		if !providedVKeys[h] {
			findings = append(findings, result.Errorf(
				"witness", result.CodeMissingVKeyWitness, "/witnessSet/vkeys", map[string]any{
					"keyHash": hexString(h[:]),
				},
				"a required verification key has no corresponding witness"))
		}
	}
	for _, h := range tx.RequiredSigners {
		if !providedVKeys[h] {
			findings = append(findings, result.Errorf(
				"witness", result.CodeMissingRequiredSigner, "/requiredSigners", map[string]any{
					"keyHash": hexString(h[:]),
				},
				"a key hash listed in requiredSigners has no corresponding witness"))
		}
	}

	findings = append(findings, checkScriptRedeemerPairing(tx, ctx)...)
	findings = append(findings, checkScriptDataHash(tx, ctx)...)

	return findings
}

func checkScriptRedeemerPairing(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	var findings []result.Finding

	spendScriptCreds := map[int]*txmodel.Credential{}
	for i, in := range tx.Inputs {
		if entry, ok := ctx.Lookup(in); ok && entry.Output.Address.Payment != nil &&
			entry.Output.Address.Payment.Kind == txmodel.CredentialScript {
			spendScriptCreds[i] = entry.Output.Address.Payment
		}
	}

	redeemedSpendIndices := map[uint32]bool{}
	for i, r := range tx.Redeemers {
		if r.Tag == txmodel.RedeemerSpend {
			redeemedSpendIndices[r.Index] = true
			if int(r.Index) >= len(tx.Inputs) {
				findings = append(findings, result.Errorf(
					"witness", result.CodeExtraneousRedeemer, fmt.Sprintf("/redeemers/%d", i), nil,
					"redeemer references an input index that does not exist"))
			}
		}
	}
	for idx := range spendScriptCreds {
		if !redeemedSpendIndices[uint32(idx)] {
			findings = append(findings, result.Errorf(
				"witness", result.CodeMissingRedeemer, fmt.Sprintf("/inputs/%d", idx), nil,
				"script-locked input has no corresponding spend redeemer"))
		}
	}

	allScripts := map[[28]byte]bool{}
	for _, s := range tx.NativeScripts {
		allScripts[cryptoutil.Blake2b224(s)] = true
	}
	for _, s := range tx.PlutusV1Scripts {
		allScripts[cryptoutil.Blake2b224(s)] = true
	}
	for _, s := range tx.PlutusV2Scripts {
		allScripts[cryptoutil.Blake2b224(s)] = true
	}
	for _, s := range tx.PlutusV3Scripts {
		allScripts[cryptoutil.Blake2b224(s)] = true
	}
	for idx, cred := range spendScriptCreds {
		if !allScripts[cred.Hash] {
			// the script may legitimately be supplied via a reference input
			// instead of a witness-set script; only flag it missing if no
			// reference input resolves to a matching script either.
			found := false
			for _, ref := range tx.ReferenceInputs {
				if entry, ok := ctx.Lookup(ref); ok && entry.Output.RefScript != nil {
					if cryptoutil.Blake2b224(entry.Output.RefScript.CBOR) == cred.Hash {
						found = true
						break
					}
				}
			}
			if !found {
				findings = append(findings, result.Errorf(
					"witness", result.CodeMissingScriptWitness, fmt.Sprintf("/inputs/%d", idx),
					map[string]any{"scriptHash": hexString(cred.Hash[:])},
					"script-locked input's script is not present in the witness set or any reference input"))
			}
		}
	}

	return findings
}

// checkScriptDataHash verifies the transaction body's script_data_hash
// against a canonical re-encoding of the redeemers, Plutus data and
// language-view cost models actually present, following the ledger's
// redeemers||datums||language-views construction.
func checkScriptDataHash(tx *txmodel.Transaction, ctx *ledgerctx.Context) []result.Finding {
	hasScriptData := len(tx.Redeemers) > 0 || len(tx.PlutusData) > 0
	if !hasScriptData {
		return nil
	}
	if tx.ScriptDataHash == nil {
		return []result.Finding{result.Errorf(
			"witness", result.CodeMissingScriptDataHash, "/scriptDataHash", nil,
			"transaction carries redeemers or Plutus data but no script data hash")}
	}

	preimage := buildScriptDataPreimage(tx, ctx)
	got := cryptoutil.Blake2b256(preimage)
	if !bytes.Equal(got[:], tx.ScriptDataHash[:]) {
		return []result.Finding{result.Errorf(
			"witness", result.CodeScriptDataHashMismatch, "/scriptDataHash", map[string]any{
				"expected": hexString(tx.ScriptDataHash[:]),
				"computed": hexString(got[:]),
			},
			"script data hash does not match the redeemers, Plutus data and cost models present")}
	}
	return nil
}

func buildScriptDataPreimage(tx *txmodel.Transaction, ctx *ledgerctx.Context) []byte {
	var buf bytes.Buffer

	buf.Write(cborx.EncodeMapHeader(len(tx.Redeemers)))
	for _, r := range tx.Redeemers {
		buf.Write(cborx.EncodeArrayHeader(2))
		buf.Write(cborx.EncodeUint(uint64(r.Tag)))
		buf.Write(cborx.EncodeUint(uint64(r.Index)))
		buf.Write(cborx.EncodeArrayHeader(2))
		buf.Write(r.Data)
		buf.Write(cborx.EncodeArrayHeader(2))
		buf.Write(cborx.EncodeUint(r.ExUnits.Memory))
		buf.Write(cborx.EncodeUint(r.ExUnits.Steps))
	}

	if len(tx.PlutusData) > 0 {
		buf.Write(cborx.EncodeArrayHeader(len(tx.PlutusData)))
		for _, d := range tx.PlutusData {
			buf.Write(d)
		}
	}

	usedLanguages := map[int]bool{}
	if len(tx.PlutusV1Scripts) > 0 {
		usedLanguages[int(txmodel.PlutusV1)] = true
	}
	if len(tx.PlutusV2Scripts) > 0 {
		usedLanguages[int(txmodel.PlutusV2)] = true
	}
	if len(tx.PlutusV3Scripts) > 0 {
		usedLanguages[int(txmodel.PlutusV3)] = true
	}
	buf.Write(cborx.EncodeMapHeader(len(usedLanguages)))
	for _, lang := range []int{int(txmodel.PlutusV1), int(txmodel.PlutusV2), int(txmodel.PlutusV3)} {
		if !usedLanguages[lang] {
			continue
		}
		buf.Write(cborx.EncodeUint(uint64(lang)))
		cm := ctx.Params.CostModels[lang]
		buf.Write(cborx.EncodeArrayHeader(len(cm)))
		for _, v := range cm {
			if v < 0 {
				neg := cborx.EncodeUint(uint64(-v - 1))
				neg[0] |= 0x20 // major type 1: negative integer
				buf.Write(neg)
			} else {
				buf.Write(cborx.EncodeUint(uint64(v)))
			}
		}
	}

	return buf.Bytes()
}
