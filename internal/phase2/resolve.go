package phase2

import (
	"fmt"
	"sort"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// resolvedScript is a Plutus script located for a redeemer, together with
// the language version it must be evaluated as.
type resolvedScript struct {
	Version txmodel.PlutusVersion
	Bytes   []byte
}

// resolveScript finds the credential a redeemer applies to (its spend
// input, minted policy, certificate, withdrawal account or vote) and
// locates the Plutus script backing that credential, either in the
// witness set or a reference input. Propose redeemers are not resolved;
// they always return an error.
func resolveScript(tx *txmodel.Transaction, lc *ledgerctx.Context, r txmodel.Redeemer) (resolvedScript, error) {
	var hash [28]byte
	var found bool

	switch r.Tag {
	case txmodel.RedeemerSpend:
		if int(r.Index) >= len(tx.Inputs) {
			return resolvedScript{}, fmt.Errorf("spend redeemer index %d out of range", r.Index)
		}
		entry, ok := lc.Lookup(tx.Inputs[r.Index])
		if !ok || entry.Output.Address.Payment == nil || entry.Output.Address.Payment.Kind != txmodel.CredentialScript {
			return resolvedScript{}, fmt.Errorf("spend redeemer index %d is not a script-locked input", r.Index)
		}
		hash, found = entry.Output.Address.Payment.Hash, true

	case txmodel.RedeemerMint:
		policies := mintPolicyIDsInOrder(tx)
		if int(r.Index) >= len(policies) {
			return resolvedScript{}, fmt.Errorf("mint redeemer index %d out of range", r.Index)
		}
		hash, found = policies[r.Index], true

	case txmodel.RedeemerCert:
		if int(r.Index) >= len(tx.Certificates) {
			return resolvedScript{}, fmt.Errorf("cert redeemer index %d out of range", r.Index)
		}
		cert := tx.Certificates[r.Index]
		switch {
		case cert.StakeCredential != nil && cert.StakeCredential.Kind == txmodel.CredentialScript:
			hash, found = cert.StakeCredential.Hash, true
		case cert.DRepCredential != nil && cert.DRepCredential.Kind == txmodel.CredentialScript:
			hash, found = cert.DRepCredential.Hash, true
		}

	case txmodel.RedeemerReward:
		if int(r.Index) >= len(tx.Withdrawals) {
			return resolvedScript{}, fmt.Errorf("reward redeemer index %d out of range", r.Index)
		}
		cred := tx.Withdrawals[r.Index].StakeAddress.Stake
		if cred != nil && cred.Kind == txmodel.CredentialScript {
			hash, found = cred.Hash, true
		}

	case txmodel.RedeemerVote:
		if int(r.Index) >= len(tx.VotingProcedures) {
			return resolvedScript{}, fmt.Errorf("vote redeemer index %d out of range", r.Index)
		}
		voter := tx.VotingProcedures[r.Index].Voter
		if voter.Kind == txmodel.CredentialScript {
			hash, found = voter.Hash, true
		}

	case txmodel.RedeemerPropose:
		return resolvedScript{}, fmt.Errorf("propose redeemer index %d: guardrail script resolution is not supported", r.Index)
	}

	if !found {
		return resolvedScript{}, fmt.Errorf("redeemer does not resolve to a script-backed credential")
	}

	if script, ok := findScriptByHash(tx, hash); ok {
		return script, nil
	}
	for _, ref := range tx.ReferenceInputs {
		entry, ok := lc.Lookup(ref)
		if !ok || entry.Output.RefScript == nil {
			continue
		}
		if cryptoutil.Blake2b224(entry.Output.RefScript.CBOR) == hash {
			return resolvedScript{Version: entry.Output.RefScript.Language, Bytes: entry.Output.RefScript.CBOR}, nil
		}
	}

	return resolvedScript{}, fmt.Errorf("no witness or reference script matches hash %x", hash)
}

func findScriptByHash(tx *txmodel.Transaction, hash [28]byte) (resolvedScript, bool) {
	for _, s := range tx.PlutusV1Scripts {
		if cryptoutil.Blake2b224(s) == hash {
			return resolvedScript{Version: txmodel.PlutusV1, Bytes: s}, true
		}
	}
	for _, s := range tx.PlutusV2Scripts {
		if cryptoutil.Blake2b224(s) == hash {
			return resolvedScript{Version: txmodel.PlutusV2, Bytes: s}, true
		}
	}
	for _, s := range tx.PlutusV3Scripts {
		if cryptoutil.Blake2b224(s) == hash {
			return resolvedScript{Version: txmodel.PlutusV3, Bytes: s}, true
		}
	}
	return resolvedScript{}, false
}

// mintPolicyIDsInOrder returns the minted value's policy IDs in sorted byte
// order, the canonical order the ledger assigns mint redeemer indices in.
func mintPolicyIDsInOrder(tx *txmodel.Transaction) [][28]byte {
	if tx.Mint == nil {
		return nil
	}
	var out [][28]byte
	for pol := range tx.Mint.Assets {
		out = append(out, [28]byte(pol))
	}
	sort.Slice(out, func(i, j int) bool {
		for k := range out[i] {
			if out[i][k] != out[j][k] {
				return out[i][k] < out[j][k]
			}
		}
		return false
	})
	return out
}
