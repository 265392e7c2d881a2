package phase2

import (
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// scriptContextBuilder renders the ScriptContext argument a redeemer's
// script is applied to. V1, V2 and V3 each serialize a structurally
// different context (V3 adds governance and treasury fields and the
// redeemer's data, V2 adds reference inputs, V1 has neither; every version
// carries the redeemer map), so each version gets its own
// implementation rather than one encoder with version conditionals
// scattered through it.
type scriptContextBuilder interface {
	Build(tx *txmodel.Transaction, ctx *ledgerctx.Context, r txmodel.Redeemer) ([]byte, error)
}

func builderFor(version txmodel.PlutusVersion) scriptContextBuilder {
	switch version {
	case txmodel.PlutusV1:
		return scriptContextV1{}
	case txmodel.PlutusV2:
		return scriptContextV2{}
	default:
		return scriptContextV3{}
	}
}
