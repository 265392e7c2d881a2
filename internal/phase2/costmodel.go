package phase2

import (
	"fmt"

	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// costModelFor returns the cost model the context has for the given Plutus
// language version, or an error if the context has none — which means the
// protocol parameters supplied to Validate are missing a language this
// transaction actually uses, not that the script itself is invalid.
func costModelFor(lc *ledgerctx.Context, version txmodel.PlutusVersion) ([]int64, error) {
	cm, ok := lc.Params.CostModels[int(version)]
	if !ok {
		return nil, fmt.Errorf("no cost model supplied for Plutus language version %d", version)
	}
	return []int64(cm), nil
}
