// Package ledgerctx defines the read-only ledger-state snapshot a validation
// run is evaluated against: protocol parameters, the UTxO set, and the
// account/pool/DRep/governance state a transaction's certificates and votes
// may reference. Nothing in this package fetches or mutates state; it is
// always populated by the caller.
package ledgerctx

import (
	"fmt"
	"strconv"
)

// CostModel is the flattened integer vector of a Plutus cost model for one
// language version, in the order the ledger's cost-model CDDL defines it.
// Kept as a plain slice (rather than named fields) because the vector's
// length and meaning changes across protocol versions and this package must
// not need updating every time the ledger adds a cost-model parameter.
type CostModel []int64

// ExecutionUnitPrices converts execution units into lovelace.
type ExecutionUnitPrices struct {
	PriceMemory Rational `json:"priceMemory"`
	PriceSteps  Rational `json:"priceSteps"`
}

// Rational is a reduced fraction, the form protocol-parameter prices and
// governance thresholds are expressed in.
type Rational struct {
	Numerator, Denominator int64
}

// MarshalJSON renders a Rational the way cardano-cli does: a single
// "num/den" string rather than an object, so a ProtocolParams value
// round-trips against real `cardano-cli query protocol-parameters` output.
func (r Rational) MarshalJSON() ([]byte, error) {
	return []byte(`"` + itoa64(r.Numerator) + "/" + itoa64(r.Denominator) + `"`), nil
}

// UnmarshalJSON parses the "num/den" string form back into a Rational.
func (r *Rational) UnmarshalJSON(data []byte) error {
	s := string(data)
	s = s[1 : len(s)-1] // strip quotes
	var num, den int64
	if _, err := fmt.Sscanf(s, "%d/%d", &num, &den); err != nil {
		return fmt.Errorf("parsing rational %q: %w", s, err)
	}
	r.Numerator, r.Denominator = num, den
	return nil
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// Mul multiplies an integer quantity by r, rounding down. Fee-relevant math
// in this package never uses floating point.
func (r Rational) Mul(n uint64) uint64 {
	if r.Denominator == 0 {
		return 0
	}
	return n * uint64(r.Numerator) / uint64(r.Denominator)
}

// DRepVotingThresholds holds the nine Conway DRep approval thresholds, one
// per governance-action category, as reduced fractions.
type DRepVotingThresholds struct {
	Motion             Rational `json:"motionNoConfidence"`
	Committee          Rational `json:"committeeNormal"`
	Constitution       Rational `json:"updateToConstitution"`
	HardFork           Rational `json:"hardForkInitiation"`
	PPNetworkGroup     Rational `json:"ppNetworkGroup"`
	PPEconomicGroup    Rational `json:"ppEconomicGroup"`
	PPTechnicalGroup   Rational `json:"ppTechnicalGroup"`
	PPGovernanceGroup  Rational `json:"ppGovGroup"`
	TreasuryWithdrawal Rational `json:"treasuryWithdrawal"`
}

// PoolVotingThresholds holds the five Conway stake-pool approval thresholds.
type PoolVotingThresholds struct {
	MotionNoConfidence   Rational `json:"motionNoConfidence"`
	Committee            Rational `json:"committeeNormal"`
	CommitteeMaintenance Rational `json:"committeeNoConfidence"`
	HardFork             Rational `json:"hardForkInitiation"`
	SecurityGroup        Rational `json:"securityRelevantParams"`
}

// ProtocolParams is the Conway-era protocol parameter set a validation run
// needs: the JSON projection of `cardano-cli query protocol-parameters`.
type ProtocolParams struct {
	MinFeeA                    uint64 `json:"txFeePerByte"`
	MinFeeB                    uint64 `json:"txFeeFixed"`
	MaxTxSize                  uint64 `json:"maxTxSize"`
	MaxBlockBodySize           uint64 `json:"maxBlockBodySize"`
	MaxBlockHeaderSize         uint64 `json:"maxBlockHeaderSize"`
	MaxValueSize               uint64 `json:"maxValueSize"`
	CoinsPerUTxOByte           uint64 `json:"utxoCostPerByte"`
	MinFeeRefScriptCostPerByte uint64 `json:"minFeeRefScriptCostPerByte"`
	RefScriptCostRange         []RefScriptCostTier `json:"refScriptCostRange,omitempty"`

	KeyDeposit             uint64 `json:"stakeAddressDeposit"`
	PoolDeposit            uint64 `json:"stakePoolDeposit"`
	MinPoolCost            uint64 `json:"minPoolCost"`
	PoolRetireMaxEpoch     uint64 `json:"poolRetireMaxEpoch"`
	GovActionDeposit       uint64 `json:"govActionDeposit"`
	GovActionLifetime      uint64 `json:"govActionLifetime"`
	DRepDeposit            uint64 `json:"dRepDeposit"`
	DRepActivity           uint64 `json:"dRepActivity"`
	CommitteeMinSize       uint64 `json:"committeeMinSize"`
	CommitteeMaxTermLength uint64 `json:"committeeMaxTermLength"`

	CollateralPercentage uint64 `json:"collateralPercentage"`
	MaxCollateralInputs  uint64 `json:"maxCollateralInputs"`

	MaxTxExecutionUnits    ExUnitsParam        `json:"maxTxExecutionUnits"`
	MaxBlockExecutionUnits ExUnitsParam        `json:"maxBlockExecutionUnits"`
	ExecutionPrices        ExecutionUnitPrices `json:"executionUnitPrices"`
	CostModels             map[int]CostModel   `json:"costModels"` // keyed by PlutusVersion

	DRepThresholds DRepVotingThresholds `json:"dRepVotingThresholds"`
	PoolThresholds PoolVotingThresholds `json:"poolVotingThresholds"`

	ProtocolMajorVersion uint64 `json:"protocolMajorVersion"`
	ProtocolMinorVersion uint64 `json:"protocolMinorVersion"`
}

// RefScriptCostTier is one entry of the tiered reference-script size fee
// introduced in Conway: the per-byte price increases past each tier's size
// threshold.
type RefScriptCostTier struct {
	SizeThreshold uint64   `json:"sizeThreshold"`
	Multiplier    Rational `json:"multiplier"`
}

// ExUnitsParam is a memory/steps execution-unit pair used for protocol
// parameter limits (as opposed to txmodel.ExUnits, which is a per-redeemer
// budget taken from the transaction itself).
type ExUnitsParam struct {
	Memory uint64 `json:"memory"`
	Steps  uint64 `json:"steps"`
}
