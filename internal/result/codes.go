// Package result defines the closed, stable error/warning taxonomy every
// validator reports through, and aggregates Phase-1 and Phase-2 findings
// into a single verdict. The taxonomy is a sealed set of Go constants
// rather than an open string space: adding a new code is a deliberate,
// reviewed change to this file, the same way the ledger's own error
// taxonomy only grows at hard-fork boundaries.
package result

// Code is a stable, machine-readable finding identifier. Callers should
// switch on Code, never parse Message, which is free text for humans.
type Code string

// Phase-1 AuxiliaryData validator codes.
const (
	CodeAuxiliaryDataHashMismatch Code = "AuxiliaryDataHashMismatch"
	CodeMissingAuxiliaryDataHash  Code = "MissingAuxiliaryDataHash"
	CodeUnexpectedAuxiliaryData   Code = "UnexpectedAuxiliaryData"
)

// Phase-1 Balance validator codes.
const (
	CodeValueNotConservedUTxO           Code = "ValueNotConservedUTxO"
	CodeNegativeValueAfterMint          Code = "NegativeValueAfterMint"
	CodeMissingInputUTxO                Code = "BadInputsUTxO"
	CodeWithdrawalAmountMismatch        Code = "WithdrawalsNotInRewardsDELEGS"
	CodeWithdrawalWithoutDRepDelegation Code = "WithdrawalWithoutDRepDelegation"
)

// Phase-1 Collateral validator codes.
const (
	CodeNoCollateralInputs              Code = "NoCollateralInputs"
	CodeInsufficientCollateral          Code = "InsufficientCollateral"
	CodeIncorrectTotalCollateralField   Code = "IncorrectTotalCollateralField"
	CodeCollateralContainsNonADA        Code = "CollateralContainsNonADA"
	CodeCollateralInputsExceedMaximum   Code = "CollateralInputsExceedMaximum"
	CodeCollateralIsScriptLocked        Code = "CollateralIsScriptLocked"
	CodeTotalCollateralMismatch         Code = "TotalCollateralMismatch"
)

// Phase-1 Fee validator codes.
const (
	CodeFeeTooSmall             Code = "FeeTooSmallUTxO"
	CodeRefScriptFeeTooSmall    Code = "ReferenceScriptsFeeTooSmall"
)

// Phase-1 Output validator codes.
const (
	CodeOutputTooSmallUTxO  Code = "OutputTooSmallUTxO"
	CodeOutputTooBigUTxO    Code = "OutputTooBigUTxO"
	CodeOutputBootstrapAddressAttrsTooBig Code = "OutputBootstrapAddressAttrsTooBig"
	CodeWrongNetworkInOutput Code = "WrongNetworkInOutput"
	CodeValueSizeTooLarge    Code = "ValueSizeTooLarge"
)

// Phase-1 Registration validator codes.
const (
	CodeStakeKeyAlreadyRegistered     Code = "StakeKeyAlreadyRegisteredDELEG"
	CodeStakeKeyNotRegistered         Code = "StakeKeyNotRegisteredDELEG"
	CodeStakeDelegationImpossible     Code = "DelegateeNotRegisteredDELEG"
	CodeDRepAlreadyRegistered         Code = "DRepAlreadyRegistered"
	CodeDRepNotRegistered             Code = "DRepNotRegistered"
	CodeConflictingDeposit            Code = "ConflictingDepositValues"
	CodeCommitteeHotKeyAlreadySet     Code = "CommitteeHasAlreadyResigned"
	CodeVoteOnUnknownAction           Code = "VotingOnExpiredGovAction"
	CodeProposalDepositMismatch       Code = "ProposalDepositMismatch"
	CodeProposalReturnAddrWrongNet    Code = "ProposalReturnAccountWrongNetwork"
	CodeUnknownPoolForRetirement      Code = "StakePoolNotRegisteredOnKeyPOOL"
	CodePoolRetirementEpochOutOfRange Code = "WrongRetirementEpochPOOL"
	CodePoolCostBelowMinimum          Code = "StakePoolCostTooLowPOOL"
	CodeCommitteeMemberUnknown        Code = "CommitteeIsUnknown"
)

// Phase-1 TransactionLimits validator codes.
const (
	CodeTxTooLarge           Code = "MaxTxSizeUTxO"
	CodeTooManyCollateral    Code = "TooManyCollateralInputs"
	CodeExUnitsTooLarge      Code = "ExUnitsTooBigUTxO"
	CodeTTLInThePast         Code = "ExpiredUTxO"
	CodeValidityStartInFuture Code = "OutsideValidityIntervalUTxO"
	CodeTooManyAssetsInMint  Code = "MintValueSizeTooLarge"
)

// Phase-1 Witness validator codes.
const (
	CodeMissingVKeyWitness      Code = "MissingVKeyWitnessesUTXOW"
	CodeInvalidWitness          Code = "InvalidWitnessesUTXOW"
	CodeExtraneousScriptWitness Code = "ExtraneousScriptWitnessesUTXOW"
	CodeMissingScriptWitness    Code = "MissingScriptWitnessesUTXOW"
	CodeMissingRedeemer         Code = "MissingRedeemer"
	CodeExtraneousRedeemer      Code = "ExtraRedeemers"
	CodeScriptDataHashMismatch  Code = "PpViewHashesDontMatch"
	CodeMissingScriptDataHash   Code = "MissingScriptDataHash"
	CodeMissingRequiredSigner   Code = "MissingRequiredSigners"
)

// Phase-2 evaluator codes.
const (
	CodeScriptEvaluationFailed Code = "ScriptEvaluationFailed"
	CodeExUnitsExceedBudget    Code = "ValidationTagMismatch"
	CodeUnresolvableScript     Code = "UnresolvedScript"
	CodeUnsupportedLanguage    Code = "UnsupportedPlutusLanguage"
	CodeTranslationMissingInput Code = "TranslationLogicMissingInput"
)

// Structural / catch-all codes.
const CodeUnknownError Code = "UnknownError"

// Warning codes, spanning every validator that can produce a non-fatal
// observation rather than a rejection.
const (
	WarnInputsAreNotSorted              Code = "InputsAreNotSorted"
	WarnCertificatesAreNotCanonical     Code = "CertificatesAreNotCanonical"
	WarnDRepRefundHistoryUnavailable    Code = "DRepRefundHistoryUnavailable"
	WarnLargeReferenceScript            Code = "LargeReferenceScript"
	WarnOutputNearMinUTxOThreshold      Code = "OutputNearMinUTxOThreshold"
	WarnUnnecessaryCollateralReturn     Code = "UnnecessaryCollateralReturn"
	WarnFeeFarAboveMinimum              Code = "FeeFarAboveMinimum"
	WarnRedundantRequiredSigner         Code = "RedundantRequiredSigner"
	WarnDeprecatedAddressFormat         Code = "DeprecatedAddressFormat"
	WarnZeroAdaOutputWithOnlyTokens     Code = "ZeroAdaOutputWithOnlyTokens"
	WarnExUnitsFarBelowBudget           Code = "ExUnitsFarBelowBudget"
	WarnMultipleDatumEncodings          Code = "MultipleDatumEncodingsPresent"
	WarnVoteOnAlreadyEnactedAction      Code = "VoteOnAlreadyEnactedAction"
	WarnTreasuryDonationWithoutIntent   Code = "TreasuryDonationPresent"
	WarnUnusedReferenceInput            Code = "UnusedReferenceInput"
	WarnDuplicateStakeCertInTx          Code = "DuplicateStakeCertificateInTx"
	WarnDuplicateCommitteeCertInTx      Code = "DuplicateCommitteeCertificateInTx"
)
