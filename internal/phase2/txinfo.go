package phase2

import (
	"math/big"

	"github.com/go-cardano/ledgercheck/internal/cborx"
	"github.com/go-cardano/ledgercheck/internal/ledgerctx"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// txInfoFields selects which optional TxInfo sections a given Plutus
// language version's context includes, so encodeTxInfo has one body
// instead of being copy-pasted three times with small deltas.
type txInfoFields struct {
	includeReferenceInputs bool
	includeVotes           bool
	includeProposals       bool
	includeTreasury        bool
}

// encodeTxInfo renders the transaction information a script sees, as a
// CBOR array of its fields in a fixed order: inputs, reference inputs (when
// included), outputs, fee, signatories, redeemers, validity range, tx id,
// then the votes, proposals and treasury fields when included.
// This is a simplified re-encoding: it carries enough of each field for a
// script to inspect inputs, outputs, value, validity range, signatories
// and the redeemer map, but (per the adapter's documented scope) does not
// attempt to reproduce Plutus Data's constructor-tagged encoding bit for
// bit against the reference ledger implementation.
func encodeTxInfo(tx *txmodel.Transaction, lc *ledgerctx.Context, fields txInfoFields) []byte {
	var buf []byte

	n := 7
	if fields.includeReferenceInputs {
		n++
	}
	if fields.includeVotes {
		n++
	}
	if fields.includeProposals {
		n++
	}
	if fields.includeTreasury {
		n += 2
	}
	buf = append(buf, cborx.EncodeArrayHeader(n)...)

	buf = append(buf, encodeInputs(tx.Inputs)...)
	if fields.includeReferenceInputs {
		buf = append(buf, encodeInputs(tx.ReferenceInputs)...)
	}
	buf = append(buf, encodeOutputs(tx.Outputs)...)
	buf = append(buf, encodeFee(tx.Fee)...)
	buf = append(buf, encodeSignatories(tx.RequiredSigners)...)
	buf = append(buf, encodeRedeemers(tx.Redeemers)...)
	buf = append(buf, encodeValidityRange(tx)...)
	buf = append(buf, encodeTxID(tx)...)

	if fields.includeVotes {
		buf = append(buf, cborx.EncodeArrayHeader(len(tx.VotingProcedures))...)
	}
	if fields.includeProposals {
		buf = append(buf, cborx.EncodeArrayHeader(len(tx.ProposalProcedures))...)
	}
	if fields.includeTreasury {
		if lc.TreasuryBalance != nil {
			buf = append(buf, cborx.EncodeUint(lc.TreasuryBalance.Uint64())...)
		} else {
			buf = append(buf, cborx.EncodeUint(0)...)
		}
		if tx.Donation != nil {
			buf = append(buf, cborx.EncodeUint(tx.Donation.Uint64())...)
		} else {
			buf = append(buf, cborx.EncodeUint(0)...)
		}
	}

	return buf
}

func encodeInputs(ins []txmodel.TxInput) []byte {
	buf := cborx.EncodeArrayHeader(len(ins))
	for _, in := range ins {
		buf = append(buf, cborx.EncodeArrayHeader(2)...)
		buf = append(buf, cborx.EncodeBytes(in.TxHash[:])...)
		buf = append(buf, cborx.EncodeUint(uint64(in.Index))...)
	}
	return buf
}

func encodeOutputs(outs []txmodel.TxOutput) []byte {
	buf := cborx.EncodeArrayHeader(len(outs))
	for _, out := range outs {
		buf = append(buf, cborx.EncodeArrayHeader(2)...)
		buf = append(buf, cborx.EncodeBytes(out.Address.Raw)...)
		coin := uint64(0)
		if out.Value.Coin != nil {
			coin = out.Value.Coin.Uint64()
		}
		buf = append(buf, cborx.EncodeUint(coin)...)
	}
	return buf
}

func encodeFee(fee *big.Int) []byte {
	if fee == nil {
		return cborx.EncodeUint(0)
	}
	return cborx.EncodeUint(fee.Uint64())
}

func encodeSignatories(signers [][28]byte) []byte {
	buf := cborx.EncodeArrayHeader(len(signers))
	for _, h := range signers {
		buf = append(buf, cborx.EncodeBytes(h[:])...)
	}
	return buf
}

func encodeRedeemers(redeemers []txmodel.Redeemer) []byte {
	buf := cborx.EncodeMapHeader(len(redeemers))
	for _, r := range redeemers {
		buf = append(buf, cborx.EncodeArrayHeader(2)...)
		buf = append(buf, cborx.EncodeUint(uint64(r.Tag))...)
		buf = append(buf, cborx.EncodeUint(uint64(r.Index))...)
		buf = append(buf, r.Data...)
	}
	return buf
}

func encodeValidityRange(tx *txmodel.Transaction) []byte {
	buf := cborx.EncodeArrayHeader(2)
	if tx.ValidityStart != nil {
		buf = append(buf, cborx.EncodeUint(*tx.ValidityStart)...)
	} else {
		buf = append(buf, cborx.EncodeUint(0)...)
	}
	if tx.TTL != nil {
		buf = append(buf, cborx.EncodeUint(*tx.TTL)...)
	} else {
		buf = append(buf, cborx.EncodeUint(0)...)
	}
	return buf
}

func encodeTxID(tx *txmodel.Transaction) []byte {
	return cborx.EncodeBytes(tx.RawCBOR[tx.BodyRange.Start:tx.BodyRange.End])
}

// encodeScriptPurpose renders the tag/index pair identifying which part of
// the transaction this redeemer applies to (Spend, Mint, Cert, Reward,
// Vote or Propose).
func encodeScriptPurpose(tx *txmodel.Transaction, r txmodel.Redeemer) []byte {
	buf := cborx.EncodeArrayHeader(2)
	buf = append(buf, cborx.EncodeUint(uint64(r.Tag))...)
	buf = append(buf, cborx.EncodeUint(uint64(r.Index))...)
	return buf
}
