package txmodel

import (
	"fmt"
	"math/big"

	"github.com/blinklabs-io/gouroboros/ledger"
	"github.com/go-cardano/ledgercheck/internal/cborx"
)

// ParseError is returned for any transaction that does not decode as a
// well-formed Conway-era CBOR transaction. It is a structural failure: the
// caller gets no ValidationResult at all, because there is no transaction
// to report findings about.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "txmodel: " + e.Reason }

// Parse decodes raw CBOR transaction bytes into a Transaction, failing
// only when the bytes do not form a well-formed Conway-era transaction
// envelope. Phase-1/Phase-2 semantic problems are never reported here: they
// surface later as findings against a successfully parsed Transaction.
func Parse(raw []byte) (*Transaction, error) {
	top, err := cborx.Decode(raw)
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("not valid CBOR: %v", err)}
	}
	if top.Kind != cborx.KindList || len(top.Items) < 3 {
		return nil, &ParseError{Reason: "top-level transaction must be a 3-or-4-element array"}
	}

	// Conway era is confirmed here, not merely assumed: NewTransactionFromCbor
	// will reject anything gouroboros cannot classify as Conway-shaped, giving
	// a second, independently-sourced era check alongside the body-map-key
	// inspection Parse itself performs below.
	if _, err := ledger.NewTransactionFromCbor(ledger.TxTypeConway, raw); err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("not a Conway-era transaction: %v", err)}
	}

	bodyItem := top.Items[0]
	if bodyItem.Kind != cborx.KindMap {
		return nil, &ParseError{Reason: "transaction body must be a map"}
	}
	witnessItem := top.Items[1]
	if witnessItem.Kind != cborx.KindMap {
		return nil, &ParseError{Reason: "witness set must be a map"}
	}

	tx := &Transaction{
		RawCBOR:   raw,
		BodyRange: ByteRange{bodyItem.Start, bodyItem.End},
		IsValid:   true,
	}

	if top.Items[2].Kind == cborx.KindBool {
		tx.IsValid = top.Items[2].Uint == 1
	}

	if err := parseBody(raw, bodyItem, tx); err != nil {
		return nil, err
	}
	if err := parseWitnessSet(raw, witnessItem, tx); err != nil {
		return nil, err
	}
	if len(top.Items) > 3 {
		parseAuxData(raw, top.Items[3], tx)
	}

	return tx, nil
}

func parseBody(buf []byte, body cborx.Item, tx *Transaction) error {
	if v, ok := body.MapValueUint(buf, 0); ok {
		ins, err := parseInputSet(buf, v)
		if err != nil {
			return err
		}
		tx.Inputs = ins
	} else {
		return &ParseError{Reason: "transaction body missing inputs (key 0)"}
	}

	if v, ok := body.MapValueUint(buf, 1); ok {
		outs, err := parseOutputList(buf, v)
		if err != nil {
			return err
		}
		tx.Outputs = outs
	} else {
		return &ParseError{Reason: "transaction body missing outputs (key 1)"}
	}

	if v, ok := body.MapValueUint(buf, 2); ok {
		if v.Kind != cborx.KindUint {
			return &ParseError{Reason: "fee (key 2) must be an unsigned integer"}
		}
		tx.Fee = new(big.Int).SetUint64(v.Uint)
	} else {
		return &ParseError{Reason: "transaction body missing fee (key 2)"}
	}

	if v, ok := body.MapValueUint(buf, 3); ok && v.Kind == cborx.KindUint {
		ttl := v.Uint
		tx.TTL = &ttl
	}
	if v, ok := body.MapValueUint(buf, 8); ok && v.Kind == cborx.KindUint {
		start := v.Uint
		tx.ValidityStart = &start
	}

	if v, ok := body.MapValueUint(buf, 4); ok {
		certs, err := parseCertificateList(buf, v)
		if err != nil {
			return err
		}
		tx.Certificates = certs
	}

	if v, ok := body.MapValueUint(buf, 5); ok {
		wds, err := parseWithdrawals(buf, v)
		if err != nil {
			return err
		}
		tx.Withdrawals = wds
	}

	if v, ok := body.MapValueUint(buf, 9); ok {
		mint, err := parseMultiAssetSigned(buf, v)
		if err != nil {
			return err
		}
		tx.Mint = &mint
	}

	if v, ok := body.MapValueUint(buf, 7); ok && v.Kind == cborx.KindBytes && len(v.Bytes) == 32 {
		var h [32]byte
		copy(h[:], v.Bytes)
		// the body's declared hash is stored here; parseAuxData fills in the
		// rest of AuxData.
		tx.AuxData.Hash = &h
	}

	if v, ok := body.MapValueUint(buf, 11); ok && v.Kind == cborx.KindBytes && len(v.Bytes) == 32 {
		var h [32]byte
		copy(h[:], v.Bytes)
		tx.ScriptDataHash = &h
	}

	if v, ok := body.MapValueUint(buf, 13); ok {
		ins, err := parseInputSet(buf, v)
		if err != nil {
			return err
		}
		tx.Collateral = ins
	}

	if v, ok := body.MapValueUint(buf, 14); ok {
		signers, err := parseHashSet28(buf, v)
		if err != nil {
			return err
		}
		tx.RequiredSigners = signers
	}

	if v, ok := body.MapValueUint(buf, 15); ok && v.Kind == cborx.KindUint {
		nid := byte(v.Uint)
		tx.NetworkID = &nid
	}

	if v, ok := body.MapValueUint(buf, 16); ok {
		out, err := parseSingleOutput(buf, v)
		if err != nil {
			return err
		}
		tx.CollateralReturn = &out
	}

	if v, ok := body.MapValueUint(buf, 17); ok && v.Kind == cborx.KindUint {
		total := v.Uint
		tx.TotalCollateral = &total
	}

	if v, ok := body.MapValueUint(buf, 18); ok {
		ins, err := parseInputSet(buf, v)
		if err != nil {
			return err
		}
		tx.ReferenceInputs = ins
	}

	if v, ok := body.MapValueUint(buf, 19); ok {
		tx.VotingProcedures = parseVotingProcedures(buf, v)
	}

	if v, ok := body.MapValueUint(buf, 20); ok {
		tx.ProposalProcedures = parseProposalProcedures(buf, v)
	}

	if v, ok := body.MapValueUint(buf, 21); ok {
		tx.TreasuryValue = v.BigInt()
	}
	if v, ok := body.MapValueUint(buf, 22); ok {
		tx.Donation = v.BigInt()
	}

	return nil
}

func parseInputSet(buf []byte, item cborx.Item) ([]TxInput, error) {
	list := unwrapSet(item)
	out := make([]TxInput, 0, len(list))
	for _, it := range list {
		in, err := parseTxInput(buf, it)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

func unwrapSet(item cborx.Item) []cborx.Item {
	if item.Kind == cborx.KindTag && item.Tag == 258 && len(item.Items) == 1 {
		return item.Items[0].Items
	}
	return item.Items
}

func parseTxInput(buf []byte, item cborx.Item) (TxInput, error) {
	if item.Kind != cborx.KindList || len(item.Items) != 2 {
		return TxInput{}, &ParseError{Reason: "transaction input must be [hash, index]"}
	}
	hashItem, idxItem := item.Items[0], item.Items[1]
	if hashItem.Kind != cborx.KindBytes || len(hashItem.Bytes) != 32 {
		return TxInput{}, &ParseError{Reason: "transaction input hash must be 32 bytes"}
	}
	if idxItem.Kind != cborx.KindUint {
		return TxInput{}, &ParseError{Reason: "transaction input index must be an unsigned integer"}
	}
	var h [32]byte
	copy(h[:], hashItem.Bytes)
	return TxInput{TxHash: h, Index: uint32(idxItem.Uint), Range: ByteRange{item.Start, item.End}}, nil
}

func parseHashSet28(buf []byte, item cborx.Item) ([][28]byte, error) {
	list := unwrapSet(item)
	out := make([][28]byte, 0, len(list))
	for _, it := range list {
		if it.Kind != cborx.KindBytes || len(it.Bytes) != 28 {
			return nil, &ParseError{Reason: "expected a 28-byte hash"}
		}
		var h [28]byte
		copy(h[:], it.Bytes)
		out = append(out, h)
	}
	return out, nil
}

func parseOutputList(buf []byte, item cborx.Item) ([]TxOutput, error) {
	if item.Kind != cborx.KindList {
		return nil, &ParseError{Reason: "outputs must be a list"}
	}
	out := make([]TxOutput, 0, len(item.Items))
	for _, it := range item.Items {
		o, err := parseSingleOutput(buf, it)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// parseSingleOutput handles both the legacy 2-element-array output encoding
// and the post-Babbage map-keyed encoding (address/value/datum/script_ref).
func parseSingleOutput(buf []byte, item cborx.Item) (TxOutput, error) {
	out := TxOutput{Range: ByteRange{item.Start, item.End}}

	var addrItem, valueItem cborx.Item
	var datumItem, refScriptItem *cborx.Item
	var ok bool

	switch item.Kind {
	case cborx.KindMap:
		if addrItem, ok = item.MapValueUint(buf, 0); !ok {
			return out, &ParseError{Reason: "output missing address (key 0)"}
		}
		if valueItem, ok = item.MapValueUint(buf, 1); !ok {
			return out, &ParseError{Reason: "output missing value (key 1)"}
		}
		if v, ok := item.MapValueUint(buf, 2); ok {
			datumItem = &v
		}
		if v, ok := item.MapValueUint(buf, 3); ok {
			refScriptItem = &v
		}
	case cborx.KindList:
		if len(item.Items) < 2 {
			return out, &ParseError{Reason: "legacy output must have at least address and value"}
		}
		addrItem, valueItem = item.Items[0], item.Items[1]
		if len(item.Items) >= 3 {
			datumItem = &item.Items[2]
		}
	default:
		return out, &ParseError{Reason: "output must be a map or array"}
	}

	if addrItem.Kind != cborx.KindBytes {
		return out, &ParseError{Reason: "output address must be a byte string"}
	}
	out.Address = decodeAddress(addrItem.Bytes)

	val, err := parseValue(buf, valueItem)
	if err != nil {
		return out, err
	}
	out.Value = val

	if datumItem != nil {
		d, err := parseDatumField(buf, *datumItem)
		if err != nil {
			return out, err
		}
		out.Datum = d
	}
	if refScriptItem != nil {
		rs, err := parseRefScriptField(buf, *refScriptItem)
		if err != nil {
			return out, err
		}
		out.RefScript = rs
	}

	return out, nil
}

func decodeAddress(raw []byte) Address {
	addr := Address{Raw: raw}
	if len(raw) == 0 {
		return addr
	}
	header := raw[0]
	addr.Network = header & 0x0f
	addrType := header >> 4

	if addrType == 14 || addrType == 15 {
		// Reward/stake address: a single credential, no separate payment part.
		if len(raw) >= 29 {
			kind := CredentialKey
			if addrType == 15 {
				kind = CredentialScript
			}
			var h [28]byte
			copy(h[:], raw[1:29])
			c := Credential{Kind: kind, Hash: h}
			addr.Stake = &c
		}
		return addr
	}
	if addrType >= 8 {
		// Byron-era address: round-tripped by Raw only; Conway-era
		// validation never needs to decode it further.
		return addr
	}
	// Shelley-era base/enterprise/pointer addresses carry a 28-byte payment
	// credential hash immediately after the header byte.
	if len(raw) >= 29 {
		kind := CredentialKey
		if addrType&0x01 == 1 {
			kind = CredentialScript
		}
		var h [28]byte
		copy(h[:], raw[1:29])
		c := Credential{Kind: kind, Hash: h}
		addr.Payment = &c
	}
	if addrType <= 3 && len(raw) >= 57 {
		kind := CredentialKey
		if addrType&0x02 == 2 {
			kind = CredentialScript
		}
		var h [28]byte
		copy(h[:], raw[29:57])
		c := Credential{Kind: kind, Hash: h}
		addr.Stake = &c
	}
	return addr
}

func parseValue(buf []byte, item cborx.Item) (Value, error) {
	if item.Kind == cborx.KindUint {
		return Value{Coin: new(big.Int).SetUint64(item.Uint), Assets: map[PolicyID]map[AssetName]*big.Int{}}, nil
	}
	if item.Kind != cborx.KindList || len(item.Items) != 2 {
		return Value{}, &ParseError{Reason: "multi-asset value must be [coin, assets]"}
	}
	coinItem := item.Items[0]
	if coinItem.Kind != cborx.KindUint {
		return Value{}, &ParseError{Reason: "value coin component must be an unsigned integer"}
	}
	assets, err := parseMultiAssetUnsigned(buf, item.Items[1])
	if err != nil {
		return Value{}, err
	}
	return Value{Coin: new(big.Int).SetUint64(coinItem.Uint), Assets: assets}, nil
}

func parseMultiAssetUnsigned(buf []byte, item cborx.Item) (map[PolicyID]map[AssetName]*big.Int, error) {
	out := map[PolicyID]map[AssetName]*big.Int{}
	if item.Kind != cborx.KindMap {
		return out, &ParseError{Reason: "multi-asset bundle must be a map"}
	}
	for i := 0; i+1 < len(item.Items); i += 2 {
		polItem, assetsItem := item.Items[i], item.Items[i+1]
		if polItem.Kind != cborx.KindBytes || len(polItem.Bytes) != 28 {
			return out, &ParseError{Reason: "policy id must be a 28-byte hash"}
		}
		var pol PolicyID
		copy(pol[:], polItem.Bytes)
		inner := map[AssetName]*big.Int{}
		if assetsItem.Kind != cborx.KindMap {
			return out, &ParseError{Reason: "per-policy asset bundle must be a map"}
		}
		for j := 0; j+1 < len(assetsItem.Items); j += 2 {
			nameItem, qtyItem := assetsItem.Items[j], assetsItem.Items[j+1]
			if nameItem.Kind != cborx.KindBytes {
				return out, &ParseError{Reason: "asset name must be a byte string"}
			}
			if qtyItem.Kind != cborx.KindUint {
				return out, &ParseError{Reason: "output asset quantity must be non-negative"}
			}
			inner[AssetName(nameItem.Bytes)] = new(big.Int).SetUint64(qtyItem.Uint)
		}
		out[pol] = inner
	}
	return out, nil
}

func parseMultiAssetSigned(buf []byte, item cborx.Item) (Value, error) {
	out := Value{Coin: big.NewInt(0), Assets: map[PolicyID]map[AssetName]*big.Int{}}
	if item.Kind != cborx.KindMap {
		return out, &ParseError{Reason: "mint bundle must be a map"}
	}
	for i := 0; i+1 < len(item.Items); i += 2 {
		polItem, assetsItem := item.Items[i], item.Items[i+1]
		if polItem.Kind != cborx.KindBytes || len(polItem.Bytes) != 28 {
			return out, &ParseError{Reason: "policy id must be a 28-byte hash"}
		}
		var pol PolicyID
		copy(pol[:], polItem.Bytes)
		inner := map[AssetName]*big.Int{}
		for j := 0; j+1 < len(assetsItem.Items); j += 2 {
			nameItem, qtyItem := assetsItem.Items[j], assetsItem.Items[j+1]
			qty := qtyItem.BigInt()
			if qty == nil {
				return out, &ParseError{Reason: "mint quantity must be an integer"}
			}
			inner[AssetName(nameItem.Bytes)] = qty
		}
		out.Assets[pol] = inner
	}
	return out, nil
}

func parseDatumField(buf []byte, item cborx.Item) (*Datum, error) {
	if item.Kind == cborx.KindBytes && len(item.Bytes) == 32 {
		var h [32]byte
		copy(h[:], item.Bytes)
		return &Datum{Hash: &h}, nil
	}
	// post-Babbage [0, hash] / [1, inline-datum-tag24-wrapped-cbor] form
	if item.Kind == cborx.KindList && len(item.Items) == 2 && item.Items[0].Kind == cborx.KindUint {
		switch item.Items[0].Uint {
		case 0:
			b := item.Items[1]
			if b.Kind != cborx.KindBytes || len(b.Bytes) != 32 {
				return nil, &ParseError{Reason: "datum hash option must carry a 32-byte hash"}
			}
			var h [32]byte
			copy(h[:], b.Bytes)
			return &Datum{Hash: &h}, nil
		case 1:
			inline := item.Items[1]
			raw := inline.Raw(buf)
			if inline.Kind == cborx.KindTag && inline.Tag == 24 && len(inline.Items) == 1 {
				raw = inline.Items[0].Bytes
			}
			return &Datum{Inline: raw}, nil
		}
	}
	return nil, &ParseError{Reason: "unrecognized datum encoding"}
}

func parseRefScriptField(buf []byte, item cborx.Item) (*ScriptRef, error) {
	raw := item.Raw(buf)
	if item.Kind == cborx.KindTag && item.Tag == 24 && len(item.Items) == 1 {
		raw = item.Items[0].Bytes
	}
	return &ScriptRef{CBOR: raw}, nil
}

func parseCertificateList(buf []byte, item cborx.Item) ([]Certificate, error) {
	if item.Kind != cborx.KindList {
		return nil, &ParseError{Reason: "certificates must be a list"}
	}
	out := make([]Certificate, 0, len(item.Items))
	for _, it := range item.Items {
		if it.Kind != cborx.KindList || len(it.Items) == 0 || it.Items[0].Kind != cborx.KindUint {
			return nil, &ParseError{Reason: "certificate must be [tag, ...]"}
		}
		c := Certificate{Range: ByteRange{it.Start, it.End}}
		switch it.Items[0].Uint {
		case 0:
			// stake_registration = (0, stake_credential)
			c.Kind = CertStakeRegistration
			c.StakeCredential = credFromItem(it.Items[1])
		case 1:
			// stake_deregistration = (1, stake_credential)
			c.Kind = CertStakeDeregistration
			c.StakeCredential = credFromItem(it.Items[1])
		case 2:
			// stake_delegation = (2, stake_credential, pool_keyhash)
			c.Kind = CertStakeDelegation
			c.StakeCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 && it.Items[2].Kind == cborx.KindBytes && len(it.Items[2].Bytes) == 28 {
				var h [28]byte
				copy(h[:], it.Items[2].Bytes)
				c.PoolKeyHash = &h
			}
		case 3:
			// pool_registration = (3, operator, vrf_keyhash, pledge, cost,
			// margin, reward_account, pool_owners, relays, pool_metadata)
			c.Kind = CertPoolRegistration
			if len(it.Items) >= 2 && it.Items[1].Kind == cborx.KindBytes && len(it.Items[1].Bytes) == 28 {
				var h [28]byte
				copy(h[:], it.Items[1].Bytes)
				c.PoolKeyHash = &h
			}
			if len(it.Items) >= 4 {
				c.PoolPledge = it.Items[3].BigInt()
			}
			if len(it.Items) >= 5 {
				c.PoolCost = it.Items[4].BigInt()
			}
		case 4:
			// pool_retirement = (4, pool_keyhash, epoch)
			c.Kind = CertPoolRetirement
			if len(it.Items) >= 2 && it.Items[1].Kind == cborx.KindBytes && len(it.Items[1].Bytes) == 28 {
				var h [28]byte
				copy(h[:], it.Items[1].Bytes)
				c.PoolKeyHash = &h
			}
			if len(it.Items) >= 3 && it.Items[2].Kind == cborx.KindUint {
				epoch := it.Items[2].Uint
				c.PoolRetirementEpoch = &epoch
			}
		case 7:
			// reg_cert = (7, stake_credential, coin)
			c.Kind = CertStakeRegistration
			c.StakeCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.Deposit = it.Items[2].BigInt()
			}
		case 8:
			// unreg_cert = (8, stake_credential, coin)
			c.Kind = CertStakeDeregistration
			c.StakeCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.Deposit = it.Items[2].BigInt()
			}
		case 9:
			// vote_deleg_cert = (9, stake_credential, drep)
			c.Kind = CertVoteDelegation
			c.StakeCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.DRepCredential = credFromItem(it.Items[2])
			}
		case 14:
			// auth_committee_hot_cert = (14, cold_credential, hot_credential)
			c.Kind = CertCommitteeHotKeyRegistration
			c.ColdCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.HotCredential = credFromItem(it.Items[2])
			}
		case 15:
			// resign_committee_cold_cert = (15, cold_credential, anchor/null)
			c.Kind = CertCommitteeColdKeyResignation
			c.ColdCredential = credFromItem(it.Items[1])
		case 16:
			// reg_drep_cert = (16, drep_credential, coin, anchor/null)
			c.Kind = CertDRepRegistration
			c.DRepCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.Deposit = it.Items[2].BigInt()
			}
		case 17:
			// unreg_drep_cert = (17, drep_credential, coin)
			c.Kind = CertDRepDeregistration
			c.DRepCredential = credFromItem(it.Items[1])
			if len(it.Items) >= 3 {
				c.Deposit = it.Items[2].BigInt()
			}
		case 18:
			// update_drep_cert = (18, drep_credential, anchor/null)
			c.Kind = CertDRepUpdate
			c.DRepCredential = credFromItem(it.Items[1])
		default:
			// unknown/legacy certificate kind: preserved structurally but not
			// semantically interpreted by any validator.
		}
		out = append(out, c)
	}
	return out, nil
}

func credFromItem(item cborx.Item) *Credential {
	if item.Kind != cborx.KindList || len(item.Items) != 2 {
		return nil
	}
	tagItem, hashItem := item.Items[0], item.Items[1]
	if tagItem.Kind != cborx.KindUint || hashItem.Kind != cborx.KindBytes || len(hashItem.Bytes) != 28 {
		return nil
	}
	kind := CredentialKey
	if tagItem.Uint == 1 {
		kind = CredentialScript
	}
	var h [28]byte
	copy(h[:], hashItem.Bytes)
	return &Credential{Kind: kind, Hash: h}
}

func parseWithdrawals(buf []byte, item cborx.Item) ([]Withdrawal, error) {
	if item.Kind != cborx.KindMap {
		return nil, &ParseError{Reason: "withdrawals must be a map"}
	}
	out := make([]Withdrawal, 0, len(item.Items)/2)
	for i := 0; i+1 < len(item.Items); i += 2 {
		addrItem, amtItem := item.Items[i], item.Items[i+1]
		if addrItem.Kind != cborx.KindBytes {
			return nil, &ParseError{Reason: "withdrawal key must be a reward address"}
		}
		amt := amtItem.BigInt()
		if amt == nil {
			return nil, &ParseError{Reason: "withdrawal amount must be an integer"}
		}
		out = append(out, Withdrawal{StakeAddress: decodeAddress(addrItem.Bytes), Amount: amt})
	}
	return out, nil
}

func parseVotingProcedures(buf []byte, item cborx.Item) []VotingProcedure {
	if item.Kind != cborx.KindMap {
		return nil
	}
	var out []VotingProcedure
	for i := 0; i+1 < len(item.Items); i += 2 {
		voterItem := item.Items[i]
		if voterItem.Kind != cborx.KindList || len(voterItem.Items) != 2 {
			continue
		}
		cred := credFromItem(voterItem)
		actionsItem := item.Items[i+1]
		if cred == nil || actionsItem.Kind != cborx.KindMap {
			continue
		}
		for j := 0; j+1 < len(actionsItem.Items); j += 2 {
			actionIDItem := actionsItem.Items[j]
			if actionIDItem.Kind != cborx.KindList || len(actionIDItem.Items) != 2 {
				continue
			}
			txIDItem, idxItem := actionIDItem.Items[0], actionIDItem.Items[1]
			if txIDItem.Kind != cborx.KindBytes || len(txIDItem.Bytes) != 32 || idxItem.Kind != cborx.KindUint {
				continue
			}
			var h [32]byte
			copy(h[:], txIDItem.Bytes)
			out = append(out, VotingProcedure{
				Voter:       *cred,
				ActionTxID:  h,
				ActionIndex: uint32(idxItem.Uint),
				Range:       ByteRange{actionIDItem.Start, actionIDItem.End},
			})
		}
	}
	return out
}

func parseProposalProcedures(buf []byte, item cborx.Item) []GovernanceAction {
	if item.Kind != cborx.KindList {
		return nil
	}
	out := make([]GovernanceAction, 0, len(item.Items))
	for _, it := range item.Items {
		if it.Kind != cborx.KindList || len(it.Items) < 2 {
			continue
		}
		depositItem, addrItem := it.Items[0], it.Items[1]
		ga := GovernanceAction{Range: ByteRange{it.Start, it.End}}
		if depositItem.Kind == cborx.KindUint {
			ga.Deposit = new(big.Int).SetUint64(depositItem.Uint)
		}
		if addrItem.Kind == cborx.KindBytes {
			ga.DepositReturnAddress = decodeAddress(addrItem.Bytes)
		}
		if len(it.Items) >= 3 {
			ga.Kind, ga.PrevActionRef = parseGovAction(it.Items[2])
		}
		out = append(out, ga)
	}
	return out
}

// parseGovAction reads a gov_action's variant tag and, for the five kinds
// that chain off a prior enactment (everything but TreasuryWithdrawals and
// Info), its optional gov_action_id.
func parseGovAction(item cborx.Item) (GovActionKind, *GovActionRef) {
	if item.Kind != cborx.KindList || len(item.Items) == 0 || item.Items[0].Kind != cborx.KindUint {
		return GovActionInfo, nil
	}
	kind := GovActionKind(item.Items[0].Uint)
	switch kind {
	case GovActionParameterChange, GovActionHardForkInitiation, GovActionNoConfidence,
		GovActionUpdateCommittee, GovActionNewConstitution:
		if len(item.Items) >= 2 {
			return kind, govActionRefFromItem(item.Items[1])
		}
	}
	return kind, nil
}

func govActionRefFromItem(item cborx.Item) *GovActionRef {
	if item.Kind != cborx.KindList || len(item.Items) != 2 {
		return nil
	}
	txIDItem, idxItem := item.Items[0], item.Items[1]
	if txIDItem.Kind != cborx.KindBytes || len(txIDItem.Bytes) != 32 || idxItem.Kind != cborx.KindUint {
		return nil
	}
	var h [32]byte
	copy(h[:], txIDItem.Bytes)
	return &GovActionRef{TxHash: h, Index: uint32(idxItem.Uint)}
}

func parseWitnessSet(buf []byte, item cborx.Item, tx *Transaction) error {
	if v, ok := item.MapValueUint(buf, 0); ok {
		vks, err := parseVkeyWitnesses(v)
		if err != nil {
			return err
		}
		tx.VkeyWitnesses = vks
	}
	if v, ok := item.MapValueUint(buf, 1); ok {
		tx.NativeScripts = rawScriptList(buf, v)
	}
	if v, ok := item.MapValueUint(buf, 3); ok {
		tx.PlutusV1Scripts = rawScriptList(buf, v)
	}
	if v, ok := item.MapValueUint(buf, 4); ok {
		tx.PlutusData = rawScriptList(buf, v)
	}
	if v, ok := item.MapValueUint(buf, 5); ok {
		rs, err := parseRedeemers(buf, v)
		if err != nil {
			return err
		}
		tx.Redeemers = rs
	}
	if v, ok := item.MapValueUint(buf, 6); ok {
		tx.PlutusV2Scripts = rawScriptList(buf, v)
	}
	if v, ok := item.MapValueUint(buf, 7); ok {
		tx.PlutusV3Scripts = rawScriptList(buf, v)
	}
	return nil
}

func rawScriptList(buf []byte, item cborx.Item) [][]byte {
	if item.Kind != cborx.KindList {
		return nil
	}
	out := make([][]byte, 0, len(item.Items))
	for _, it := range item.Items {
		if it.Kind == cborx.KindBytes {
			out = append(out, it.Bytes)
		} else {
			out = append(out, it.Raw(buf))
		}
	}
	return out
}

func parseVkeyWitnesses(item cborx.Item) ([]VkeyWitness, error) {
	if item.Kind != cborx.KindList {
		return nil, &ParseError{Reason: "vkeywitnesses must be a list"}
	}
	out := make([]VkeyWitness, 0, len(item.Items))
	for _, it := range item.Items {
		if it.Kind != cborx.KindList || len(it.Items) != 2 {
			return nil, &ParseError{Reason: "vkey witness must be [vkey, signature]"}
		}
		vkeyItem, sigItem := it.Items[0], it.Items[1]
		if vkeyItem.Kind != cborx.KindBytes || len(vkeyItem.Bytes) != 32 {
			return nil, &ParseError{Reason: "vkey must be 32 bytes"}
		}
		if sigItem.Kind != cborx.KindBytes || len(sigItem.Bytes) != 64 {
			return nil, &ParseError{Reason: "signature must be 64 bytes"}
		}
		var vk [32]byte
		var sig [64]byte
		copy(vk[:], vkeyItem.Bytes)
		copy(sig[:], sigItem.Bytes)
		out = append(out, VkeyWitness{VKey: vk, Signature: sig})
	}
	return out, nil
}

func parseRedeemers(buf []byte, item cborx.Item) ([]Redeemer, error) {
	var out []Redeemer
	switch item.Kind {
	case cborx.KindMap:
		for i := 0; i+1 < len(item.Items); i += 2 {
			keyItem, valItem := item.Items[i], item.Items[i+1]
			if keyItem.Kind != cborx.KindList || len(keyItem.Items) != 2 {
				return nil, &ParseError{Reason: "redeemer key must be [tag, index]"}
			}
			r, err := buildRedeemer(buf, keyItem.Items[0], keyItem.Items[1], valItem, ByteRange{keyItem.Start, valItem.End})
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	case cborx.KindList:
		for _, it := range item.Items {
			if it.Kind != cborx.KindList || len(it.Items) != 4 {
				return nil, &ParseError{Reason: "legacy redeemer must be [tag, index, data, ex_units]"}
			}
			r, err := buildRedeemer(buf, it.Items[0], it.Items[1], it.Items[2], ByteRange{it.Start, it.End})
			if err != nil {
				return nil, err
			}
			r.ExUnits = parseExUnits(it.Items[3])
			out = append(out, r)
		}
	default:
		return nil, &ParseError{Reason: "redeemers must be a map or a list"}
	}
	return out, nil
}

func buildRedeemer(buf []byte, tagItem, idxItem, valItem cborx.Item, rng ByteRange) (Redeemer, error) {
	if tagItem.Kind != cborx.KindUint || idxItem.Kind != cborx.KindUint {
		return Redeemer{}, &ParseError{Reason: "redeemer tag and index must be unsigned integers"}
	}
	r := Redeemer{Tag: RedeemerTag(tagItem.Uint), Index: uint32(idxItem.Uint), Range: rng}
	if valItem.Kind == cborx.KindList && len(valItem.Items) == 2 {
		r.Data = valItem.Items[0].Raw(buf)
		r.ExUnits = parseExUnits(valItem.Items[1])
	} else {
		r.Data = valItem.Raw(buf)
	}
	return r, nil
}

func parseExUnits(item cborx.Item) ExUnits {
	if item.Kind != cborx.KindList || len(item.Items) != 2 {
		return ExUnits{}
	}
	return ExUnits{Memory: item.Items[0].Uint, Steps: item.Items[1].Uint}
}

func parseAuxData(buf []byte, item cborx.Item, tx *Transaction) {
	if item.Kind == cborx.KindNull {
		return
	}
	tx.AuxData.Present = true
	tx.AuxData.CBOR = item.Raw(buf)
}
