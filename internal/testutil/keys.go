// Package testutil derives deterministic Ed25519 keypairs and payment
// credentials from a fixed BIP-39 mnemonic, the same derivation path the
// wallet address helper uses, so tests can sign fixtures with a real key
// instead of forging witness bytes.
package testutil

import (
	"strings"

	"github.com/echovl/cardano-go/crypto"
	bip39 "github.com/tyler-smith/go-bip39"

	"github.com/go-cardano/ledgercheck/internal/cryptoutil"
	"github.com/go-cardano/ledgercheck/internal/txmodel"
)

// TestMnemonic is a fixed, well-known 12-word BIP-39 test mnemonic. It signs
// no real funds; it exists only to derive reproducible keys for tests.
const TestMnemonic = "test walk nut penalty hip pave soap entry language right filter choice"

// Keypair is a derived payment keypair together with the key-hash credential
// it resolves to in a transaction's witness set.
type Keypair struct {
	Public     crypto.XPubKey
	PrivateKey crypto.XPrvKey
	Credential txmodel.Credential
}

// DerivePaymentKey derives the payment key at 1852'/1815'/account'/0/index
// from the given words, the same path the wallet address helper uses.
func DerivePaymentKey(words []string, account, index uint32) (Keypair, error) {
	mnemonic := strings.Join(words, " ")
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return Keypair{}, err
	}

	root := crypto.NewXPrvKeyFromEntropy(entropy, "")
	acct := root.Derive(1852 + 0x80000000).Derive(1815 + 0x80000000).Derive(account + 0x80000000)
	chain := acct.Derive(0)
	addrKey := chain.Derive(index)

	pub := addrKey.PubKey()
	hash := cryptoutil.Blake2b224(pub.Bytes())

	return Keypair{
		Public:     pub,
		PrivateKey: addrKey,
		Credential: txmodel.Credential{Kind: txmodel.CredentialKey, Hash: hash},
	}, nil
}

// DefaultKeypair derives the first payment key from TestMnemonic, the
// keypair most tests reach for when they need a signer that isn't the
// specific subject of the test.
func DefaultKeypair() (Keypair, error) {
	return DerivePaymentKey(strings.Split(TestMnemonic, " "), 0, 0)
}

// SignBodyHash signs a pre-computed transaction body hash and returns the
// vkey witness fields a test fixture can attach to txmodel.Transaction.
func (k Keypair) SignBodyHash(bodyHash [32]byte) (vkey [32]byte, sig [64]byte) {
	copy(vkey[:], k.Public.Bytes())
	copy(sig[:], k.PrivateKey.Sign(bodyHash[:]))
	return vkey, sig
}
