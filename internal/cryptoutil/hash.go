// Package cryptoutil wraps the handful of hash and signature primitives
// Phase-1 validators need: Blake2b-256 (transaction hash, auxiliary-data
// hash, datum hash, script-data hash) and Ed25519 (witness verification).
package cryptoutil

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"
)

// Blake2b256 returns the 32-byte Blake2b hash of data, the hash function
// used throughout the Cardano ledger for transaction, datum, script-data
// and auxiliary-data hashing.
func Blake2b256(data []byte) [32]byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // a nil-key 256-bit blake2b instance cannot fail to construct
	}
	h.Write(data)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Blake2b224 returns the 28-byte Blake2b hash used for verification-key and
// script hashes throughout the ledger.
func Blake2b224(data []byte) [28]byte {
	h, err := blake2b.New(28, nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	var out [28]byte
	copy(out[:], h.Sum(nil))
	return out
}

// VerifyEd25519 reports whether sig is a valid Ed25519 signature over msg
// under the given 32-byte public key.
func VerifyEd25519(pubKey [32]byte, msg []byte, sig [64]byte) bool {
	return ed25519.Verify(ed25519.PublicKey(pubKey[:]), msg, sig[:])
}
