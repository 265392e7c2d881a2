package cborx

// Canonical encoders for the handful of CBOR heads a validator needs to
// rebuild from scratch: the script-data-hash preimage (redeemers + datums +
// a language-view map) is the one structure this package has to re-encode
// rather than slice out of the original transaction bytes, since the ledger
// spec defines it as a function of values drawn from several independent
// parts of the transaction and the cost model.

func head(major byte, n uint64) []byte {
	switch {
	case n < 24:
		return []byte{major<<5 | byte(n)}
	case n <= 0xff:
		return []byte{major<<5 | 24, byte(n)}
	case n <= 0xffff:
		return []byte{major<<5 | 25, byte(n >> 8), byte(n)}
	case n <= 0xffffffff:
		return []byte{major<<5 | 26, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	default:
		return []byte{
			major<<5 | 27,
			byte(n >> 56), byte(n >> 48), byte(n >> 40), byte(n >> 32),
			byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n),
		}
	}
}

// EncodeUint returns the canonical encoding of a major-0 unsigned integer.
func EncodeUint(n uint64) []byte { return head(0, n) }

// EncodeBytes returns the canonical definite-length byte string encoding.
func EncodeBytes(b []byte) []byte {
	out := head(2, uint64(len(b)))
	return append(out, b...)
}

// EncodeArrayHeader returns the definite-length array head for n elements;
// the caller appends the encoded elements itself.
func EncodeArrayHeader(n int) []byte { return head(4, uint64(n)) }

// EncodeMapHeader returns the definite-length map head for n pairs; the
// caller appends the encoded key/value pairs itself.
func EncodeMapHeader(n int) []byte { return head(5, uint64(n)) }

// EncodeTag returns the head for a tagged value; the caller appends the
// encoding of the tagged item itself.
func EncodeTag(tag uint64) []byte { return head(6, tag) }
