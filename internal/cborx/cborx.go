// Package cborx decodes CBOR the way a transaction validator needs it: every
// decoded item keeps the byte range it came from in the original buffer, so a
// caller can re-hash or re-serialize an exact sub-structure without having to
// re-encode it byte-for-byte. gouroboros' own decoder discards this
// information once it has built its Go struct, which is why this package
// exists instead of decoding twice with two different libraries.
package cborx

import (
	"errors"
	"fmt"
	"math/big"
)

// Kind identifies the CBOR major type (plus the major-7 simple/float split)
// of a decoded Item.
type Kind uint8

const (
	KindUint Kind = iota
	KindNegInt
	KindBytes
	KindText
	KindList
	KindMap
	KindTag
	KindBool
	KindNull
	KindUndefined
	KindFloat
)

// Item is one decoded CBOR value together with its [Start,End) byte range in
// the buffer it was decoded from.
type Item struct {
	Start, End int
	Kind       Kind
	Indefinite bool

	Uint  uint64
	Bytes []byte
	Text  string
	Float float64

	// Tag holds the tag number for KindTag; Items[0] is the tagged value.
	Tag uint64

	// Items holds list elements for KindList, or a flattened
	// [key0, value0, key1, value1, ...] sequence for KindMap.
	Items []Item
}

// BigInt returns the arbitrary-precision integer value of an Item that
// decodes a CBOR integer, including the bignum tag-2/tag-3 fallback used for
// values outside the int64/uint64 range.
func (it Item) BigInt() *big.Int {
	switch it.Kind {
	case KindUint:
		return new(big.Int).SetUint64(it.Uint)
	case KindNegInt:
		n := new(big.Int).SetUint64(it.Uint)
		return n.Neg(n).Sub(n, big.NewInt(1))
	case KindTag:
		if len(it.Items) != 1 || it.Items[0].Kind != KindBytes {
			return nil
		}
		n := new(big.Int).SetBytes(it.Items[0].Bytes)
		if it.Tag == 3 {
			n.Neg(n).Sub(n, big.NewInt(1))
		}
		return n
	}
	return nil
}

// Raw returns the exact sub-slice of buf this item was decoded from.
func (it Item) Raw(buf []byte) []byte {
	return buf[it.Start:it.End]
}

// MapValue looks up the value whose key item has the same major type and raw
// bytes as k, within a KindMap item's flattened key/value sequence.
func (it Item) MapValue(buf []byte, k Item) (Item, bool) {
	if it.Kind != KindMap {
		return Item{}, false
	}
	kraw := k.Raw(buf)
	for i := 0; i+1 < len(it.Items); i += 2 {
		if sameRaw(it.Items[i].Raw(buf), kraw) {
			return it.Items[i+1], true
		}
	}
	return Item{}, false
}

// MapValueUint looks up a map entry by small unsigned integer key, the
// common case for Cardano's int-keyed transaction body and output maps.
func (it Item) MapValueUint(buf []byte, key uint64) (Item, bool) {
	if it.Kind != KindMap {
		return Item{}, false
	}
	for i := 0; i+1 < len(it.Items); i += 2 {
		if it.Items[i].Kind == KindUint && it.Items[i].Uint == key {
			return it.Items[i+1], true
		}
	}
	return Item{}, false
}

func sameRaw(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ErrTruncated is returned whenever the stream ends in the middle of an item.
var ErrTruncated = errors.New("cborx: truncated input")

// Decode parses a single top-level CBOR item from buf, requiring the item
// consume the entire buffer.
func Decode(buf []byte) (Item, error) {
	s := &stream{buf: buf}
	it, err := s.decodeItem()
	if err != nil {
		return Item{}, err
	}
	if s.pos != len(buf) {
		return Item{}, fmt.Errorf("cborx: %d trailing bytes after top-level item", len(buf)-s.pos)
	}
	return it, nil
}

// DecodePrefix parses a single CBOR item starting at the beginning of buf
// and returns it along with the number of bytes consumed, allowing callers to
// decode a sequence of concatenated items.
func DecodePrefix(buf []byte) (Item, int, error) {
	s := &stream{buf: buf}
	it, err := s.decodeItem()
	if err != nil {
		return Item{}, 0, err
	}
	return it, s.pos, nil
}

type stream struct {
	buf []byte
	pos int
}

func (s *stream) remaining() int { return len(s.buf) - s.pos }

func (s *stream) byteAt(i int) (byte, error) {
	if i >= len(s.buf) {
		return 0, ErrTruncated
	}
	return s.buf[i], nil
}

// head parses the major type / additional-info byte and any following
// length-extension bytes, returning the major type, the decoded argument
// (length, integer value, or tag number depending on major type) and whether
// the additional-info nibble signalled an indefinite-length item (31).
func (s *stream) head() (major byte, arg uint64, indefinite bool, err error) {
	b0, err := s.byteAt(s.pos)
	if err != nil {
		return 0, 0, false, err
	}
	major = b0 >> 5
	info := b0 & 0x1f
	s.pos++

	switch {
	case info < 24:
		return major, uint64(info), false, nil
	case info == 24:
		b, err := s.byteAt(s.pos)
		if err != nil {
			return 0, 0, false, err
		}
		s.pos++
		return major, uint64(b), false, nil
	case info == 25:
		if s.remaining() < 2 {
			return 0, 0, false, ErrTruncated
		}
		v := uint64(s.buf[s.pos])<<8 | uint64(s.buf[s.pos+1])
		s.pos += 2
		return major, v, false, nil
	case info == 26:
		if s.remaining() < 4 {
			return 0, 0, false, ErrTruncated
		}
		v := uint64(0)
		for i := 0; i < 4; i++ {
			v = v<<8 | uint64(s.buf[s.pos+i])
		}
		s.pos += 4
		return major, v, false, nil
	case info == 27:
		if s.remaining() < 8 {
			return 0, 0, false, ErrTruncated
		}
		v := uint64(0)
		for i := 0; i < 8; i++ {
			v = v<<8 | uint64(s.buf[s.pos+i])
		}
		s.pos += 8
		return major, v, false, nil
	case info == 31:
		return major, 0, true, nil
	}
	return 0, 0, false, fmt.Errorf("cborx: reserved additional info %d", info)
}

func (s *stream) decodeItem() (Item, error) {
	start := s.pos
	major, arg, indefinite, err := s.head()
	if err != nil {
		return Item{}, err
	}

	switch major {
	case 0: // unsigned int
		return Item{Start: start, End: s.pos, Kind: KindUint, Uint: arg}, nil

	case 1: // negative int, encoded value is -1-arg
		return Item{Start: start, End: s.pos, Kind: KindNegInt, Uint: arg}, nil

	case 2: // byte string
		bs, err := s.decodeChunks(indefinite, arg, false)
		if err != nil {
			return Item{}, err
		}
		return Item{Start: start, End: s.pos, Kind: KindBytes, Bytes: bs, Indefinite: indefinite}, nil

	case 3: // text string
		bs, err := s.decodeChunks(indefinite, arg, true)
		if err != nil {
			return Item{}, err
		}
		return Item{Start: start, End: s.pos, Kind: KindText, Text: string(bs), Indefinite: indefinite}, nil

	case 4: // array
		var items []Item
		if indefinite {
			for {
				b, err := s.byteAt(s.pos)
				if err != nil {
					return Item{}, err
				}
				if b == 0xff {
					s.pos++
					break
				}
				it, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				items = append(items, it)
			}
		} else {
			items = make([]Item, 0, arg)
			for i := uint64(0); i < arg; i++ {
				it, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				items = append(items, it)
			}
		}
		return Item{Start: start, End: s.pos, Kind: KindList, Items: items, Indefinite: indefinite}, nil

	case 5: // map
		var items []Item
		if indefinite {
			for {
				b, err := s.byteAt(s.pos)
				if err != nil {
					return Item{}, err
				}
				if b == 0xff {
					s.pos++
					break
				}
				k, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				v, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				items = append(items, k, v)
			}
		} else {
			items = make([]Item, 0, 2*arg)
			for i := uint64(0); i < arg; i++ {
				k, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				v, err := s.decodeItem()
				if err != nil {
					return Item{}, err
				}
				items = append(items, k, v)
			}
		}
		return Item{Start: start, End: s.pos, Kind: KindMap, Items: items, Indefinite: indefinite}, nil

	case 6: // tag
		if arg == 258 {
			// tag 258: a set, CDDL-wise a tagged array; decoded like any
			// other tag, as a KindTag item whose Items[0] is the array.
		}
		inner, err := s.decodeItem()
		if err != nil {
			return Item{}, err
		}
		return Item{Start: start, End: s.pos, Kind: KindTag, Tag: arg, Items: []Item{inner}}, nil

	case 7: // simple / float
		switch {
		case indefinite:
			return Item{}, errors.New("cborx: unexpected break outside indefinite container")
		case arg == 20:
			return Item{Start: start, End: s.pos, Kind: KindBool, Uint: 0}, nil
		case arg == 21:
			return Item{Start: start, End: s.pos, Kind: KindBool, Uint: 1}, nil
		case arg == 22:
			return Item{Start: start, End: s.pos, Kind: KindNull}, nil
		case arg == 23:
			return Item{Start: start, End: s.pos, Kind: KindUndefined}, nil
		default:
			return Item{Start: start, End: s.pos, Kind: KindFloat, Uint: arg}, nil
		}
	}

	return Item{}, fmt.Errorf("cborx: unsupported major type %d", major)
}

// decodeChunks decodes the byte/text payload of major types 2/3, following
// indefinite-length chunking when indefinite is set.
func (s *stream) decodeChunks(indefinite bool, arg uint64, text bool) ([]byte, error) {
	if !indefinite {
		if s.remaining() < int(arg) {
			return nil, ErrTruncated
		}
		out := append([]byte(nil), s.buf[s.pos:s.pos+int(arg)]...)
		s.pos += int(arg)
		return out, nil
	}

	var out []byte
	for {
		b, err := s.byteAt(s.pos)
		if err != nil {
			return nil, err
		}
		if b == 0xff {
			s.pos++
			return out, nil
		}
		chunk, err := s.decodeItem()
		if err != nil {
			return nil, err
		}
		wantMajor := byte(2)
		if text {
			wantMajor = 3
		}
		if chunk.Kind != KindBytes && chunk.Kind != KindText {
			return nil, fmt.Errorf("cborx: chunk of indefinite major %d has wrong type", wantMajor)
		}
		if chunk.Indefinite {
			return nil, errors.New("cborx: nested indefinite chunk not allowed")
		}
		if text {
			out = append(out, []byte(chunk.Text)...)
		} else {
			out = append(out, chunk.Bytes...)
		}
	}
}
