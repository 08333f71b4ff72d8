package utils

import (
	"bytes"
	"fmt"
)

// MPTWalker is the external collaborator contract for Merkle-Patricia-Trie proof
// verification: given a claimed root, a key, and an ordered list of trie nodes, it
// returns the leaf bytes under that root for that key, or ok=false if the node chain
// does not form a valid Patricia path. The core consumes only this interface; its
// internal trie-walking logic is a reference implementation, not the contract.
type MPTWalker interface {
	VerifyLeaf(root []byte, key []byte, nodes [][]byte) (leaf []byte, ok bool)
}

// referenceMPTWalker is a minimal RLP/hex-prefix trie walker sufficient to validate a
// single root-to-leaf path out of an ordered proof-node list. Unlike the historical
// implementation it is grounded on, embedded ("inline") nodes shorter than a hash are
// tracked with an explicit flag rather than a zero-hash sentinel, avoiding an
// ambiguous all-zero expected-hash state.
type referenceMPTWalker struct{}

// NewMPTWalker returns the default MPTWalker implementation.
func NewMPTWalker() MPTWalker { return referenceMPTWalker{} }

func (referenceMPTWalker) VerifyLeaf(root []byte, key []byte, nodes [][]byte) ([]byte, bool) {
	expectedHash := append([]byte(nil), root...)
	inline := false
	nibbles := bytesToNibbles(key)
	pos := 0

	for _, node := range nodes {
		if !inline {
			if !bytes.Equal(rawKeccak256(node), expectedHash) {
				return nil, false
			}
		}

		items, err := decodeRLPList(node)
		if err != nil {
			return nil, false
		}

		switch len(items) {
		case 17: // branch node
			if pos >= len(nibbles) {
				return items[16], len(items[16]) > 0
			}
			idx := nibbles[pos]
			if idx > 15 {
				return nil, false
			}
			next := items[idx]
			pos++
			if len(next) == 0 {
				return nil, false
			}
			expectedHash, inline = nextNodeRef(next)
		case 2: // extension or leaf node
			hpNibbles, isLeaf := decodeHexPrefix(items[0])
			if pos+len(hpNibbles) > len(nibbles) {
				return nil, false
			}
			for i, nb := range hpNibbles {
				if nibbles[pos+i] != nb {
					return nil, false
				}
			}
			pos += len(hpNibbles)
			if isLeaf {
				if pos != len(nibbles) {
					return nil, false
				}
				return items[1], true
			}
			expectedHash, inline = nextNodeRef(items[1])
		default:
			return nil, false
		}
	}
	return nil, false
}

// nextNodeRef interprets an RLP node reference: a 32-byte value is a hash of the next
// node to hash-check; anything shorter is the node itself, embedded inline.
func nextNodeRef(ref []byte) (hashOrNode []byte, inline bool) {
	if len(ref) == 32 {
		return append([]byte(nil), ref...), false
	}
	return append([]byte(nil), ref...), true
}

func bytesToNibbles(b []byte) []byte {
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[2*i] = c >> 4
		out[2*i+1] = c & 0x0f
	}
	return out
}

// decodeHexPrefix decodes the compact hex-prefix encoding used by extension/leaf
// nodes: the first nibble's low bit flags odd length, the next bit flags a leaf.
func decodeHexPrefix(encoded []byte) (nibbles []byte, isLeaf bool) {
	if len(encoded) == 0 {
		return nil, false
	}
	first := encoded[0]
	isLeaf = (first>>5)&1 == 1
	odd := (first>>4)&1 == 1

	all := bytesToNibbles(encoded)
	if odd {
		return all[1:], isLeaf
	}
	return all[2:], isLeaf
}

// decodeRLPList decodes the top-level RLP list items of a node, returning each item's
// raw payload bytes. Only the list-header forms needed for branch/extension/leaf
// nodes are handled; anything else is rejected.
func decodeRLPList(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("utils: empty RLP node")
	}
	payload, err := rlpListPayload(data)
	if err != nil {
		return nil, err
	}
	var items [][]byte
	for len(payload) > 0 {
		item, rest, err := rlpNextItem(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		payload = rest
	}
	return items, nil
}

func rlpListPayload(data []byte) ([]byte, error) {
	b0 := data[0]
	switch {
	case b0 >= 0xc0 && b0 <= 0xf7:
		length := int(b0 - 0xc0)
		if len(data) < 1+length {
			return nil, fmt.Errorf("utils: truncated RLP list")
		}
		return data[1 : 1+length], nil
	case b0 > 0xf7:
		lenOfLen := int(b0 - 0xf7)
		if len(data) < 1+lenOfLen {
			return nil, fmt.Errorf("utils: truncated RLP list length")
		}
		length := 0
		for _, bb := range data[1 : 1+lenOfLen] {
			length = length<<8 | int(bb)
		}
		if len(data) < 1+lenOfLen+length {
			return nil, fmt.Errorf("utils: truncated RLP list")
		}
		return data[1+lenOfLen : 1+lenOfLen+length], nil
	default:
		return nil, fmt.Errorf("utils: expected RLP list header, got 0x%02x", b0)
	}
}

func rlpNextItem(data []byte) (item []byte, rest []byte, err error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("utils: empty RLP item")
	}
	b0 := data[0]
	switch {
	case b0 < 0x80:
		return data[0:1], data[1:], nil
	case b0 <= 0xb7:
		length := int(b0 - 0x80)
		if len(data) < 1+length {
			return nil, nil, fmt.Errorf("utils: truncated RLP string")
		}
		return data[1 : 1+length], data[1+length:], nil
	case b0 <= 0xbf:
		lenOfLen := int(b0 - 0xb7)
		if len(data) < 1+lenOfLen {
			return nil, nil, fmt.Errorf("utils: truncated RLP string length")
		}
		length := 0
		for _, bb := range data[1 : 1+lenOfLen] {
			length = length<<8 | int(bb)
		}
		if len(data) < 1+lenOfLen+length {
			return nil, nil, fmt.Errorf("utils: truncated RLP string")
		}
		return data[1+lenOfLen : 1+lenOfLen+length], data[1+lenOfLen+length:], nil
	default:
		// nested list item: return its raw encoding so callers that expect a
		// node reference can still hash/compare it.
		payload, perr := rlpListPayload(data)
		if perr != nil {
			return nil, nil, perr
		}
		total := len(data) - len(rlpRemainderAfterListPayload(data, payload))
		return data[:total], data[total:], nil
	}
}

func rlpRemainderAfterListPayload(data, payload []byte) []byte {
	// payload is a sub-slice of data; everything after it is the remainder.
	idx := bytes.Index(data, payload)
	if idx < 0 {
		return nil
	}
	return data[idx+len(payload):]
}
