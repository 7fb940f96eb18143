package queue

import (
	"encoding/binary"
	"fmt"

	"github.com/go-restruct/restruct"
)

// byteOrder is fixed and explicit so the encoding of a given value is a
// deterministic function of its fields alone, independent of the host's native
// endianness. spec.md §9 calls this out directly: removal from a sorted set
// requires a byte-identical member, so any nondeterminism here would leak queue
// entries forever.
var byteOrder = binary.BigEndian

// EncodePlayer produces the canonical byte encoding of a QueuedPlayer. The same
// bytes are used both as the per-player record value and as the sorted-set
// member, so two calls with equal input must produce byte-identical output.
func EncodePlayer(p QueuedPlayer) ([]byte, error) {
	b, err := restruct.Pack(byteOrder, &p)
	if err != nil {
		return nil, fmt.Errorf("encode queued player: %w", err)
	}
	return b, nil
}

// DecodePlayer is the inverse of EncodePlayer.
func DecodePlayer(b []byte) (QueuedPlayer, error) {
	var p QueuedPlayer
	if err := restruct.Unpack(b, byteOrder, &p); err != nil {
		return QueuedPlayer{}, fmt.Errorf("decode queued player: %w", err)
	}
	return p, nil
}

// EncodeMatch produces the canonical byte encoding of a Match.
func EncodeMatch(m Match) ([]byte, error) {
	b, err := restruct.Pack(byteOrder, &m)
	if err != nil {
		return nil, fmt.Errorf("encode match: %w", err)
	}
	return b, nil
}

// DecodeMatch is the inverse of EncodeMatch.
func DecodeMatch(b []byte) (Match, error) {
	var m Match
	if err := restruct.Unpack(b, byteOrder, &m); err != nil {
		return Match{}, fmt.Errorf("decode match: %w", err)
	}
	return m, nil
}

// stringList is the on-wire shape for a RegionSet (a plain list<string>).
type stringList struct {
	Count uint16 `struct:"sizeof=Values"`
	Values []sizedString
}

type sizedString struct {
	Len   uint16 `struct:"sizeof=Value"`
	Value string
}

// EncodeStringList encodes a RegionSet / list<string> deterministically.
func EncodeStringList(values []string) ([]byte, error) {
	sl := stringList{Values: make([]sizedString, len(values))}
	for i, v := range values {
		sl.Values[i] = sizedString{Value: v}
	}
	b, err := restruct.Pack(byteOrder, &sl)
	if err != nil {
		return nil, fmt.Errorf("encode string list: %w", err)
	}
	return b, nil
}

// DecodeStringList is the inverse of EncodeStringList.
func DecodeStringList(b []byte) ([]string, error) {
	var sl stringList
	if err := restruct.Unpack(b, byteOrder, &sl); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	out := make([]string, len(sl.Values))
	for i, v := range sl.Values {
		out[i] = v.Value
	}
	return out, nil
}
