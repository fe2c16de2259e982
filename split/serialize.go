package split

import (
	"encoding/binary"
	"fmt"
)

const (
	registryHeaderSize  = 4  // num_entries(4)
	registryEntrySize   = 21 // address(20) + percent(1)
	registryTrailerSize = 1  // locked flag(1)
)

// SerializeRegistry encodes a registry to its binary format:
// num_entries(4) || [address(20) percent(1)]... || locked(1), big-endian.
func SerializeRegistry(r *Registry) []byte {
	size := registryHeaderSize + registryEntrySize*len(r.entries) + registryTrailerSize
	buf := make([]byte, size)
	offset := 0

	binary.BigEndian.PutUint32(buf[offset:offset+4], uint32(len(r.entries)))
	offset += 4

	for _, entry := range r.entries {
		copy(buf[offset:offset+20], entry.Address[:])
		offset += 20
		buf[offset] = entry.Percent
		offset++
	}

	if r.locked {
		buf[offset] = 1
	}
	return buf
}

// DeserializeRegistry decodes binary data produced by SerializeRegistry.
func DeserializeRegistry(data []byte) (*Registry, error) {
	if len(data) < registryHeaderSize+registryTrailerSize {
		return nil, fmt.Errorf("%w: too short (%d bytes)", ErrInvalidRegistryData, len(data))
	}
	offset := 0

	numEntries := int(binary.BigEndian.Uint32(data[offset : offset+4]))
	offset += 4

	expectedSize := registryHeaderSize + registryEntrySize*numEntries + registryTrailerSize
	if len(data) != expectedSize {
		return nil, fmt.Errorf("%w: expected %d bytes for %d entries, got %d",
			ErrInvalidRegistryData, expectedSize, numEntries, len(data))
	}

	r := &Registry{entries: make([]Entry, numEntries)}
	for i := 0; i < numEntries; i++ {
		copy(r.entries[i].Address[:], data[offset:offset+20])
		offset += 20
		r.entries[i].Percent = data[offset]
		offset++
	}

	r.locked = data[offset] == 1

	// An empty registry is a valid unconfigured state; anything else must
	// satisfy the same invariants Set enforces.
	if numEntries > 0 {
		if err := validateEntries(r.entries); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRegistryData, err)
		}
	}
	return r, nil
}
