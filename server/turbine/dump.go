package turbine

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// stateVersion is written with every BlockState so that readers can detect
// dumps with a different property layout.
const stateVersion int32 = 1

// BlockState is the encoded state of a rotor component at a position, as
// written by WriteStates.
type BlockState struct {
	Name       string         `nbt:"name"`
	Properties map[string]any `nbt:"states"`
	Version    int32          `nbt:"version"`
	X          int32          `nbt:"x"`
	Y          int32          `nbt:"y"`
	Z          int32          `nbt:"z"`
}

type stateDump struct {
	States []BlockState `nbt:"states"`
}

// BlockStates encodes the current state of every rotor component of the
// Host, sorted by position.
func (h *Host) BlockStates() ([]BlockState, error) {
	components := h.Components()
	states := make([]BlockState, 0, len(components))
	for _, c := range components {
		name, properties, err := h.EncodeBlock(c.Pos)
		if err != nil {
			return nil, err
		}
		states = append(states, BlockState{
			Name:       name,
			Properties: properties,
			Version:    stateVersion,
			X:          int32(c.Pos[0]),
			Y:          int32(c.Pos[1]),
			Z:          int32(c.Pos[2]),
		})
	}
	return states, nil
}

// WriteStates writes the block states passed to w as a zstd compressed NBT
// compound.
func WriteStates(w io.Writer, states []BlockState) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return fmt.Errorf("create zstd writer: %w", err)
	}
	if err := nbt.NewEncoder(enc).Encode(stateDump{States: states}); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode states: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush states: %w", err)
	}
	return nil
}

// ReadStates reads block states written by WriteStates from r.
func ReadStates(r io.Reader) ([]BlockState, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create zstd reader: %w", err)
	}
	defer dec.Close()

	var dump stateDump
	if err := nbt.NewDecoder(dec).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode states: %w", err)
	}
	return dump.States, nil
}
