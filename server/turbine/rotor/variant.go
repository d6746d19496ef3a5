package rotor

import (
	"fmt"
	"strings"

	"github.com/dm-vev/turbine/server/world"
)

// Kind is the kind of a rotor component: a shaft or a blade.
type Kind uint8

const (
	// KindShaft is the central shaft of a rotor that blades attach to.
	KindShaft Kind = iota
	// KindBlade is a blade extending sideways from a shaft.
	KindBlade
)

// String ...
func (k Kind) String() string {
	switch k {
	case KindShaft:
		return "shaft"
	case KindBlade:
		return "blade"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// KindByName returns the Kind with the name passed, as returned by
// Kind.String.
func KindByName(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "shaft":
		return KindShaft, true
	case "blade":
		return KindBlade, true
	}
	return 0, false
}

// Variant is the tier of a turbine. It selects which block identities
// represent shafts and blades in the grid.
type Variant uint8

const (
	// VariantBasic is the tier of basic turbines.
	VariantBasic Variant = iota
	// VariantReinforced is the tier of reinforced turbines.
	VariantReinforced

	variantCount
)

// String ...
func (v Variant) String() string {
	switch v {
	case VariantBasic:
		return "basic"
	case VariantReinforced:
		return "reinforced"
	}
	return fmt.Sprintf("Variant(%d)", uint8(v))
}

// VariantByName returns the Variant with the name passed, as returned by
// Variant.String.
func VariantByName(name string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "basic":
		return VariantBasic, true
	case "reinforced":
		return VariantReinforced, true
	}
	return 0, false
}

// Variants returns all known variants.
func Variants() []Variant {
	return []Variant{VariantBasic, VariantReinforced}
}

// Identities holds the block identities of the shaft and blade of one
// Variant.
type Identities struct {
	Shaft world.Identity
	Blade world.Identity
}

// Of returns the identity used for components of the Kind passed, or an
// empty identity if k is not a known Kind.
func (i Identities) Of(k Kind) world.Identity {
	switch k {
	case KindShaft:
		return i.Shaft
	case KindBlade:
		return i.Blade
	}
	return ""
}

// VariantTable maps every Variant to its block identities.
type VariantTable [variantCount]Identities

// DefaultVariantTable returns the identities registered by the reactor
// content for each variant.
func DefaultVariantTable() VariantTable {
	return VariantTable{
		VariantBasic: {
			Shaft: "extremereactors:basic_turbinerotorshaft",
			Blade: "extremereactors:basic_turbinerotorblade",
		},
		VariantReinforced: {
			Shaft: "extremereactors:reinforced_turbinerotorshaft",
			Blade: "extremereactors:reinforced_turbinerotorblade",
		},
	}
}

// Lookup returns the identities of a Variant. Unknown variants return empty
// identities, which never match a block in the grid.
func (t VariantTable) Lookup(v Variant) Identities {
	if v >= variantCount {
		return Identities{}
	}
	return t[v]
}

// Component returns the Kind and Variant of the rotor component with the
// identity passed. False is returned if id is not a rotor component of any
// variant.
func (t VariantTable) Component(id world.Identity) (Kind, Variant, bool) {
	if id == "" {
		return 0, 0, false
	}
	for _, v := range Variants() {
		switch id {
		case t[v].Shaft:
			return KindShaft, v, true
		case t[v].Blade:
			return KindBlade, v, true
		}
	}
	return 0, 0, false
}
