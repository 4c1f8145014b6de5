package fmtio

// RoundingMode is the active decimal rounding mode, mutated by the
// RN/RZ/RU/RD/RC control edit descriptors. It is only consumed by real/
// complex conversion, which is out of scope here; it is carried so that a
// DataEdit snapshot is complete.
type RoundingMode int

const (
	TiesToEven RoundingMode = iota
	ToZero
	Up
	Down
	TiesAwayFromZero
)

// ModeFlags are the boolean editing modes mutated by BN/BZ, DC/DP, and
// SP/SS/S control edit descriptors.
type ModeFlags uint8

const (
	SignPlus ModeFlags = 1 << iota
	BlankZero
	DecimalComma
)

// MutableModes is the statement-local editing state. Every DataEdit
// carries a value copy taken at the moment it is cued up, so that a later
// control edit's mutation never retroactively affects a data item whose
// conversion has not yet executed.
type MutableModes struct {
	Rounding RoundingMode
	Flags    ModeFlags
}

func (m MutableModes) has(f ModeFlags) bool { return m.Flags&f != 0 }

func (m *MutableModes) set(f ModeFlags)   { m.Flags |= f }
func (m *MutableModes) clear(f ModeFlags) { m.Flags &^= f }
