package fmtio

// DataEdit describes one data edit descriptor cued up by FormatControl,
// ready to be applied to one or more data items. It is a transient value
// produced by GetNext and consumed by exactly one conversion call; it
// carries a full snapshot of MutableModes rather than a reference, per the
// mode-snapshotting invariant (spec §9, "Mode snapshotting").
type DataEdit struct {
	// Descriptor is the upper-cased edit descriptor letter: one of
	// A I B O Z F D G E.
	Descriptor byte
	// Variation is the upper-cased second letter of an E-variation
	// (EN, ES, EX), or 0 if none.
	Variation byte
	// Width is the field width (w). Always >= 0; a negative width in the
	// FORMAT string is a FormatMalformed condition raised before this
	// value is ever produced.
	Width int
	// Digits is the minimum-digits field (.d), or nil if absent.
	Digits *int
	// ExpoDigits is the exponent-digits field (Ee/Dd), or nil if absent.
	ExpoDigits *int
	// Repeat is how many times the caller may apply this same descriptor
	// before calling GetNext again. Always >= 1.
	Repeat int
	// Modes is a value snapshot of MutableModes at the moment this edit
	// was cued up.
	Modes MutableModes
}
