package fmtio

// FormatContext is the sink capability FormatControl drives. It is
// expressed in rune currency regardless of the FORMAT string's own
// character width: all structural and numeric content in a FORMAT is
// ASCII, so every width widens losslessly into a rune, and a concrete
// statement is responsible for a width-correct narrowing copy into its own
// destination representation.
//
// The default behavior of every method (see BaseContext) is to crash with
// a diagnostic: a statement kind that does not support an operation simply
// does not override it, matching the original runtime's virtual-method
// defaults.
type FormatContext interface {
	// Emit writes data characters (literal text, a Hollerith payload, or a
	// converted data item) to the sink. Returns false if the sink could
	// not accept all of the data (end of record).
	Emit(data []rune) bool
	// HandleSlash processes n record terminators (the / control edit, or
	// the implicit one at the outermost ')').
	HandleSlash(n int)
	// HandleAbsolutePosition processes a Tn control edit.
	HandleAbsolutePosition(n int) bool
	// HandleRelativePosition processes an nX, TLn, or TRn control edit.
	HandleRelativePosition(n int) bool
	// MutableModes returns the statement's current editing modes, mutable
	// in place by control edit descriptors.
	MutableModes() *MutableModes
	// Crash aborts the enclosing I/O statement with a diagnostic tagged
	// ErrFormatMalformed. It never returns normally (it panics a
	// *FatalError internally).
	Crash(format string, args ...any)
	// CrashKind aborts the enclosing I/O statement with a diagnostic
	// tagged with the given sentinel, for conditions that are not a
	// malformed FORMAT (e.g. ErrDescriptorMismatch). It never returns
	// normally.
	CrashKind(sentinel error, format string, args ...any)
}

// BaseContext is embedded by concrete statement types to supply the
// default-abort behavior for every FormatContext method. A concrete type
// overrides only the methods it legitimately supports by defining its own
// method of the same name; Go's embedding-based method resolution picks
// the outer definition when present and falls back to BaseContext
// otherwise, which is the capability-default pattern spec §9 calls for.
type BaseContext struct {
	Modes  MutableModes
	Source SourcePosition
}

func (c *BaseContext) MutableModes() *MutableModes { return &c.Modes }

func (c *BaseContext) Crash(format string, args ...any) {
	crash(ErrFormatMalformed, c.Source, format, args...)
}

func (c *BaseContext) CrashKind(sentinel error, format string, args ...any) {
	crash(sentinel, c.Source, format, args...)
}

func (c *BaseContext) Emit([]rune) bool {
	c.Crash("Cannot emit data from this FORMAT string")
	return false
}

func (c *BaseContext) HandleSlash(int) {
	c.Crash("A / control edit descriptor may not appear in this FORMAT string")
}

func (c *BaseContext) HandleAbsolutePosition(int) bool {
	c.Crash("A Tn control edit descriptor may not appear in this FORMAT string")
	return false
}

func (c *BaseContext) HandleRelativePosition(int) bool {
	c.Crash("An nX, TLn, or TRn control edit descriptor may not appear in this FORMAT string")
	return false
}
