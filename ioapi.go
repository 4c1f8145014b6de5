package fmtio

// Cookie is the opaque handle returned by Begin and
// threaded through every subsequent call, mirroring the original runtime's
// C-callable surface (spec §6). It wraps the byte-width
// InternalFormattedOutput instantiation, matching the original's sole
// extern-instantiated specialization.
type Cookie struct {
	stmt *InternalFormattedOutput[byte]
}

// OutputInteger64 consumes one data edit and converts n under it,
// following spec §4.6. It returns false if the sink rejected an emission
// (end of record) or if err is non-nil (a malformed FORMAT or a
// DescriptorMismatch).
func (c *Cookie) OutputInteger64(n int64) (ok bool, err error) {
	defer recoverFatal(&err)
	var edit DataEdit
	c.stmt.GetNext(&edit, 1)
	return ConvertInteger64(c.stmt, n, edit), nil
}

// OutputReal64 is reserved: spec.md mandates only that an unsupported
// descriptor produce a fatal mismatch and return false. Real/complex
// conversion itself is out of scope (spec §1).
func (c *Cookie) OutputReal64(float64) (ok bool, err error) {
	defer recoverFatal(&err)
	var edit DataEdit
	c.stmt.GetNext(&edit, 1)
	switch edit.Descriptor {
	case 'E':
		// TODO: EN, ES, EX, and real conversion in general.
		return false, nil
	default:
		c.stmt.CrashKind(ErrDescriptorMismatch, "Data edit descriptor '%c' does not correspond to a REAL data item", edit.Descriptor)
		return false, nil
	}
}

// EndIoStatement drains the remaining FORMAT trailer and returns the
// accumulated status.
func (c *Cookie) EndIoStatement() (status Iostat, err error) {
	defer recoverFatal(&err)
	return c.stmt.EndIoStatement(), nil
}

// Begin constructs a Cookie-based statement in the style of the original
// runtime's BeginInternalFormattedOutput(internal, internalLength, format,
// formatLen, scratchArea, scratchBytes, sourceFile, sourceLine). The
// scratch-area parameters are accepted for call-site fidelity and ignored,
// exactly as the original reserves but never uses them for this statement
// kind.
func Begin(buffer []byte, format string, scratchArea []byte, sourceFile string, sourceLine int) (*Cookie, error) {
	_ = scratchArea
	stmt, err := BeginInternalFormattedOutput(buffer, format, sourceFile, sourceLine)
	if err != nil {
		return nil, err
	}
	return &Cookie{stmt: stmt}, nil
}
