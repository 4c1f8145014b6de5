// Package fmtio implements the FORMAT-directed formatted I/O core of a
// FORTRAN language runtime: a parenthesis-nested interpreter over a FORMAT
// string, paired with a statement that drives it against a caller-owned
// buffer and converts data items under the edit descriptors it yields.
//
// Only the internal-formatted-output path is implemented: a FORMAT string
// plus a stream of INTEGER data items, writing into a caller-supplied
// buffer. Real/complex conversion, external-file record semantics, and
// list-directed/namelist I/O are out of scope.
//
// # The two subsystems
//
// [FormatControl] is the interpreter: it owns a cursor into the FORMAT, a
// bounded iteration stack, and the scale factor, and on request produces
// the next [DataEdit] via [FormatControl.GetNext]. It drives a
// [FormatContext] sink for every literal, Hollerith, and control-edit side
// effect.
//
//	fc := fmtio.NewFormatControl(format, maxHeight, source)
//	var edit fmtio.DataEdit
//	fc.GetNext(ctx, &edit, 1)
//
// [InternalFormattedOutput] is the statement: it owns the destination
// buffer, fills it with spaces, and implements [FormatContext] itself so
// that [FormatControl] can drive it directly.
//
//	stmt, err := fmtio.BeginInternalFormattedOutput(buf, "(I5)", "example.f90", 12)
//	var edit fmtio.DataEdit
//	stmt.GetNext(&edit, 1)
//	fmtio.ConvertInteger64(stmt, -42, edit)
//	stmt.EndIoStatement()
//
// # Three character widths
//
// [FormatControl] and [InternalFormattedOutput] are generic over [Char]:
// 8-bit, 16-bit, and 32-bit FORMAT/buffer representations. The byte-width
// case has a convenience constructor, [BeginInternalFormattedOutput],
// matching the original runtime's sole exported C-callable instantiation;
// [NewInternalFormattedOutput] and [NewFormatControl] are fully generic.
//
// # Errors
//
// [ErrFormatMalformed], [ErrDescriptorMismatch], and [ErrInternal] are
// fatal: they surface as a returned [*FatalError] at whichever exported
// entry point ([BeginInternalFormattedOutput], [Cookie.OutputInteger64],
// [Cookie.OutputReal64], [Cookie.EndIoStatement]) is on the call stack when
// the underlying condition is raised. [ErrEndOfRecord] is recoverable: the
// affected [FormatContext.Emit] or positioning call simply returns false,
// and the condition surfaces only as a nonzero [Iostat] from
// [InternalFormattedOutput.EndIoStatement].
//
// # External surface
//
// [Cookie] and its methods, plus [Begin], mirror the original's
// IONAME-decorated C-callable functions: BeginInternalFormattedOutput,
// OutputInteger64, OutputReal64, EndIoStatement.
package fmtio
