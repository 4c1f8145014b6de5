package fmtio

// internalOutputReserve is the number of extra iteration-stack slots
// reserved beyond the FORMAT's own maximum parenthesis nesting: one for
// the whole-format implicit outermost frame, one for a repeated
// non-parenthesized edit descriptor (spec §4.5).
const internalOutputReserve = 2

// InternalFormattedOutput is a "statement in progress" bound to a
// caller-owned destination buffer: the sink for FORMAT emissions and the
// driver that pulls successive edits from its embedded FormatControl. It
// is generic over the character width, which the destination buffer and
// the FORMAT string driving it share.
type InternalFormattedOutput[C Char] struct {
	BaseContext
	internalStatement
	buffer []C
	at     int
	format *FormatControl[C]
}

// NewInternalFormattedOutput constructs a statement writing into buffer
// under the control of format, both sharing the same character width, and
// fills buffer with spaces as required by the internal-output record
// model. sourceFile/sourceLine identify the caller for diagnostics raised
// against this statement.
func NewInternalFormattedOutput[C Char](buffer []C, format []C, sourceFile string, sourceLine int) (stmt *InternalFormattedOutput[C], err error) {
	defer recoverFatal(&err)
	source := SourcePosition{File: sourceFile, Line: sourceLine}
	for i := range buffer {
		buffer[i] = C(' ')
	}
	maxNesting := validateFormat(format, source)
	stmt = &InternalFormattedOutput[C]{
		BaseContext:       BaseContext{Source: source},
		internalStatement: internalStatement{source: source},
		buffer:            buffer,
		format:            NewFormatControl(format, maxNesting+internalOutputReserve, source),
	}
	return stmt, nil
}

// BeginInternalFormattedOutput is the byte-width convenience constructor
// matching the original runtime's sole exported instantiation
// (InternalFormattedIoStatementState<false, char>): format is an ordinary
// Go string, interpreted as its underlying bytes.
func BeginInternalFormattedOutput(buffer []byte, format string, sourceFile string, sourceLine int) (*InternalFormattedOutput[byte], error) {
	return NewInternalFormattedOutput(buffer, []byte(format), sourceFile, sourceLine)
}

// Emit copies as much of data as fits into the remaining buffer, widening
// or narrowing each rune to the destination's character width. If the
// buffer is exhausted first, an end-of-record condition is recorded and
// only the prefix that fits is copied.
func (s *InternalFormattedOutput[C]) Emit(data []rune) bool {
	if s.at+len(data) > len(s.buffer) {
		s.signalEor()
		fits := len(s.buffer) - s.at
		if fits > 0 {
			for i := 0; i < fits; i++ {
				s.buffer[s.at+i] = C(data[i])
			}
			s.at = len(s.buffer)
		}
		return false
	}
	for i, r := range data {
		s.buffer[s.at+i] = C(r)
	}
	s.at += len(data)
	return true
}

// HandleAbsolutePosition implements the Tn control edit: clamp negative n
// to 0, signal end-of-record if n falls outside the buffer.
func (s *InternalFormattedOutput[C]) HandleAbsolutePosition(n int) bool {
	if n < 0 {
		n = 0
	}
	if n >= len(s.buffer) {
		s.signalEor()
		return false
	}
	s.at = n
	return true
}

// HandleRelativePosition implements nX, TLn, and TRn: saturate at 0 on
// the low end, signal end-of-record and pin to the buffer length on the
// high end.
func (s *InternalFormattedOutput[C]) HandleRelativePosition(n int) bool {
	if n < 0 {
		if -n > s.at {
			s.at = 0
		} else {
			s.at += n
		}
		return true
	}
	if s.at+n > len(s.buffer) {
		s.signalEor()
		s.at = len(s.buffer)
		return false
	}
	s.at += n
	return true
}

// GetNext delegates to the embedded FormatControl, using this statement
// itself as the FormatContext sink.
func (s *InternalFormattedOutput[C]) GetNext(edit *DataEdit, maxRepeat int) {
	s.format.GetNext(s, edit, maxRepeat)
}

// EndIoStatement drains the trailing FORMAT (so a final literal or
// positioning directive still flushes) and returns the accumulated
// status. Internal statements have a single implicit record, so
// HandleSlash remains the BaseContext default (abort) for this type: a
// bare '/' or the implicit slash before the outermost ')' would abort,
// matching the original's "internal units have a single implicit record"
// contract. FinishOutput never triggers that implicit slash because
// CueUpNextDataEdit returns at the outermost ')' when stopping (spec
// §4.2) rather than calling HandleSlash.
func (s *InternalFormattedOutput[C]) EndIoStatement() Iostat {
	s.format.FinishOutput(s)
	return s.ioStat()
}
