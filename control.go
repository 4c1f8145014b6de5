package fmtio

import "math"

// unlimited is the sentinel remaining-count for an iteration frame that
// loops forever: the outermost implicit frame, or a *(...)-prefixed group.
const unlimited = -1

// IterationFrame is one entry of FormatControl's iteration stack: the
// start offset of the repeatable unit it governs (the opening '(' itself,
// or the descriptor letter for a repeated non-parenthesized edit), and how
// many more passes remain.
type IterationFrame struct {
	start     int
	remaining int
}

// FormatControl is the reentrant interpreter over a FORTRAN FORMAT
// string. It owns a cursor into the format, a bounded iteration stack, and
// the current scale factor; it drives a FormatContext sink with literal,
// Hollerith, and control-edit side effects and yields successive data edit
// descriptors on request.
type FormatControl[C Char] struct {
	format       []C
	formatLength int
	offset       int
	height       int
	maxHeight    int
	stack        []IterationFrame
	scale        int
	source       SourcePosition
}

// NewFormatControl constructs a FormatControl bound to format, with a
// bounded iteration stack of maxHeight frames. maxHeight must fit in the
// representable range; callers normally compute it as
// validateFormat(format)'s maxNesting plus two (spec §4.5): one slot for
// the implicit outermost frame, one for a repeated non-parenthesized edit
// descriptor.
func NewFormatControl[C Char](format []C, maxHeight int, source SourcePosition) *FormatControl[C] {
	if maxHeight > math.MaxInt8 {
		crash(ErrInternal, source, "internal Fortran runtime error: maxHeight %d", maxHeight)
	}
	fc := &FormatControl[C]{
		format:       format,
		formatLength: len(format),
		maxHeight:    maxHeight,
		stack:        make([]IterationFrame, maxHeight+1),
		source:       source,
	}
	fc.stack[0].start = fc.offset
	fc.stack[0].remaining = unlimited // spec 13.4(8): outermost frame never terminates on its own
	// height starts at 0: the real leading '(' is what pushes frame 0, via
	// the unltd || fc.height == 0 case in CueUpNextDataEdit below, the same
	// way the original FORMAT scanner recognizes the outermost group.
	return fc
}

func (fc *FormatControl[C]) peekNext() rune {
	if fc.offset >= fc.formatLength {
		return 0
	}
	return rune(fc.format[fc.offset])
}

func (fc *FormatControl[C]) nextChar(ctx FormatContext) rune {
	if fc.offset >= fc.formatLength {
		ctx.Crash("FORMAT exhausted while scanning for the next edit descriptor")
	}
	ch := rune(fc.format[fc.offset])
	fc.offset++
	return ch
}

// getIntField parses a signed decimal integer field. If firstCh is
// nonzero, it is treated as an already-consumed leading character (the
// caller read it via nextChar before deciding it was the start of an
// integer field); otherwise the field starts at the current offset, which
// is left unconsumed until a digit is confirmed.
func (fc *FormatControl[C]) getIntField(ctx FormatContext, firstCh rune) int {
	ch := firstCh
	if ch == 0 {
		ch = fc.peekNext()
	}
	if ch != '-' && ch != '+' && !isDigit(ch) {
		ctx.Crash("Invalid FORMAT: integer expected at '%c'", byte(ch))
	}
	result := 0
	negate := ch == '-'
	if negate || ch == '+' {
		if firstCh != 0 {
			firstCh = 0
		} else {
			fc.offset++
		}
		ch = fc.peekNext()
	}
	for isDigit(ch) {
		if result > math.MaxInt32/10-int(ch-'0') {
			ctx.Crash("FORMAT integer field out of range")
		}
		result = 10*result + int(ch-'0')
		if firstCh != 0 {
			firstCh = 0
		} else {
			fc.offset++
		}
		ch = fc.peekNext()
	}
	if negate {
		result = -result
		if result > 0 {
			ctx.Crash("FORMAT integer field out of range")
		}
	}
	return result
}

// GetIntField parses a signed decimal integer at the current cursor
// position, used by control edits (Tn, TLn, TRn) that need to read a field
// that was not already consumed as a leading repeat count.
func (fc *FormatControl[C]) GetIntField(ctx FormatContext) int {
	return fc.getIntField(ctx, 0)
}

// handleControl applies a control edit descriptor's effect: mode
// mutation, scale factor assignment, or a position/spacing request routed
// to ctx.
func handleControl(ctx FormatContext, scale *int, ch, next rune, n int) {
	modes := ctx.MutableModes()
	switch ch {
	case 'B':
		switch next {
		case 'Z':
			modes.set(BlankZero)
			return
		case 'N':
			modes.clear(BlankZero)
			return
		}
	case 'D':
		switch next {
		case 'C':
			modes.set(DecimalComma)
			return
		case 'P':
			modes.clear(DecimalComma)
			return
		}
	case 'P':
		if next == 0 {
			*scale = n
			return
		}
	case 'R':
		switch next {
		case 'N':
			modes.Rounding = TiesToEven
			return
		case 'Z':
			modes.Rounding = ToZero
			return
		case 'U':
			modes.Rounding = Up
			return
		case 'D':
			modes.Rounding = Down
			return
		case 'C':
			modes.Rounding = TiesAwayFromZero
			return
		}
	case 'X':
		if next == 0 {
			ctx.HandleRelativePosition(n)
			return
		}
	case 'S':
		switch next {
		case 'P':
			modes.set(SignPlus)
			return
		case 0, 'S':
			modes.clear(SignPlus)
			return
		}
	case 'T':
		switch next {
		case 0:
			ctx.HandleAbsolutePosition(n)
			return
		case 'L':
			ctx.HandleRelativePosition(-n)
			return
		case 'R':
			ctx.HandleRelativePosition(n)
			return
		}
	}
	if next != 0 {
		ctx.Crash("Unknown '%c%c' edit descriptor in FORMAT", byte(ch), byte(next))
	} else {
		ctx.Crash("Unknown '%c' edit descriptor in FORMAT", byte(ch))
	}
}

// CueUpNextDataEdit scans forward from the current cursor, consuming
// literals, Hollerith payloads, slashes, commas, control edit descriptors,
// and repeat/parenthesis machinery, and stops as soon as a data edit
// descriptor is found (cursor left pointing at its first letter, returning
// its repeat count) or, when stop is true, as soon as a ':' is reached or
// the FORMAT is exhausted (returning 0).
func (fc *FormatControl[C]) CueUpNextDataEdit(ctx FormatContext, stop bool) int {
	unlimitedLoopCheck := -1
	for {
		var repeat *int
		unltd := false
		ch := capitalize(fc.nextChar(ctx))
		for ch == ',' || ch == ':' {
			if stop && ch == ':' {
				return 0
			}
			ch = capitalize(fc.nextChar(ctx))
		}
		if ch == '-' || ch == '+' || isDigit(ch) {
			r := fc.getIntField(ctx, ch)
			repeat = &r
			ch = capitalize(fc.nextChar(ctx))
		} else if ch == '*' {
			unltd = true
			ch = fc.nextChar(ctx)
			if ch != '(' {
				ctx.Crash("Invalid FORMAT: '*' may appear only before '('")
			}
		}

		switch {
		case ch == '(':
			if fc.height >= fc.maxHeight {
				ctx.Crash("FORMAT stack overflow: too many nested parentheses")
			}
			fc.stack[fc.height].start = fc.offset - 1 // the '('
			switch {
			case unltd || fc.height == 0:
				fc.stack[fc.height].remaining = unlimited
				unlimitedLoopCheck = fc.offset - 1
			case repeat != nil:
				r := *repeat
				if r <= 0 {
					r = 1
				}
				fc.stack[fc.height].remaining = r - 1
			default:
				fc.stack[fc.height].remaining = 0
			}
			fc.height++

		case fc.height == 0:
			ctx.Crash("FORMAT lacks initial '('")

		case ch == ')':
			if fc.height == 1 {
				if stop {
					return 0
				}
				ctx.HandleSlash(1)
			}
			frame := &fc.stack[fc.height-1]
			if frame.remaining == unlimited {
				fc.offset = frame.start + 1
				if fc.offset == unlimitedLoopCheck {
					ctx.Crash("Unlimited repetition in FORMAT lacks data edit descriptors")
				}
			} else {
				old := frame.remaining
				frame.remaining--
				if old > 0 {
					fc.offset = frame.start + 1
				} else {
					fc.height--
				}
			}

		case ch == '\'' || ch == '"':
			quote := ch
			start := fc.offset
			for fc.offset < fc.formatLength && rune(fc.format[fc.offset]) != quote {
				fc.offset++
			}
			if fc.offset >= fc.formatLength {
				ctx.Crash("FORMAT missing closing quote on character literal")
			}
			fc.offset++
			chars := fc.offset - start
			if fc.peekNext() == quote {
				// Doubled quote: include the first, let the second begin
				// a fresh literal scan on the next loop iteration.
			} else {
				chars--
			}
			ctx.Emit(widenToRunes(fc.format[start : start+chars]))

		case ch == 'H':
			if repeat == nil || *repeat < 1 || fc.offset+*repeat > fc.formatLength {
				ctx.Crash("Invalid width on Hollerith in FORMAT")
			}
			ctx.Emit(widenToRunes(fc.format[fc.offset : fc.offset+*repeat]))
			fc.offset += *repeat

		case isLetter(ch):
			start := fc.offset - 1
			next := capitalize(rune(fc.peekChar()))
			if !isLetter(next) {
				next = 0
			}
			isDataEdit := ch == 'E' || (next == 0 && (ch == 'A' || ch == 'I' || ch == 'B' ||
				ch == 'O' || ch == 'Z' || ch == 'F' || ch == 'D' || ch == 'G'))
			if isDataEdit {
				fc.offset = start
				if repeat != nil && *repeat > 0 {
					return *repeat
				}
				return 1
			}
			if next != 0 {
				// next was only peeked above; consume it now that it has
				// been folded into a two-letter control descriptor (BZ,
				// BN, DC, DP, RN, RZ, RU, RD, RC, SP, SS, TL, TR, ...) so
				// the next loop iteration doesn't re-scan it as a fresh
				// token.
				fc.offset++
			}
			if ch == 'T' {
				r := fc.GetIntField(ctx)
				repeat = &r
			}
			n := 1
			if repeat != nil && *repeat > 0 {
				n = *repeat
			}
			handleControl(ctx, &fc.scale, ch, next, n)

		case ch == '/':
			n := 1
			if repeat != nil && *repeat > 0 {
				n = *repeat
			}
			ctx.HandleSlash(n)

		default:
			ctx.Crash("Invalid character '%c' in FORMAT", byte(ch))
		}
	}
}

func (fc *FormatControl[C]) peekChar() rune { return fc.peekNext() }

// GetNext advances to the next data edit descriptor, fills edit, and
// returns. maxRepeat caps how many repeats the caller is willing to
// consume in a single call; a repeated non-parenthesized descriptor
// (e.g. 3I5) keeps its residual count on the iteration stack across
// GetNext calls until it is exhausted.
func (fc *FormatControl[C]) GetNext(ctx FormatContext, edit *DataEdit, maxRepeat int) {
	repeat := fc.CueUpNextDataEdit(ctx, false)
	start := fc.offset
	edit.Descriptor = byte(capitalize(fc.nextChar(ctx)))
	if edit.Descriptor == 'E' {
		v := capitalize(fc.peekNext())
		if isLetter(v) {
			fc.offset++
			edit.Variation = byte(v)
		} else {
			edit.Variation = 0
		}
	} else {
		edit.Variation = 0
	}

	edit.Width = fc.GetIntField(ctx)
	if edit.Width < 0 {
		ctx.Crash("FORMAT edit descriptor has a negative width")
	}
	edit.Modes = *ctx.MutableModes()
	if fc.peekNext() == '.' {
		fc.offset++
		d := fc.GetIntField(ctx)
		edit.Digits = &d
		ch := fc.peekNext()
		if ch == 'e' || ch == 'E' || ch == 'd' || ch == 'D' {
			fc.offset++
			e := fc.GetIntField(ctx)
			edit.ExpoDigits = &e
		} else {
			edit.ExpoDigits = nil
		}
	} else {
		edit.Digits = nil
		edit.ExpoDigits = nil
	}

	if repeat > 1 {
		fc.stack[fc.height].start = start
		fc.stack[fc.height].remaining = repeat
		fc.height++
	}
	edit.Repeat = 1
	if fc.height > 1 {
		top := fc.stack[fc.height-1].start
		if rune(fc.format[top]) != '(' {
			frame := &fc.stack[fc.height-1]
			if frame.remaining > maxRepeat {
				edit.Repeat = maxRepeat
				frame.remaining -= maxRepeat
				fc.offset = top
			} else {
				edit.Repeat = frame.remaining
				fc.height--
			}
		}
	}
}

// FinishOutput drains the trailing FORMAT: literals and control edits are
// still honored (so a trailing literal or positioning directive still
// flushes), stopping at a ':', at the outermost ')', or at the next data
// edit descriptor, whichever comes first.
func (fc *FormatControl[C]) FinishOutput(ctx FormatContext) {
	fc.CueUpNextDataEdit(ctx, true)
}

// Scale returns the current kP scale factor. Only a future real/complex
// converter consumes this; it is not part of a DataEdit snapshot (spec §3).
func (fc *FormatControl[C]) Scale() int { return fc.scale }
