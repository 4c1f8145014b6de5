package fmtio

// scratchWidth is large enough for a 64-bit integer in any supported
// radix (binary needs the most digits, 64) plus headroom, matching the
// original's 66-byte scratch buffer.
const scratchWidth = 66

// ConvertInteger64 converts one signed 64-bit integer under edit and
// emits its field via e.Emit, following spec §4.6: width, minimum-digit,
// sign, blank, and overflow rules. The returned bool is best-effort: it
// indicates whether further output is expected to succeed, not overall
// success — see DESIGN.md's note on the original's own ambiguity here.
// A descriptor that is not one of I, G, B, O, or Z is a DescriptorMismatch,
// reported via e.CrashKind.
func ConvertInteger64(e FormatContext, n int64, edit DataEdit) bool {
	var scratch [scratchWidth]byte
	end := scratchWidth
	p := end
	u := uint64(n)
	if n < 0 {
		u = uint64(-n)
	}
	signChars := 0

	switch edit.Descriptor {
	case 'I', 'G':
		if n < 0 || edit.Modes.has(SignPlus) {
			signChars = 1
		}
		for u > 0 {
			p--
			scratch[p] = byte('0' + u%10)
			u /= 10
		}
	case 'B':
		for ; u > 0; u >>= 1 {
			p--
			scratch[p] = byte('0' + u&1)
		}
	case 'O':
		for ; u > 0; u >>= 3 {
			p--
			scratch[p] = byte('0' + u&7)
		}
	case 'Z':
		for ; u > 0; u >>= 4 {
			p--
			digit := u & 0xf
			if digit >= 10 {
				scratch[p] = byte('A' + digit - 10)
			} else {
				scratch[p] = byte('0' + digit)
			}
		}
	default:
		e.CrashKind(ErrDescriptorMismatch, "Data edit descriptor '%c' does not correspond to an INTEGER data item", edit.Descriptor)
		return false
	}

	digits := end - p
	leadingZeroes := 0
	width := edit.Width
	switch {
	case edit.Digits != nil && digits <= *edit.Digits:
		if *edit.Digits == 0 && n == 0 {
			// Iw.0 with a zero value: the field must be blank.
			signChars = 0
			if width < 1 {
				width = 1
			}
			digits = 0
		} else {
			leadingZeroes = *edit.Digits - digits
		}
	case n == 0:
		leadingZeroes = 1
	}

	total := signChars + leadingZeroes + digits
	if width > 0 && total > width {
		stars := make([]rune, width)
		for i := range stars {
			stars[i] = '*'
		}
		return e.Emit(stars)
	}
	if total < width {
		pad := make([]rune, width-total)
		for i := range pad {
			pad[i] = ' '
		}
		if !e.Emit(pad) {
			return false
		}
	}
	if signChars > 0 {
		sign := rune('+')
		if n < 0 {
			sign = '-'
		}
		if !e.Emit([]rune{sign}) {
			return false
		}
	}
	if leadingZeroes > 0 {
		zeroes := make([]rune, leadingZeroes)
		for i := range zeroes {
			zeroes[i] = '0'
		}
		if !e.Emit(zeroes) {
			return false
		}
	}
	return e.Emit(runesOf(scratch[p:end]))
}

func runesOf(b []byte) []rune {
	out := make([]rune, len(b))
	for i, c := range b {
		out[i] = rune(c)
	}
	return out
}
