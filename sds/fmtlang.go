package sds

import "fmt"

// CatFmt appends output produced by a restricted formatting mini-language:
// %s (a []byte or string C-string argument), %S (another *SDS), %i (int),
// %I (int64), %u (uint), %U (uint64), and %% (a literal percent). There is
// no padding or precision support. It panics on an unknown directive or an
// argument of the wrong type, the Go analogue of the C original's
// programmer-error assertions.
func (s *SDS) CatFmt(format string, args ...any) {
	argIdx := 0

	nextArg := func(directive byte) any {
		if argIdx >= len(args) {
			panic(fmt.Sprintf("sds: CatFmt: missing argument for %%%c", directive))
		}

		a := args[argIdx]
		argIdx++

		return a
	}

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' || i+1 >= len(format) {
			s.AppendBytes([]byte{c})
			i++

			continue
		}

		directive := format[i+1]
		i += 2

		switch directive {
		case 's':
			s.appendCStringArg(nextArg(directive))
		case 'S':
			other, ok := nextArg(directive).(*SDS)
			if !ok {
				panic("sds: CatFmt: %S argument must be *SDS")
			}

			s.AppendSDS(other)
		case 'i':
			v, ok := nextArg(directive).(int)
			if !ok {
				panic("sds: CatFmt: %i argument must be int")
			}

			s.appendSignedInt(int64(v))
		case 'I':
			v, ok := nextArg(directive).(int64)
			if !ok {
				panic("sds: CatFmt: %I argument must be int64")
			}

			s.appendSignedInt(v)
		case 'u':
			v, ok := nextArg(directive).(uint)
			if !ok {
				panic("sds: CatFmt: %u argument must be uint")
			}

			s.appendUnsignedInt(uint64(v))
		case 'U':
			v, ok := nextArg(directive).(uint64)
			if !ok {
				panic("sds: CatFmt: %U argument must be uint64")
			}

			s.appendUnsignedInt(v)
		case '%':
			s.AppendBytes([]byte{'%'})
		default:
			panic(fmt.Sprintf("sds: CatFmt: unknown directive %%%c", directive))
		}
	}
}

func (s *SDS) appendCStringArg(a any) {
	switch v := a.(type) {
	case string:
		s.AppendBytes([]byte(v))
	case []byte:
		s.AppendCStr(v)
	default:
		panic("sds: CatFmt: %s argument must be string or []byte")
	}
}

// appendSignedInt renders v by emitting digits least-significant-first
// into a 21-byte buffer (enough for a sign and every int64 value), then
// reversing, matching spec.md's "hand-rolled digit-emit-then-reverse"
// description.
func (s *SDS) appendSignedInt(v int64) {
	var buf [21]byte

	neg := v < 0

	n := 0

	// Handle math.MinInt64 without overflowing: -v would wrap back to
	// MinInt64 since its positive counterpart isn't representable in
	// int64, so negate one past it and add the 1 back in uint64 space.
	var u uint64
	if neg {
		u = uint64(-(v+1)) + 1
	} else {
		u = uint64(v)
	}

	if u == 0 {
		buf[n] = '0'
		n++
	}

	for u > 0 {
		buf[n] = byte('0' + u%10)
		n++
		u /= 10
	}

	if neg {
		buf[n] = '-'
		n++
	}

	reverseBytes(buf[:n])
	s.AppendBytes(buf[:n])
}

func (s *SDS) appendUnsignedInt(v uint64) {
	var buf [21]byte

	n := 0
	if v == 0 {
		buf[n] = '0'
		n++
	}

	for v > 0 {
		buf[n] = byte('0' + v%10)
		n++
		v /= 10
	}

	reverseBytes(buf[:n])
	s.AppendBytes(buf[:n])
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
