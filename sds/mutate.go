package sds

import "bytes"

// Trim removes from both ends of s any contiguous run of bytes that appear
// in cset, a byte set represented as a plain byte slice used for
// membership testing.
func (s *SDS) Trim(cset []byte) {
	b := s.Bytes()

	start := 0
	for start < len(b) && bytes.IndexByte(cset, b[start]) >= 0 {
		start++
	}

	end := len(b)
	for end > start && bytes.IndexByte(cset, b[end-1]) >= 0 {
		end--
	}

	s.CopyBytes(b[start:end])
}

// Range slices the content in place to the inclusive interval [start,end].
// Negative indices count from the end of the string (-1 is the last byte).
// An ill-ordered or wholly out-of-range interval yields the empty string,
// per spec.md's soft-failure treatment of Range.
func (s *SDS) Range(start, end int) {
	length := s.Len()
	if length == 0 {
		return
	}

	start = resolveIndex(start, length)
	end = resolveIndex(end, length)

	if start < 0 {
		start = 0
	}

	if end >= length {
		end = length - 1
	}

	if start > end || length == 0 {
		s.CopyBytes(nil)
		return
	}

	s.CopyBytes(s.Bytes()[start : end+1])
}

func resolveIndex(idx, length int) int {
	if idx < 0 {
		idx = length + idx
		if idx < 0 {
			idx = 0
		}
	}

	return idx
}

// ToLower ASCII-lowercases the content in place.
func (s *SDS) ToLower() {
	b := s.raw[:s.Len()]
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
}

// ToUpper ASCII-uppercases the content in place.
func (s *SDS) ToUpper() {
	b := s.raw[:s.Len()]
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// MapChars rewrites the content in place: for each content byte, the first
// index j such that the byte equals from[j] causes it to be replaced with
// to[j]. from and to must have equal length. The operation is
// length-preserving and allocates no new backing array.
func (s *SDS) MapChars(from, to []byte) {
	b := s.raw[:s.Len()]

	for i, c := range b {
		for j, f := range from {
			if c == f {
				b[i] = to[j]
				break
			}
		}
	}
}

// Split splits bytes on the literal, possibly multi-byte separator sep,
// returning owned SDS tokens. An empty or nil sep returns nil, matching
// spec.md's "empty separator ... yields null". An empty input with a
// non-empty sep returns a zero-length, non-nil slice.
func Split(data, sep []byte) []*SDS {
	if len(sep) == 0 {
		return nil
	}

	if len(data) == 0 {
		return []*SDS{}
	}

	var out []*SDS

	for {
		idx := bytes.Index(data, sep)
		if idx < 0 {
			out = append(out, New(data))
			return out
		}

		out = append(out, New(data[:idx]))
		data = data[idx+len(sep):]
	}
}
