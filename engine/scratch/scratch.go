// Package scratch formats short per-frame strings (score, debug stats)
// into a reused byte buffer so the HUD does not allocate every frame.
package scratch

import (
	"strconv"
	"unicode/utf8"
	"unsafe"
)

// Buffer is a reusable byte buffer with chainable appenders. Reset it once
// per frame. Strings returned by the View methods alias the buffer and are
// only valid until the next Reset.
type Buffer struct {
	buf []byte
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Buffer{buf: make([]byte, 0, capacity)}
}

// Reset clears the buffer length without freeing memory.
func (b *Buffer) Reset() { b.buf = b.buf[:0] }

func (b *Buffer) Cap() int { return cap(b.buf) }
func (b *Buffer) Len() int { return len(b.buf) }

// Grow makes room for at least n more bytes. Existing views stay valid only
// if no reallocation happens, so grow at load time.
func (b *Buffer) Grow(n int) {
	if len(b.buf)+n <= cap(b.buf) {
		return
	}
	nb := make([]byte, len(b.buf), max(2*cap(b.buf), len(b.buf)+n))
	copy(nb, b.buf)
	b.buf = nb
}

// Mark returns a bookmark for ViewFrom.
func (b *Buffer) Mark() int { return len(b.buf) }

func (b *Buffer) Bytes() []byte { return b.buf }

// String returns a copy of the whole buffer.
func (b *Buffer) String() string { return string(b.buf) }

// View returns the whole buffer as a string without copying.
func (b *Buffer) View() string { return b.ViewFrom(0) }

// ViewFrom returns what was written since mark without copying.
func (b *Buffer) ViewFrom(mark int) string {
	s := b.buf[mark:]
	if len(s) == 0 {
		return ""
	}
	return unsafe.String(&s[0], len(s))
}

func (b *Buffer) S(s string) *Buffer {
	b.buf = append(b.buf, s...)
	return b
}

func (b *Buffer) C(c byte) *Buffer {
	b.buf = append(b.buf, c)
	return b
}

func (b *Buffer) R(r rune) *Buffer {
	b.buf = utf8.AppendRune(b.buf, r)
	return b
}

func (b *Buffer) I(v int) *Buffer {
	b.buf = strconv.AppendInt(b.buf, int64(v), 10)
	return b
}

func (b *Buffer) U(v uint64) *Buffer {
	b.buf = strconv.AppendUint(b.buf, v, 10)
	return b
}

// F appends v with prec digits after the decimal point.
func (b *Buffer) F(v float64, prec int) *Buffer {
	b.buf = strconv.AppendFloat(b.buf, v, 'f', prec, 64)
	return b
}

func (b *Buffer) Bool(v bool) *Buffer {
	b.buf = strconv.AppendBool(b.buf, v)
	return b
}

// Pad appends c until the text written since mark is at least width bytes.
func (b *Buffer) Pad(mark, width int, c byte) *Buffer {
	for len(b.buf)-mark < width {
		b.buf = append(b.buf, c)
	}
	return b
}

// Printf supports %s %d %u %f (with .prec, default 3) and %%, and returns a
// view of the formatted text. Unknown verbs are written literally.
func (b *Buffer) Printf(format string, args ...any) string {
	mark := len(b.buf)
	ai := 0
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' {
			b.buf = append(b.buf, ch)
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.buf = append(b.buf, '%')
			i++
			continue
		}
		i++
		prec := -1
		if i < len(format) && format[i] == '.' {
			i++
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			prec, _ = strconv.Atoi(format[start:i])
		}
		if i >= len(format) || ai >= len(args) {
			break
		}
		switch format[i] {
		case 's':
			b.buf = appendString(b.buf, args[ai])
		case 'd':
			b.buf = strconv.AppendInt(b.buf, toInt64(args[ai]), 10)
		case 'u':
			b.buf = strconv.AppendUint(b.buf, uint64(toInt64(args[ai])), 10)
		case 'f':
			if prec < 0 {
				prec = 3
			}
			b.buf = strconv.AppendFloat(b.buf, toFloat64(args[ai]), 'f', prec, 64)
		default:
			b.buf = append(b.buf, '%', format[i])
		}
		ai++
	}
	return b.ViewFrom(mark)
}

func appendString(dst []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(dst, x...)
	case []byte:
		return append(dst, x...)
	case interface{ String() string }:
		return append(dst, x.String()...)
	}
	return append(dst, "<unsupported>"...)
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	}
	return 0
}

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return float64(toInt64(v))
}
