package httpvalue

import "strings"

const hexDigits = "0123456789abcdef"

// hexDump renders bytes as space-separated fixed-width hex pairs, e.g.
// "6e 6f 74". Byte payloads are not assumed to be text, so diagnostics
// never print them verbatim.
func hexDump(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(data) * 3)
	for i, c := range data {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0f])
	}
	return b.String()
}
