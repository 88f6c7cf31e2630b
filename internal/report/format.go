package report

import (
	"fmt"
	"strings"
)

// FormatMoney renders a dollar amount with thousands separators and two
// decimal places, e.g. 115843.2 becomes "115,843.20".
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	parts := strings.SplitN(s, ".", 2)
	if len(parts) != 2 {
		return s
	}
	intPart, fracPart := parts[0], parts[1]

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	out := b.String() + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
