package view

import "strconv"

// FormatVND renders an integer VND amount with dot thousand separators
// and the đ suffix, e.g. 1234500 -> "1.234.500đ".
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	n := len(s)
	out := make([]byte, 0, n+n/3+2)
	for i, ch := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, ch)
	}

	res := string(out) + "đ"
	if neg {
		return "-" + res
	}
	return res
}
