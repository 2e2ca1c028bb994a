package admin

import "strconv"

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func ptrStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
