package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVND(t *testing.T) {
	cases := map[int64]string{
		0:        "0đ",
		500:      "500đ",
		1000:     "1.000đ",
		25000:    "25.000đ",
		205000:   "205.000đ",
		1234500:  "1.234.500đ",
		-40000:   "-40.000đ",
		10500000: "10.500.000đ",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatVND(in))
	}
}

func TestBadgeFallback(t *testing.T) {
	assert.Equal(t, "Đã giao", OrderBadge("DELIVERED").Text)
	assert.Equal(t, grayBadge, OrderBadge("SOMETHING_NEW"))
	assert.Equal(t, grayBadge, WithdrawalBadge(""))
}
