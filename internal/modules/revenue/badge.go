package revenue

// Badge is the display classification for a revenue record type.
type Badge struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	BgColor   string `json:"bgColor"`
	TextColor string `json:"textColor"`
	Icon      string `json:"icon"`
}

var typeBadges = map[string]Badge{
	TypeServiceFee: {
		Text:      "Phí dịch vụ",
		Color:     "green",
		BgColor:   "bg-green-100",
		TextColor: "text-green-800",
		Icon:      "💰",
	},
	TypePlatformCommission: {
		Text:      "Hoa hồng sàn",
		Color:     "green",
		BgColor:   "bg-green-100",
		TextColor: "text-green-800",
		Icon:      "🏦",
	},
	TypeShippingFee: {
		Text:      "Phí vận chuyển",
		Color:     "green",
		BgColor:   "bg-green-100",
		TextColor: "text-green-800",
		Icon:      "🚚",
	},
	TypePlatformDiscountLoss: {
		Text:      "Tiền lỗ giảm giá",
		Color:     "red",
		BgColor:   "bg-red-100",
		TextColor: "text-red-800",
		Icon:      "📉",
	},
}

// TypeBadge classifies a revenue type for display. Unrecognized types
// get the gray fallback so new backend enum values render instead of
// breaking the table.
func TypeBadge(revenueType string) Badge {
	if b, ok := typeBadges[revenueType]; ok {
		return b
	}
	return Badge{
		Text:      revenueType,
		Color:     "gray",
		BgColor:   "bg-gray-100",
		TextColor: "text-gray-800",
		Icon:      "📊",
	}
}

// Sign is the amount prefix for a revenue type: income renders "+",
// PLATFORM_DISCOUNT_LOSS renders as an unsigned magnitude (red), never
// a negative sign.
func Sign(revenueType string) string {
	if IsLoss(revenueType) {
		return ""
	}
	return "+"
}

func IsLoss(revenueType string) bool {
	return revenueType == TypePlatformDiscountLoss
}
