package view

// StatusBadge is the colored pill the dashboards render next to a
// status value. Color is a Tailwind-ish token the frontend maps to
// its palette; unknown statuses fall back to gray.
type StatusBadge struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

var grayBadge = StatusBadge{Text: "Không xác định", Color: "gray"}

var orderBadges = map[string]StatusBadge{
	"PENDING":   {Text: "Chờ xác nhận", Color: "yellow"},
	"CONFIRMED": {Text: "Đã xác nhận", Color: "blue"},
	"SHIPPING":  {Text: "Đang giao", Color: "indigo"},
	"DELIVERED": {Text: "Đã giao", Color: "green"},
	"COMPLETED": {Text: "Hoàn thành", Color: "green"},
	"CANCELLED": {Text: "Đã hủy", Color: "red"},
	"RETURNED":  {Text: "Đã trả hàng", Color: "orange"},
}

var storeBadges = map[string]StatusBadge{
	"PENDING":   {Text: "Chờ duyệt", Color: "yellow"},
	"ACTIVE":    {Text: "Đang hoạt động", Color: "green"},
	"SUSPENDED": {Text: "Tạm khóa", Color: "red"},
	"REJECTED":  {Text: "Từ chối", Color: "gray"},
}

var withdrawalBadges = map[string]StatusBadge{
	"PENDING":   {Text: "Chờ duyệt", Color: "yellow"},
	"INITIATED": {Text: "Đang chuyển", Color: "blue"},
	"PAID":      {Text: "Đã thanh toán", Color: "green"},
	"REJECTED":  {Text: "Từ chối", Color: "gray"},
	"FAILED":    {Text: "Thất bại", Color: "red"},
}

var refundBadges = map[string]StatusBadge{
	"PENDING":  {Text: "Chờ xử lý", Color: "yellow"},
	"APPROVED": {Text: "Đã hoàn tiền", Color: "green"},
	"REJECTED": {Text: "Từ chối", Color: "red"},
}

var userBadges = map[string]StatusBadge{
	"ACTIVE": {Text: "Hoạt động", Color: "green"},
	"BANNED": {Text: "Bị cấm", Color: "red"},
}

var shipperBadges = map[string]StatusBadge{
	"ACTIVE":   {Text: "Đang hoạt động", Color: "green"},
	"INACTIVE": {Text: "Ngừng hoạt động", Color: "gray"},
}

var promotionBadges = map[string]StatusBadge{
	"ACTIVE":   {Text: "Đang chạy", Color: "green"},
	"INACTIVE": {Text: "Tạm dừng", Color: "yellow"},
	"EXPIRED":  {Text: "Hết hạn", Color: "gray"},
	"DELETED":  {Text: "Đã xóa", Color: "red"},
}

func OrderBadge(status string) StatusBadge      { return badgeOr(orderBadges, status) }
func StoreBadge(status string) StatusBadge      { return badgeOr(storeBadges, status) }
func WithdrawalBadge(status string) StatusBadge { return badgeOr(withdrawalBadges, status) }
func RefundBadge(status string) StatusBadge     { return badgeOr(refundBadges, status) }
func UserBadge(status string) StatusBadge       { return badgeOr(userBadges, status) }
func ShipperBadge(status string) StatusBadge    { return badgeOr(shipperBadges, status) }
func PromotionBadge(state string) StatusBadge   { return badgeOr(promotionBadges, state) }

func badgeOr(m map[string]StatusBadge, status string) StatusBadge {
	if b, ok := m[status]; ok {
		return b
	}
	return grayBadge
}
