package shipping

// TimelineStep is one milestone in the fixed delivery timeline.
type TimelineStep struct {
	Status      string `json:"status"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	Active      bool   `json:"active"`
}

var milestoneSteps = [3]TimelineStep{
	{Status: StatusPickingUp, Label: "Đang lấy hàng", Icon: "📦", Description: "Shipper đang đến lấy hàng"},
	{Status: StatusShipping, Label: "Đang giao", Icon: "🚚", Description: "Đơn hàng đang được vận chuyển"},
	{Status: StatusDelivered, Label: "Đã giao", Icon: "✅", Description: "Giao hàng thành công"},
}

var failedStep = TimelineStep{
	Status: StatusFailed, Label: "Giao thất bại", Icon: "❌", Description: "Giao hàng không thành công",
}

// Timeline renders the fixed 3-step milestone sequence for a shipment.
// A nil shipment yields no steps ("no shipment data" to the caller, not
// an error). Statuses outside the milestone set (READY_TO_PICK,
// RETURNING, ...) match no step, so everything shows pending.
func Timeline(s *Shipment) []TimelineStep {
	if s == nil {
		return nil
	}

	status := CanonicalStatus(s.Status)

	steps := milestoneSteps
	if status == StatusFailed {
		steps[2] = failedStep
	}

	current := -1
	for i, step := range steps {
		if step.Status == status {
			current = i
			break
		}
	}

	out := make([]TimelineStep, len(steps))
	for i, step := range steps {
		step.Completed = current >= 0 && i <= current
		step.Active = i == current
		out[i] = step
	}
	return out
}
