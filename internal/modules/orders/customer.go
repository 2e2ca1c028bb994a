package orders

import "strings"

// Customer display fields are resolved through ordered rule lists
// instead of ad hoc fallback chains at every call site. Rules run top
// to bottom; the first non-empty value wins.

type CustomerSource struct {
	Order     Order
	UserName  string // resolved buyer profile name, if any
	UserPhone string
}

const customerUnknown = "N/A"

var customerNameRules = []func(CustomerSource) string{
	func(s CustomerSource) string { return deref(s.Order.RecipientName) },
	func(s CustomerSource) string { return s.UserName },
}

var customerPhoneRules = []func(CustomerSource) string{
	func(s CustomerSource) string { return deref(s.Order.RecipientPhone) },
	func(s CustomerSource) string { return s.UserPhone },
}

var customerAddressRules = []func(CustomerSource) string{
	func(s CustomerSource) string { return deref(s.Order.ShippingAddress) },
}

func CustomerName(s CustomerSource) string    { return firstRule(customerNameRules, s) }
func CustomerPhone(s CustomerSource) string   { return firstRule(customerPhoneRules, s) }
func CustomerAddress(s CustomerSource) string { return firstRule(customerAddressRules, s) }

func firstRule(rules []func(CustomerSource) string, s CustomerSource) string {
	for _, rule := range rules {
		if v := strings.TrimSpace(rule(s)); v != "" {
			return v
		}
	}
	return customerUnknown
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
