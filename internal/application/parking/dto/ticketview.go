package dto

import (
	"time"

	"github.com/parkline/parkline/internal/domain/ticket"
)

type TicketView struct {
	ID             uint        `json:"id"`
	Code           string      `json:"code"`
	BranchID       uint        `json:"branch_id"`
	LicensePlate   string      `json:"license_plate"`
	VehicleType    string      `json:"vehicle_type"`
	Status         string      `json:"status"`
	EntryTime      time.Time   `json:"entry_time"`
	ExitTime       *time.Time  `json:"exit_time,omitempty"`
	SubscriptionID *uint       `json:"subscription_id,omitempty"`
	Charge         *ChargeView `json:"charge,omitempty"`
}

// ChargeView carries amounts as fixed two-decimal strings.
type ChargeView struct {
	TotalHours                string `json:"total_hours"`
	FreeHoursGranted          string `json:"free_hours_granted"`
	BillableHours             string `json:"billable_hours"`
	RateApplied               string `json:"rate_applied"`
	RateSource                string `json:"rate_source"`
	Subtotal                  string `json:"subtotal"`
	SubscriptionHoursConsumed string `json:"subscription_hours_consumed"`
	SubscriptionOverageHours  string `json:"subscription_overage_hours"`
	SubscriptionOverageCharge string `json:"subscription_overage_charge"`
	TotalAmount               string `json:"total_amount"`
	Currency                  string `json:"currency"`
	TotalFormatted            string `json:"total_formatted"`
}

// ToTicketView maps a ticket and its charge (nil while open). f may be nil.
func ToTicketView(t *ticket.Ticket, c *ticket.Charge, f *AmountFormatter) *TicketView {
	if t == nil {
		return nil
	}

	view := &TicketView{
		ID:             t.ID(),
		Code:           t.Code(),
		BranchID:       t.BranchID(),
		LicensePlate:   t.LicensePlate(),
		VehicleType:    t.VehicleType().String(),
		Status:         t.Status().String(),
		EntryTime:      t.EntryTime(),
		ExitTime:       t.ExitTime(),
		SubscriptionID: t.SubscriptionID(),
	}
	if c != nil {
		view.Charge = toChargeView(c, f)
	}
	return view
}

func toChargeView(c *ticket.Charge, f *AmountFormatter) *ChargeView {
	b := c.Breakdown()
	if f == nil {
		f = NewAmountFormatter("en", "USD")
	}
	return &ChargeView{
		TotalHours:                b.TotalHours.StringFixed(2),
		FreeHoursGranted:          b.FreeHoursGranted.StringFixed(2),
		BillableHours:             b.BillableHours.StringFixed(2),
		RateApplied:               b.RateApplied.StringFixed(2),
		RateSource:                b.RateSource.String(),
		Subtotal:                  b.Subtotal.StringFixed(2),
		SubscriptionHoursConsumed: b.SubscriptionHoursConsumed.StringFixed(2),
		SubscriptionOverageHours:  b.SubscriptionOverageHours.StringFixed(2),
		SubscriptionOverageCharge: b.SubscriptionOverageCharge.StringFixed(2),
		TotalAmount:               b.TotalAmount.StringFixed(2),
		Currency:                  f.Currency(),
		TotalFormatted:            f.Format(b.TotalAmount),
	}
}
