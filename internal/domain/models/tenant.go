package models

// PaymentStatus classifies how a tenant stands against their rent schedule.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentDueSoon PaymentStatus = "due_soon"
	PaymentOverdue PaymentStatus = "overdue"
)

// TenantBalance is the read-only projection of a bed record for the balance
// view: derived owed/paid figures plus the ledger used to compute them.
type TenantBalance struct {
	ID               string        `json:"id"`
	TenantName       string        `json:"tenantName"`
	RoomNumber       string        `json:"roomNumber"`
	BedNumber        string        `json:"bedNumber"`
	MoveInDate       string        `json:"moveInDate,omitempty"`
	MonthlyRent      float64       `json:"monthlyRent"`
	AmountPaid       float64       `json:"amountPaid"`
	RemainingBalance float64       `json:"remainingBalance"`
	Status           PaymentStatus `json:"status"`
	Payments         []Payment     `json:"payments,omitempty"`
	NextDueDate      string        `json:"nextDueDate,omitempty"`
	DeletedAt        string        `json:"deletedAt,omitempty"`
}
