package models

import (
	"strings"
	"time"
)

// BedStatus reflects whether a bed slot currently has a tenant.
type BedStatus string

const (
	BedAvailable BedStatus = "available"
	BedOccupied  BedStatus = "occupied"
)

// Payment is a single rent payment entry in a bed's ledger.
type Payment struct {
	Date   string  `bson:"date" json:"date"` // YYYY-MM-DD
	Amount float64 `bson:"amount" json:"amount"`
}

// BedRecord is the persisted entity for one sleeping space. It carries the
// slot address, the current occupant (if any) and the rent ledger.
type BedRecord struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	House       string    `bson:"house,omitempty" json:"house,omitempty"`
	RoomNumber  string    `bson:"roomNumber" json:"roomNumber"`
	BedNumber   string    `bson:"bedNumber" json:"bedNumber"`
	Status      BedStatus `bson:"status" json:"status"`
	TenantName  string    `bson:"tenantName,omitempty" json:"tenantName,omitempty"`
	TenantPhone string    `bson:"tenantPhone,omitempty" json:"tenantPhone,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	MoveInDate  string    `bson:"moveInDate,omitempty" json:"moveInDate,omitempty"` // YYYY-MM-DD
	MonthlyRent float64   `bson:"monthlyRent,omitempty" json:"monthlyRent,omitempty"`
	// AmountPaid is a legacy single-figure total kept for records created
	// before the payment ledger existed. New writes always go to Payments.
	AmountPaid float64   `bson:"amountPaid,omitempty" json:"amountPaid,omitempty"`
	Payments   []Payment `bson:"payments,omitempty" json:"payments,omitempty"`
	DeletedAt  string    `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"` // RFC3339, empty when active
	UpdatedAt  time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Deleted reports whether the record sits in the trash. A missing field and a
// null written by a remote restore both decode to the empty string, so both
// read as active.
func (b BedRecord) Deleted() bool {
	return b.DeletedAt != ""
}

// Occupied reports whether the record names a tenant.
func (b BedRecord) Occupied() bool {
	return strings.TrimSpace(b.TenantName) != ""
}
