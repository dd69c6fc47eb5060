package models

// ParcelStatus tracks a package from notice to pickup.
type ParcelStatus string

const (
	ParcelIncoming ParcelStatus = "incoming"
	ParcelArrived  ParcelStatus = "arrived"
	ParcelClaimed  ParcelStatus = "claimed"
)

// Parcel is a read-only row from the parcel sheet.
type Parcel struct {
	ID         string       `json:"id"`
	TenantName string       `json:"tenantName"`
	RoomNumber string       `json:"roomNumber"`
	Status     ParcelStatus `json:"status"`
}
