package models

// SampleBeds returns the placeholder bed list shown when no backend is
// configured or the backend cannot be reached.
func SampleBeds() []BedRecord {
	return []BedRecord{
		{ID: "1", House: "1", RoomNumber: "1", BedNumber: "A", Status: BedAvailable},
		{ID: "2", House: "1", RoomNumber: "1", BedNumber: "B", Status: BedOccupied, TenantName: "Sample Tenant"},
		{ID: "3", House: "1", RoomNumber: "2", BedNumber: "A", Status: BedAvailable},
		{ID: "4", House: "1", RoomNumber: "2", BedNumber: "B", Status: BedAvailable},
		{ID: "5", House: "1", RoomNumber: "3", BedNumber: "A", Status: BedOccupied, TenantName: "Sample Tenant Two"},
	}
}
