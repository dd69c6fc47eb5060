package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
)

var march20 = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func tenantBed(payments ...models.Payment) models.BedRecord {
	return models.BedRecord{
		ID:          "b1",
		RoomNumber:  "102",
		BedNumber:   "A",
		Status:      models.BedOccupied,
		TenantName:  "Maria Santos",
		MoveInDate:  "2024-01-15",
		MonthlyRent: 5000,
		Payments:    payments,
	}
}

func TestTenantRowsNoPayments(t *testing.T) {
	rows := TenantRows([]models.BedRecord{tenantBed()}, false, march20)

	require.Len(t, rows, 1)
	row := rows[0]
	// Two cycles due (2024-02-15 and 2024-03-15) with nothing paid.
	assert.Equal(t, 0.0, row.AmountPaid)
	assert.Equal(t, 10000.0, row.RemainingBalance)
	assert.Equal(t, models.PaymentOverdue, row.Status)
	assert.Equal(t, "2024-02-15", row.NextDueDate)
	assert.Equal(t, "House 1 Room 2", row.RoomNumber)
	assert.Equal(t, "A", row.BedNumber)
}

func TestTenantRowsPartialPayment(t *testing.T) {
	bed := tenantBed(models.Payment{Date: "2024-02-20", Amount: 8000})
	rows := TenantRows([]models.BedRecord{bed}, false, march20)

	require.Len(t, rows, 1)
	assert.Equal(t, 2000.0, rows[0].RemainingBalance)
	assert.Equal(t, models.PaymentDueSoon, rows[0].Status)
}

func TestTenantRowsFullyPaid(t *testing.T) {
	bed := tenantBed(
		models.Payment{Date: "2024-02-20", Amount: 8000},
		models.Payment{Date: "2024-03-18", Amount: 2000},
	)
	rows := TenantRows([]models.BedRecord{bed}, false, march20)

	require.Len(t, rows, 1)
	assert.Equal(t, 10000.0, rows[0].AmountPaid)
	assert.Equal(t, 0.0, rows[0].RemainingBalance)
	assert.Equal(t, models.PaymentPaid, rows[0].Status)
}

func TestTenantRowsLegacyAmountPaid(t *testing.T) {
	bed := tenantBed()
	bed.Payments = nil
	bed.AmountPaid = 10000
	rows := TenantRows([]models.BedRecord{bed}, false, march20)

	require.Len(t, rows, 1)
	assert.Equal(t, 10000.0, rows[0].AmountPaid)
	assert.Equal(t, models.PaymentPaid, rows[0].Status)
	require.Len(t, rows[0].Payments, 1)
	assert.Equal(t, "2024-03-20", rows[0].Payments[0].Date)
}

func TestTenantRowsSkipsUnoccupied(t *testing.T) {
	rows := TenantRows([]models.BedRecord{{ID: "empty", RoomNumber: "101", BedNumber: "A"}}, false, march20)
	assert.Empty(t, rows)
}

func TestTenantRowsTrashFilter(t *testing.T) {
	active := tenantBed()
	trashed := tenantBed()
	trashed.ID = "b2"
	trashed.DeletedAt = "2024-03-10T00:00:00Z"
	records := []models.BedRecord{active, trashed}

	activeRows := TenantRows(records, false, march20)
	require.Len(t, activeRows, 1)
	assert.Equal(t, "b1", activeRows[0].ID)

	trashRows := TenantRows(records, true, march20)
	require.Len(t, trashRows, 1)
	assert.Equal(t, "b2", trashRows[0].ID)
}

func TestFilterRows(t *testing.T) {
	rows := TenantRows([]models.BedRecord{tenantBed()}, false, march20)

	assert.Len(t, FilterRows(rows, "maria"), 1)
	assert.Len(t, FilterRows(rows, "house 1"), 1)
	assert.Len(t, FilterRows(rows, "2024-01"), 1)
	assert.Empty(t, FilterRows(rows, "nobody"))
	assert.Len(t, FilterRows(rows, "  "), 1)
}
