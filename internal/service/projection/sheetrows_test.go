package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
)

func TestDecodeTenantRows(t *testing.T) {
	rows := [][]interface{}{
		{"Maria Santos", "101", "A", "5000", "2000", "", "Overdue"},
		{"Jose Cruz", "102", "B", "4500", "4500", "0", "Paid"},
		{"Ana Reyes", "103", "A", "5,000", "1000", "not a number", "due soon"},
		{"short row"},
		{"", "104", "A"},
		{"Explicit Balance", "105", "B", "5000", "0", "1234.5", ""},
	}

	tenants, errs := DecodeTenantRows(rows)

	require.Len(t, tenants, 4)
	require.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].Index)
	assert.Equal(t, 4, errs[1].Index)

	// Balance column absent: falls back to rent minus paid.
	assert.Equal(t, "t-0", tenants[0].ID)
	assert.Equal(t, 3000.0, tenants[0].RemainingBalance)
	assert.Equal(t, models.PaymentOverdue, tenants[0].Status)

	assert.Equal(t, 0.0, tenants[1].RemainingBalance)
	assert.Equal(t, models.PaymentPaid, tenants[1].Status)

	// Non-numeric balance column falls back too; thousands separators are
	// tolerated in numeric cells.
	assert.Equal(t, 4000.0, tenants[2].RemainingBalance)
	assert.Equal(t, models.PaymentDueSoon, tenants[2].Status)

	// Explicit numeric balance wins over the rent-minus-paid fallback.
	assert.Equal(t, 1234.5, tenants[3].RemainingBalance)
	// Unknown status keyword defaults to due_soon.
	assert.Equal(t, models.PaymentDueSoon, tenants[3].Status)
}

func TestDecodeTenantRowsNegativeFallbackFloorsAtZero(t *testing.T) {
	tenants, errs := DecodeTenantRows([][]interface{}{
		{"Overpaid", "101", "A", "5000", "9000", ""},
	})
	require.Empty(t, errs)
	require.Len(t, tenants, 1)
	assert.Equal(t, 0.0, tenants[0].RemainingBalance)
}

func TestDecodeParcelRows(t *testing.T) {
	rows := [][]interface{}{
		{"Maria Santos", "101", "CLAIMED"},
		{"Jose Cruz", "102", "arrived yesterday"},
		{"Ana Reyes", "103"},
		{"No Status Match", "104", "lost?"},
		{""},
	}

	parcels, errs := DecodeParcelRows(rows)

	require.Len(t, parcels, 4)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Index)

	assert.Equal(t, models.ParcelClaimed, parcels[0].Status)
	assert.Equal(t, models.ParcelArrived, parcels[1].Status)
	assert.Equal(t, models.ParcelIncoming, parcels[2].Status)
	assert.Equal(t, models.ParcelIncoming, parcels[3].Status)
	assert.Equal(t, "p-0", parcels[0].ID)
}

func TestParsePaymentStatus(t *testing.T) {
	assert.Equal(t, models.PaymentPaid, ParsePaymentStatus("PAID in full"))
	assert.Equal(t, models.PaymentDueSoon, ParsePaymentStatus("Due Soon"))
	assert.Equal(t, models.PaymentDueSoon, ParsePaymentStatus("duesoon"))
	assert.Equal(t, models.PaymentOverdue, ParsePaymentStatus("3 months overdue"))
	assert.Equal(t, models.PaymentDueSoon, ParsePaymentStatus("???"))
	// The paid keyword is checked first; "unpaid" has always read as paid.
	assert.Equal(t, models.PaymentPaid, ParsePaymentStatus("unpaid"))
}
