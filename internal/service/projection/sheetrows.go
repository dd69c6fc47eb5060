package projection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
)

// Sheet ranges for the externally maintained spreadsheet. Row one holds
// headers, hence the A2 start.
const (
	TenantSheetRange = "TenantBalance!A2:H"
	ParcelSheetRange = "Parcels!A2:D"
)

// RowError reports one sheet row the decoder rejected.
type RowError struct {
	Index  int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Index, e.Reason)
}

// DecodeTenantRows maps sheet rows positionally into balance rows: tenant
// name, room, bed, monthly rent, paid, balance, status. Malformed rows are
// reported instead of silently defaulted; unknown status keywords still fall
// back to due_soon and a non-numeric balance column falls back to
// max(0, rent-paid).
func DecodeTenantRows(rows [][]interface{}) ([]models.TenantBalance, []RowError) {
	var tenants []models.TenantBalance
	var errs []RowError
	for i, row := range rows {
		tenant, err := decodeTenantRow(i, row)
		if err != nil {
			errs = append(errs, RowError{Index: i, Reason: err.Error()})
			continue
		}
		tenants = append(tenants, tenant)
	}
	return tenants, errs
}

func decodeTenantRow(i int, row []interface{}) (models.TenantBalance, error) {
	if len(row) < 3 {
		return models.TenantBalance{}, fmt.Errorf("expected at least 3 columns, got %d", len(row))
	}
	name := cellString(row, 0)
	if name == "" {
		return models.TenantBalance{}, fmt.Errorf("tenant name is empty")
	}

	rent := cellFloat(row, 3)
	paid := cellFloat(row, 4)

	balance, ok := cellFloatOK(row, 5)
	if !ok {
		balance = rent - paid
	}
	if balance < 0 {
		balance = 0
	}

	return models.TenantBalance{
		ID:               fmt.Sprintf("t-%d", i),
		TenantName:       name,
		RoomNumber:       cellString(row, 1),
		BedNumber:        cellString(row, 2),
		MonthlyRent:      rent,
		AmountPaid:       paid,
		RemainingBalance: balance,
		Status:           ParsePaymentStatus(cellString(row, 6)),
	}, nil
}

// DecodeParcelRows maps sheet rows positionally into parcels: tenant name,
// room, status.
func DecodeParcelRows(rows [][]interface{}) ([]models.Parcel, []RowError) {
	var parcels []models.Parcel
	var errs []RowError
	for i, row := range rows {
		if len(row) < 2 {
			errs = append(errs, RowError{Index: i, Reason: fmt.Sprintf("expected at least 2 columns, got %d", len(row))})
			continue
		}
		name := cellString(row, 0)
		if name == "" {
			errs = append(errs, RowError{Index: i, Reason: "tenant name is empty"})
			continue
		}
		parcels = append(parcels, models.Parcel{
			ID:         fmt.Sprintf("p-%d", i),
			TenantName: name,
			RoomNumber: cellString(row, 1),
			Status:     ParseParcelStatus(cellString(row, 2)),
		})
	}
	return parcels, errs
}

// ParsePaymentStatus matches known keywords case-insensitively, defaulting to
// due_soon. The paid check runs first so "unpaid overdue" style entries keep
// the historical reading.
func ParsePaymentStatus(s string) models.PaymentStatus {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "paid"):
		return models.PaymentPaid
	case strings.Contains(lower, "due soon"), strings.Contains(lower, "duesoon"):
		return models.PaymentDueSoon
	case strings.Contains(lower, "overdue"):
		return models.PaymentOverdue
	default:
		return models.PaymentDueSoon
	}
}

// ParseParcelStatus matches known keywords case-insensitively, defaulting to
// incoming.
func ParseParcelStatus(s string) models.ParcelStatus {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "claimed"):
		return models.ParcelClaimed
	case strings.Contains(lower, "arrived"):
		return models.ParcelArrived
	case strings.Contains(lower, "incoming"):
		return models.ParcelIncoming
	default:
		return models.ParcelIncoming
	}
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func cellFloat(row []interface{}, idx int) float64 {
	v, _ := cellFloatOK(row, idx)
	return v
}

func cellFloatOK(row []interface{}, idx int) (float64, bool) {
	str := cellString(row, idx)
	if str == "" {
		return 0, false
	}
	str = strings.ReplaceAll(str, ",", "")
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
