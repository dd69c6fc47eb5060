// Package projection turns bed records and external sheet rows into the
// read-only tenant-balance and parcel views. Everything here is pure and
// recomputed on every storage change.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/service/billing"
	"github.com/dlamayo/boardinghouse/internal/topology"
)

// TenantRows projects every record with a tenant into a balance row. With
// trashed true it returns the trash view instead of the active one.
func TenantRows(records []models.BedRecord, trashed bool, now time.Time) []models.TenantBalance {
	var rows []models.TenantBalance
	for _, rec := range records {
		if !rec.Occupied() || rec.Deleted() != trashed {
			continue
		}

		house, room := topology.DeriveSlot(rec.House, rec.RoomNumber)
		payments := billing.PaymentsOf(rec, now)
		paid := billing.AmountPaid(payments)
		owed := float64(billing.MonthsOwed(rec.MoveInDate, rec.MonthlyRent, now)) * rec.MonthlyRent

		rows = append(rows, models.TenantBalance{
			ID:               rec.ID,
			TenantName:       rec.TenantName,
			RoomNumber:       fmt.Sprintf("House %s Room %s", house, room),
			BedNumber:        rec.BedNumber,
			MoveInDate:       rec.MoveInDate,
			MonthlyRent:      rec.MonthlyRent,
			AmountPaid:       paid,
			RemainingBalance: billing.RemainingBalance(owed, paid),
			Status:           billing.StatusOf(owed, paid, rec.MonthlyRent),
			Payments:         payments,
			NextDueDate:      billing.NextDueDate(rec.MoveInDate),
			DeletedAt:        rec.DeletedAt,
		})
	}
	return rows
}

// FilterRows narrows tenant rows by a free-text query over name, room, bed
// and move-in date.
func FilterRows(rows []models.TenantBalance, query string) []models.TenantBalance {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	var out []models.TenantBalance
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.TenantName), q) ||
			strings.Contains(strings.ToLower(row.RoomNumber), q) ||
			strings.Contains(strings.ToLower(row.BedNumber), q) ||
			strings.Contains(row.MoveInDate, q) {
			out = append(out, row)
		}
	}
	return out
}
