// Package billing derives rent obligations from a bed record: months owed
// since move-in, amounts owed and paid, remaining balance and payment status.
package billing

import (
	"sort"
	"time"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
)

const dateLayout = "2006-01-02"

// PaymentsOf returns the record's ledger. Legacy records carry a single
// amountPaid figure instead; those synthesize one payment dated today so the
// balance math stays uniform.
func PaymentsOf(rec models.BedRecord, now time.Time) []models.Payment {
	if len(rec.Payments) > 0 {
		return rec.Payments
	}
	if rec.AmountPaid > 0 {
		return []models.Payment{{Date: now.Format(dateLayout), Amount: rec.AmountPaid}}
	}
	return nil
}

// MonthsOwed counts the monthly rent cycles due since move-in. The first due
// date is one calendar month after move-in; a due date landing exactly on now
// counts as owed.
func MonthsOwed(moveInDate string, monthlyRent float64, now time.Time) int {
	if moveInDate == "" || monthlyRent <= 0 {
		return 0
	}
	moveIn, err := time.ParseInLocation(dateLayout, moveInDate, time.UTC)
	if err != nil {
		return 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	firstDue := moveIn.AddDate(0, 1, 0)
	if today.Before(firstDue) {
		return 0
	}

	count := 0
	for d := firstDue; !d.After(today); d = d.AddDate(0, 1, 0) {
		count++
	}
	return count
}

// NextDueDate is always one calendar month after move-in. It does not advance
// as months elapse or get paid off, while MonthsOwed does; that mismatch is
// long-standing observed behavior and is kept as is.
func NextDueDate(moveInDate string) string {
	if moveInDate == "" {
		return ""
	}
	moveIn, err := time.ParseInLocation(dateLayout, moveInDate, time.UTC)
	if err != nil {
		return ""
	}
	return moveIn.AddDate(0, 1, 0).Format(dateLayout)
}

// AmountPaid sums the ledger.
func AmountPaid(payments []models.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// RemainingBalance is the owed total minus payments, floored at zero.
func RemainingBalance(totalOwed, totalPaid float64) float64 {
	remaining := totalOwed - totalPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StatusOf classifies the balance. The overdue threshold is exactly half one
// month's rent.
func StatusOf(totalOwed, totalPaid, monthlyRent float64) models.PaymentStatus {
	remaining := totalOwed - totalPaid
	if remaining <= 0 {
		return models.PaymentPaid
	}
	if remaining <= monthlyRent*0.5 {
		return models.PaymentDueSoon
	}
	return models.PaymentOverdue
}

// SortPayments orders a ledger by date ascending, the canonical storage order.
func SortPayments(payments []models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date < payments[j].Date
	})
}
