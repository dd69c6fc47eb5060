package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
	"github.com/dlamayo/boardinghouse/internal/service/billing"
	"github.com/dlamayo/boardinghouse/internal/service/lifecycle"
	"github.com/dlamayo/boardinghouse/internal/service/occupancy"
	"github.com/dlamayo/boardinghouse/internal/service/projection"
)

const sampleDataWarning = "Could not load bed data. Showing sample data."

// BedHandler serves the bed, room and tenant-balance endpoints.
type BedHandler struct {
	store     bedstore.Store
	occupancy *occupancy.Service
	billing   *billing.Service
	lifecycle *lifecycle.Service
	logger    *zap.Logger
	now       func() time.Time
}

// NewBedHandler constructs the HTTP handler adapter for bed operations.
func NewBedHandler(store bedstore.Store, occupancySvc *occupancy.Service, billingSvc *billing.Service, lifecycleSvc *lifecycle.Service, logger *zap.Logger) *BedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BedHandler{
		store:     store,
		occupancy: occupancySvc,
		billing:   billingSvc,
		lifecycle: lifecycleSvc,
		logger:    logger,
		now:       time.Now,
	}
}

// list loads the collection, degrading to sample data with a warning instead
// of failing the request when the backend is unreachable.
func (h *BedHandler) list(c *gin.Context) ([]models.BedRecord, string) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing beds, falling back to sample data", zap.Error(err))
		return models.SampleBeds(), sampleDataWarning
	}
	return records, ""
}

// ListBeds returns every active bed record.
func (h *BedHandler) ListBeds(c *gin.Context) {
	records, warning := h.list(c)

	active := make([]models.BedRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Deleted() {
			active = append(active, rec)
		}
	}

	resp := gin.H{"beds": active}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// ListRooms returns the configured rooms with their resolved bed slots.
func (h *BedHandler) ListRooms(c *gin.Context) {
	records, warning := h.list(c)

	resp := gin.H{"rooms": occupancy.Rooms(records)}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// CreateBed assigns a tenant to a free slot.
func (h *BedHandler) CreateBed(c *gin.Context) {
	var req occupancy.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	id, err := h.occupancy.AssignTenant(c.Request.Context(), req)
	switch {
	case errors.Is(err, occupancy.ErrTenantRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, occupancy.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("failed creating bed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save bed record"})
	default:
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

// UpdateBed applies a partial edit. A vanished record is a silent no-op.
func (h *BedHandler) UpdateBed(c *gin.Context) {
	var req occupancy.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.occupancy.UpdateBed(c.Request.Context(), c.Param("id"), req)
	switch {
	case errors.Is(err, bedstore.ErrNotFound):
		c.Status(http.StatusNoContent)
	case errors.Is(err, occupancy.ErrTenantRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.logger.Error("failed updating bed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save bed record"})
	default:
		c.Status(http.StatusNoContent)
	}
}

type setRentRequest struct {
	MonthlyRent float64 `json:"monthlyRent"`
}

// SetRent performs the one-time rent set.
func (h *BedHandler) SetRent(c *gin.Context) {
	var req setRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.billing.SetRent(c.Request.Context(), c.Param("id"), req.MonthlyRent)
	switch {
	case errors.Is(err, billing.ErrInvalidRent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, billing.ErrRentLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, bedstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bed record not found"})
	case err != nil:
		h.logger.Error("failed setting rent", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save rent"})
	default:
		c.Status(http.StatusNoContent)
	}
}

type addPaymentRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// AddPayment appends a ledger entry. A vanished record is a silent no-op, as
// the edit surface has always behaved.
func (h *BedHandler) AddPayment(c *gin.Context) {
	var req addPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.billing.AddPayment(c.Request.Context(), c.Param("id"), req.Date, req.Amount)
	switch {
	case errors.Is(err, billing.ErrInvalidAmount), errors.Is(err, billing.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, bedstore.ErrNotFound):
		c.Status(http.StatusNoContent)
	case err != nil:
		h.logger.Error("failed adding payment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save payment"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// TrashBed soft-deletes a record. The caller must confirm explicitly; the
// engine itself never asks.
func (h *BedHandler) TrashBed(c *gin.Context) {
	if !confirmed(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required to move to trash"})
		return
	}

	err := h.lifecycle.Trash(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, bedstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bed record not found"})
	case err != nil:
		h.logger.Error("failed trashing bed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to move to trash"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// RestoreBed clears the trash marker.
func (h *BedHandler) RestoreBed(c *gin.Context) {
	err := h.lifecycle.Restore(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, bedstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bed record not found"})
	case err != nil:
		h.logger.Error("failed restoring bed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to restore"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// PurgeBed permanently removes a trashed record. Requires confirmation.
func (h *BedHandler) PurgeBed(c *gin.Context) {
	if !confirmed(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confirmation required to delete permanently"})
		return
	}

	err := h.lifecycle.Purge(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, bedstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "bed record not found"})
	case err != nil:
		h.logger.Error("failed purging bed record", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete permanently"})
	default:
		c.Status(http.StatusNoContent)
	}
}

// ListTenants returns projected balance rows, active by default or the trash
// view with ?trash=1, optionally narrowed with ?q=.
func (h *BedHandler) ListTenants(c *gin.Context) {
	records, warning := h.list(c)

	trashed := c.Query("trash") == "1"
	rows := projection.TenantRows(records, trashed, h.now())
	rows = projection.FilterRows(rows, c.Query("q"))
	if rows == nil {
		rows = []models.TenantBalance{}
	}

	resp := gin.H{"tenants": rows}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

func confirmed(c *gin.Context) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return false
	}
	return body.Confirm
}
