package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/repository/sheets"
	"github.com/dlamayo/boardinghouse/internal/service/projection"
)

// SheetHandler serves the read-only spreadsheet-backed tenant and parcel
// rows. The repository is nil when the integration is not configured.
type SheetHandler struct {
	repo   sheets.Repository
	logger *zap.Logger
}

// NewSheetHandler constructs the HTTP handler adapter for the sheet path.
func NewSheetHandler(repo sheets.Repository, logger *zap.Logger) *SheetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetHandler{repo: repo, logger: logger}
}

// Get returns decoded rows for ?type=tenants (default) or ?type=parcels.
func (h *SheetHandler) Get(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google Sheets not configured. Set GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_ID."})
		return
	}

	sheetType := c.Query("type")
	sheetRange := projection.TenantSheetRange
	if sheetType == "parcels" {
		sheetRange = projection.ParcelSheetRange
	}

	rows, err := h.repo.ReadRange(c.Request.Context(), sheetRange)
	if err != nil {
		h.logger.Error("failed reading sheet", zap.String("range", sheetRange), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch from Google Sheets"})
		return
	}

	if sheetType == "parcels" {
		parcels, rowErrs := projection.DecodeParcelRows(rows)
		h.logRowErrors("parcels", rowErrs)
		c.JSON(http.StatusOK, gin.H{"parcels": parcels})
		return
	}

	tenants, rowErrs := projection.DecodeTenantRows(rows)
	h.logRowErrors("tenants", rowErrs)
	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

func (h *SheetHandler) logRowErrors(sheet string, errs []projection.RowError) {
	for _, rowErr := range errs {
		h.logger.Warn("skipped malformed sheet row", zap.String("sheet", sheet), zap.Int("row", rowErr.Index), zap.String("reason", rowErr.Reason))
	}
}
