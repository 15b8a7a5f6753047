package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	v1 "github.com/portsight/vendor-intel/api/v1"
	"github.com/portsight/vendor-intel/internal/models"
	"github.com/portsight/vendor-intel/internal/services"
)

const (
	exportSheet = "Vendor Ranking"

	maxTopVendorsPerPort = 50
)

// RankVendors computes the top vendors per delivery port for the requested
// items. Items and ports may arrive as names, as numeric ids, or a mix; ids
// are resolved to names first.
// (POST /rankings/vendors)
func (h *Handler) RankVendors(c *gin.Context) {
	var req v1.VendorRankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, err := h.rank(c, req)
	if err != nil {
		// engine failures degrade to an empty result, never raw detail
		zap.S().Named("ranking_handler").Errorw("vendor ranking failed", "error", err)
		msg := "Sorry, the vendor ranking could not be computed right now. Please try again shortly."
		c.JSON(http.StatusOK, v1.VendorRankingResponse{Rows: []v1.RankingRow{}, Message: &msg})
		return
	}

	resp := v1.VendorRankingResponse{Rows: make([]v1.RankingRow, 0, len(rows))}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, v1.NewRankingRowFromModel(row))
	}

	if len(resp.Rows) == 0 {
		msg := "No matching orders were found for the requested items and ports."
		resp.Message = &msg
	}

	c.JSON(http.StatusOK, resp)
}

// ExportVendorRanking computes the same ranking and streams it as an xlsx
// workbook.
// (POST /rankings/vendors/export)
func (h *Handler) ExportVendorRanking(c *gin.Context) {
	var req v1.VendorRankingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rows, err := h.rank(c, req)
	if err != nil {
		zap.S().Named("ranking_handler").Errorw("vendor ranking export failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to compute vendor ranking"})
		return
	}

	workbook, err := buildWorkbook(rows)
	if err != nil {
		zap.S().Named("ranking_handler").Errorw("failed to build workbook", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", `attachment; filename="vendor-ranking.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := workbook.WriteTo(c.Writer); err != nil {
		zap.S().Named("ranking_handler").Errorw("failed to stream workbook", "error", err)
	}
}

// rank resolves ids to names, merges them with the literal names, and runs
// the ranking engine.
func (h *Handler) rank(c *gin.Context, req v1.VendorRankingRequest) ([]models.RankingRow, error) {
	ctx := c.Request.Context()

	itemNames := valueOr(req.ItemNames)
	if ids := valueOr(req.ItemIds); len(ids) > 0 {
		resolved, err := h.resolver.ResolveItemNames(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolving item names: %w", err)
		}
		itemNames = append(itemNames, resolved...)
	}

	portNames := valueOr(req.PortNames)
	if ids := valueOr(req.PortIds); len(ids) > 0 {
		resolved, err := h.resolver.ResolvePortNames(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolving port names: %w", err)
		}
		portNames = append(portNames, resolved...)
	}

	topN := services.DefaultTopVendorsPerPort
	if req.TopN != nil && *req.TopN > 0 {
		topN = *req.TopN
		if topN > maxTopVendorsPerPort {
			topN = maxTopVendorsPerPort
		}
	}

	return h.rankingSrv.RankTopVendors(ctx, itemNames, portNames, topN)
}

func buildWorkbook(rows []models.RankingRow) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheet)

	header := []any{"Port", "Items", "Vendor Name", "Vendor Code", "Total Orders", "Breakdown"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{row.Port, row.Items, row.VendorName, row.VendorID, row.TotalOrders, row.Breakdown}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func valueOr[T any](p *[]T) []T {
	if p == nil {
		return nil
	}
	return *p
}
