package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/marcodesign21/chaset-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"

	mimeCSV  = "text/csv; charset=utf-8"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetLedger  = "Transactions"
	sheetSummary = "Summary"
)

var exportHeader = []string{"id", "date", "type", "category", "description", "amount"}

// Summary sheet formulas over the ledger sheet: column C holds the type,
// column F the amount. The spreadsheet evaluates them on open.
var summaryFormulas = [][2]string{
	{"income", `SUMIF(Transactions!C:C,"income",Transactions!F:F)`},
	{"expense", `SUMIF(Transactions!C:C,"expense",Transactions!F:F)`},
	{"balance", "B1-B2"},
}

// workbook builds the XLSX export.
var workbook = buildWorkbook

func exportRow(tx models.Transaction) []string {
	return []string{
		strconv.Itoa(tx.ID),
		tx.Date.String(),
		string(tx.Type),
		string(tx.Category),
		tx.Description,
		tx.Amount.String(),
	}
}

// @Summary      Export transactions
// @Description  Downloads the ledger as CSV (default) or XLSX with a sheet of total formulas.
// @Tags         transactions
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        userId  path      int     true   "User ID"
// @Param        format  query     string  false  "csv or xlsx"  Enums(csv, xlsx)
// @Success      200     {file}    file
// @Failure      400     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/transactions/{userId}/export [get]
func (h *Handler) exportTransactions(c *gin.Context) {
	userID, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	format := strings.ToLower(c.DefaultQuery("format", formatCSV))
	if format != formatCSV && format != formatXLSX {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "format must be csv or xlsx"})
		return
	}

	txs, err := h.services.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, "transactions_export_failed", err, "user_id", userID)
		return
	}

	filename := fmt.Sprintf("transactions_%d_%s.%s", userID, time.Now().Format("20060102"), format)

	if format == formatXLSX {
		f, buildErr := workbook(txs)
		if buildErr != nil {
			h.writeError(c, "transactions_export_failed", buildErr, "user_id", userID, "format", format)
			return
		}
		defer f.Close()
		attach(c, filename, mimeXLSX)
		err = f.Write(c.Writer)
	} else {
		attach(c, filename, mimeCSV)
		err = writeCSV(c, txs)
	}
	if err != nil {
		// headers may already be out; nothing more to send
		h.log.Errorw("transactions_export_write_failed", "err", err, "user_id", userID, "format", format)
	}
}

// attach starts a 200 file download. Nothing after it can change the status.
func attach(c *gin.Context, filename, mime string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", mime)
	c.Status(http.StatusOK)
}

func writeCSV(c *gin.Context, txs []models.Transaction) error {
	w := csv.NewWriter(c.Writer)
	if err := w.Write(exportHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		if err := w.Write(exportRow(tx)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// buildWorkbook lays the ledger out on one sheet and total formulas on another.
func buildWorkbook(txs []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetLedger); err != nil {
		f.Close()
		return nil, err
	}

	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, toAny(exportHeader))
	for _, tx := range txs {
		amount, _ := tx.Amount.Float64()
		rows = append(rows, []any{tx.ID, tx.Date.String(), string(tx.Type), string(tx.Category), tx.Description, amount})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheetLedger, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	_ = f.SetColWidth(sheetLedger, "B", "D", 12)
	_ = f.SetColWidth(sheetLedger, "E", "E", 30)

	if _, err := f.NewSheet(sheetSummary); err != nil {
		f.Close()
		return nil, err
	}
	for i, row := range summaryFormulas {
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellFormula(sheetSummary, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
