package manager

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/models"
	"github.com/unibo-dtm-se-2025-MoneyMate/artifact-sub000/internal/util"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Exporter writes per-user expense reports.
type Exporter struct {
	db *gorm.DB
}

func NewExporter(db *gorm.DB) *Exporter {
	return &Exporter{db: db}
}

var exportHeader = []string{"ID", "Title", "Price", "Date", "Category"}

func (e *Exporter) userExpenses(userID uint) ([]models.Expense, error) {
	var expenses []models.Expense
	err := e.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&expenses).Error
	return expenses, err
}

// ExpensesCSV streams the user's expenses as CSV.
func (e *Exporter) ExpensesCSV(userID uint, w io.Writer) util.Result {
	expenses, err := e.userExpenses(userID)
	if err != nil {
		return util.FailErr(err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return util.FailErr(err)
	}
	for _, ex := range expenses {
		record := []string{
			strconv.FormatUint(uint64(ex.ID), 10),
			ex.Title,
			strconv.FormatFloat(ex.Price, 'f', 2, 64),
			ex.Date,
			ex.Category,
		}
		if err := cw.Write(record); err != nil {
			return util.FailErr(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return util.FailErr(err)
	}
	return util.OK(map[string]interface{}{"rows": len(expenses)})
}

// ExpensesXLSX writes the user's expenses to an Excel workbook at path.
func (e *Exporter) ExpensesXLSX(userID uint, path string) util.Result {
	expenses, err := e.userExpenses(userID)
	if err != nil {
		return util.FailErr(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return util.FailErr(err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return util.FailErr(err)
		}
	}
	for row, ex := range expenses {
		values := []interface{}{ex.ID, ex.Title, ex.Price, ex.Date, ex.Category}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return util.FailErr(err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return util.FailErr(fmt.Errorf("save workbook: %w", err))
	}
	return util.OK(map[string]interface{}{"rows": len(expenses), "path": path})
}
