package plan

import (
	"context"
	"fmt"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"

	"github.com/xuri/excelize/v2"
)

// ExportFinancials renders a contract's full plan version history as an xlsx
// sheet, one row per version, derived fields included.
func (s *PlanServiceImpl) ExportFinancials(ctx context.Context, contractID string) ([]byte, error) {
	plans, err := s.Repo.ListVersions(ctx, contractID)
	if err != nil {
		return nil, common_models.Persistencef("could not load plan versions: %v", err)
	}
	if len(plans) == 0 {
		return nil, common_models.Validationf("contract %s has no business plans", contractID)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "PAKD"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Version", "Status", "Active", "Revenue", "Costs", "Gross Profit", "Margin (%)", "Cashflow", "Created By", "Updated At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, p := range plans {
		values := []interface{}{
			p.Version,
			string(p.Status),
			p.IsActive,
			p.Financials.Revenue,
			p.Financials.Costs,
			p.Financials.GrossProfit,
			p.Financials.Margin,
			p.Financials.Cashflow,
			p.CreatedBy,
			p.UpdatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
