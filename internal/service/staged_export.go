package service

import (
	"bytes"
	"context"
	"fmt"

	"message-digest-admin/internal/domain"
	"message-digest-admin/internal/form"

	"github.com/xuri/excelize/v2"
)

// StagedExportHeader 导出表头
var StagedExportHeader = []string{"Node ID", "Title", "Link"}

const stagedSheetName = "Staged Content"

// ExportStaged 导出待发送内容 Excel 文件
func (f *StagedContentForm) ExportStaged(ctx context.Context) ([]byte, error) {
	items, err := f.StagedItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load staged content: %w", err)
	}
	return GenerateStagedExport(items, f.links)
}

// GenerateStagedExport writes items to a single-sheet workbook; an empty list
// produces the header row only.
func GenerateStagedExport(items []domain.StagedItem, links form.LinkBuilder) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(stagedSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range StagedExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(stagedSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(stagedSheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}
	if err := f.SetColWidth(stagedSheetName, "A", "A", 12); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(stagedSheetName, "B", "C", 48); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	for i, it := range items {
		row := i + 2 // 第1行是表头
		link := links.Link(it.NodeID, it.Title)
		values := []any{it.NodeID, it.Title, link.Href}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(stagedSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
