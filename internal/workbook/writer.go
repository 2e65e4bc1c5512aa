package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/i-DAM/etmam-report/internal/model"
)

// أسماء أوراق مصنّف التقرير بترتيبها الثابت
const (
	SheetOpen    = "١- المفتوحة والمعاد فتحها"
	SheetSLA     = "٢- التوصيف"
	SheetChannel = "٣- مصادر أخرى"
)

// Write بناء مصنّف التقرير بثلاث أوراق، ورقة لكل جدول محوري
// ترتيب الصفوف والأعمدة كما أنتجه التجميع دون إعادة فرز.
func Write(statusPivot, slaPivot, channelPivot *model.Pivot) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetOpen); err != nil {
		f.Close()
		return nil, fmt.Errorf("تهيئة المصنّف: %w", err)
	}
	for _, name := range []string{SheetSLA, SheetChannel} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("إنشاء ورقة %s: %w", name, err)
		}
	}

	if err := writePivotSheet(f, SheetOpen, statusPivot); err != nil {
		f.Close()
		return nil, err
	}
	if err := writePivotSheet(f, SheetSLA, slaPivot); err != nil {
		f.Close()
		return nil, err
	}
	if err := writePivotSheet(f, SheetChannel, channelPivot); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writePivotSheet(f *excelize.File, sheet string, p *model.Pivot) error {
	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	// الجدول البديل: عمود ملاحظة واحد بخلية واحدة، بلا عمود إدارات
	if p.IsPlaceholder() {
		if err := setCell(1, 1, p.Columns[0]); err != nil {
			return err
		}
		return setCell(1, 2, p.Note)
	}

	// رأس الجدول: زاوية فارغة ثم الفئات
	for i, c := range p.Columns {
		if err := setCell(i+2, 1, c); err != nil {
			return err
		}
	}

	rowNum := 2
	for _, unit := range p.Units {
		if err := setCell(1, rowNum, unit); err != nil {
			return err
		}
		for i, v := range p.Row(unit) {
			if err := setCell(i+2, rowNum, v); err != nil {
				return err
			}
		}
		rowNum++
	}

	// صف الإجمالي الكلي
	if err := setCell(1, rowNum, model.TotalRowLabel); err != nil {
		return err
	}
	for i, v := range p.Total {
		if err := setCell(i+2, rowNum, v); err != nil {
			return err
		}
	}
	return nil
}
