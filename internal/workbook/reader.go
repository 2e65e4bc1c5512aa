// Package workbook قراءة ملف البلاغات وكتابة مصنّف التقرير.
package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/thedatashed/xlsxreader"
	"github.com/xuri/excelize/v2"
)

// الحد الأعلى لصفوف ملفات xls القديمة
const maxXLSRows = 100000

// ReadSheet قراءة الورقة الأولى من ملف مرفوع
// تُجرَّب محركات القراءة بالتسلسل (excelize ثم xlsxreader ثم xls
// للملفات القديمة) ولا يُستسلم إلا بعدها برسالة واحدة واضحة.
func ReadSheet(fileName string, data []byte) (header []string, rows [][]string, err error) {
	var lastErr error

	if h, r, e := readWithExcelize(data); e == nil {
		return h, r, nil
	} else {
		lastErr = e
	}

	if h, r, e := readWithXlsxReader(data); e == nil {
		return h, r, nil
	} else {
		lastErr = e
	}

	if strings.EqualFold(filepath.Ext(fileName), ".xls") {
		if h, r, e := readWithXLS(data); e == nil {
			return h, r, nil
		} else {
			lastErr = e
		}
	}

	return nil, nil, fmt.Errorf("تعذر قراءة الملف: %w", lastErr)
}

func readWithExcelize(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, errors.New("لا توجد ورقة عمل")
	}

	all, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	return splitHeader(all)
}

func readWithXlsxReader(data []byte) ([]string, [][]string, error) {
	xl, err := xlsxreader.NewReader(data)
	if err != nil {
		return nil, nil, err
	}
	if len(xl.Sheets) == 0 {
		return nil, nil, errors.New("لا توجد ورقة عمل")
	}

	var all [][]string
	for row := range xl.ReadRows(xl.Sheets[0]) {
		if row.Error != nil {
			continue
		}
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			idx := c.ColumnIndex()
			for len(cells) <= idx {
				cells = append(cells, "")
			}
			cells[idx] = c.Value
		}
		all = append(all, cells)
	}
	return splitHeader(all)
}

func readWithXLS(data []byte) ([]string, [][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, nil, errors.New("لا توجد ورقة عمل")
	}
	return splitHeader(wb.ReadAllCells(maxXLSRows))
}

func splitHeader(all [][]string) ([]string, [][]string, error) {
	if len(all) == 0 {
		return nil, nil, errors.New("الملف فارغ")
	}
	return all[0], all[1:], nil
}
