package workbook_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/i-DAM/etmam-report/internal/aggregate"
	"github.com/i-DAM/etmam-report/internal/model"
	"github.com/i-DAM/etmam-report/internal/workbook"
)

func buildXlsx(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSheet_Xlsx(t *testing.T) {
	t.Parallel()

	data := buildXlsx(t, [][]string{
		{"رقم البلاغ", "الإدارة", "حالة البلاغ في النظام"},
		{"1", "إدارة النظافة", "قيد التنفيذ - مقاول"},
		{"2", "إدارة المشاريع", "معلق - اعادة فتح"},
	})

	header, rows, err := workbook.ReadSheet("report.xlsx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(header) != 3 || header[0] != "رقم البلاغ" {
		t.Fatalf("unexpected header: %v", header)
	}
	if len(rows) != 2 || rows[1][1] != "إدارة المشاريع" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestReadSheet_Unreadable(t *testing.T) {
	t.Parallel()

	_, _, err := workbook.ReadSheet("junk.xlsx", []byte("ليس ملف إكسل"))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestWrite_ThreeSheets(t *testing.T) {
	t.Parallel()

	records := []*model.Record{
		{Admin: "إدارة النظافة", Status: model.StatusWorkContractor, SLA: model.SLAWithin, Source: model.SourceBaladyApp},
		{Admin: "إدارة النظافة", Status: model.StatusReopened, SLA: model.SLALate, Source: model.SourceTawakkalna},
	}

	f, err := workbook.Write(
		aggregate.StatusPivot(records),
		aggregate.SLAPivot(records),
		aggregate.ChannelPivot(records),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{workbook.SheetOpen, workbook.SheetSLA, workbook.SheetChannel}
	if len(sheets) != 3 {
		t.Fatalf("unexpected sheets: %v", sheets)
	}
	for i, s := range want {
		if sheets[i] != s {
			t.Fatalf("unexpected sheet order: %v", sheets)
		}
	}

	// رأس ورقة الحالات: الزاوية فارغة ثم الحالات الست
	got, err := f.GetCellValue(workbook.SheetOpen, "B1")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if got != string(model.StatusAwaitContractor) {
		t.Fatalf("unexpected B1: %q", got)
	}

	// صف الإجمالي الكلي بعد صف الإدارة الوحيد
	got, err = f.GetCellValue(workbook.SheetOpen, "A3")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if got != model.TotalRowLabel {
		t.Fatalf("unexpected A3: %q", got)
	}

	// بديل القناة عند غياب بلاغات Urbi
	got, err = f.GetCellValue(workbook.SheetChannel, "A2")
	if err != nil {
		t.Fatalf("get cell: %v", err)
	}
	if got != aggregate.ChannelNoteEmpty {
		t.Fatalf("unexpected channel note: %q", got)
	}
}

func TestWrite_RoundTripCounts(t *testing.T) {
	t.Parallel()

	records := []*model.Record{
		{Admin: "إدارة أ", Status: model.StatusWorkContractor, SLA: model.SLAWithin, Source: model.SourceUrbi},
		{Admin: "إدارة أ", Status: model.StatusWorkContractor, SLA: model.SLAWithin, Source: model.SourceUrbi},
	}

	f, err := workbook.Write(
		aggregate.StatusPivot(records),
		aggregate.SLAPivot(records),
		aggregate.ChannelPivot(records),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	header, rows, err := workbook.ReadSheet("out.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if header[1] != string(model.StatusAwaitContractor) {
		t.Fatalf("unexpected header: %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
