// Package aggregate بناء الجداول المحورية من سجلات البلاغات.
package aggregate

import (
	"sort"

	"github.com/samber/lo"

	"github.com/i-DAM/etmam-report/internal/model"
)

// ChannelNote نص البديل عندما لا توجد بلاغات للقناة المميزة
const (
	ChannelNoteHeader = "ملاحظة"
	ChannelNoteEmpty  = "لا توجد بلاغات Urbi"
)

// StatusPivot جدول (الإدارة × الحالة القياسية)
// كل الحالات الست حاضرة كأعمدة ولو بصفر، وصف الإجمالي يُلحق عند البناء.
func StatusPivot(records []*model.Record) *model.Pivot {
	columns := lo.Map(model.StatusOrder, func(s model.Status, _ int) string { return string(s) })
	return countPivot(records, columns, func(r *model.Record) string { return string(r.Status) })
}

// SLAPivot جدول (الإدارة × التوصيف)
func SLAPivot(records []*model.Record) *model.Pivot {
	columns := lo.Map(model.SLAOrder, func(b model.SLABucket, _ int) string { return string(b) })
	return countPivot(records, columns, func(r *model.Record) string { return string(r.SLA) })
}

// ChannelPivot جدول إدارات القناة المميزة (Urbi) فقط
// عند غياب أي بلاغ للقناة يُعاد جدول بديل بخلية واحدة مقروءة
// بدل مصفوفة فارغة.
func ChannelPivot(records []*model.Record) *model.Pivot {
	urbi := lo.Filter(records, func(r *model.Record, _ int) bool { return r.Source == model.SourceUrbi })
	if len(urbi) == 0 {
		return &model.Pivot{
			Columns: []string{ChannelNoteHeader},
			Note:    ChannelNoteEmpty,
		}
	}
	return countPivot(urbi, []string{string(model.SourceUrbi)}, func(r *model.Record) string { return string(r.Source) })
}

// countPivot عدّ البلاغات حسب (الإدارة، الفئة) مع صف الإجمالي
// ترتيب الصفوف هو الترتيب الأبجدي لأسماء الإدارات كما وردت.
func countPivot(records []*model.Record, columns []string, category func(*model.Record) string) *model.Pivot {
	colIdx := make(map[string]int, len(columns))
	for i, c := range columns {
		colIdx[c] = i
	}

	rows := make(map[string][]int64)
	for _, r := range records {
		idx, ok := colIdx[category(r)]
		if !ok {
			continue
		}
		counts, ok := rows[r.Admin]
		if !ok {
			counts = make([]int64, len(columns))
			rows[r.Admin] = counts
		}
		counts[idx]++
	}

	units := lo.Keys(rows)
	sort.Strings(units)

	total := make([]int64, len(columns))
	for _, counts := range rows {
		for i, v := range counts {
			total[i] += v
		}
	}

	return &model.Pivot{
		Columns: columns,
		Units:   units,
		Rows:    rows,
		Total:   total,
	}
}
