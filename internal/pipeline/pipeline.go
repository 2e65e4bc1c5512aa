// Package pipeline معالجة صفوف البلاغات الخام حتى تصبح سجلات قابلة للتجميع.
//
// المعالجة لا تفشل على صف سيئ أبداً: الحالات والمصادر غير المعروفة
// تُستبعد بصمت، والتواريخ المعطوبة تصبح nil وتنعكس صفر ساعات.
package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/i-DAM/etmam-report/internal/artext"
	"github.com/i-DAM/etmam-report/internal/classify"
	"github.com/i-DAM/etmam-report/internal/model"
)

// أسماء الأعمدة المطلوبة في ملف المصدر
const (
	ColID      = "رقم البلاغ"
	ColAdmin   = "الإدارة"
	ColStatus  = "حالة البلاغ في النظام"
	ColSource  = "مصدر البلاغ"
	ColCreated = "تاريخ الانشاء"

	// عمود اختياري يُستبعد منه تصنيف محدد
	ColNewClass = "التصنيف الجديد"
)

// التصنيف المستبعد من كل التقارير
const excludedClass = "السيارات التالفة"

// عدد الأعمدة المؤقتة بعد عمود تاريخ الانشاء في قالب المصدر
const transientAfterCreated = 3

// Process تحويل صفوف الملف إلى سجلات بلاغات
// closedAt هو وقت التقرير ويُطبَّق كوقت إغلاق موحد على كل الصفوف.
func Process(header []string, rows [][]string, closedAt time.Time) ([]*model.Record, model.FilterStats, error) {
	cols, err := trimColumns(header)
	if err != nil {
		return nil, model.FilterStats{}, err
	}

	// مرشّح التصنيف المستبعد، مع إحصاءات التشغيلة
	stats := model.FilterStats{RowsBefore: len(rows)}
	if idx, ok := cols.index(ColNewClass); ok {
		bad := artext.Normalize(excludedClass)
		kept := make([][]string, 0, len(rows))
		for _, row := range rows {
			if artext.Normalize(cell(row, idx)) == bad {
				continue
			}
			kept = append(kept, row)
		}
		rows = kept
	}
	stats.RowsAfter = len(rows)
	stats.Deleted = stats.RowsBefore - stats.RowsAfter

	idxID, _ := cols.index(ColID)
	idxAdmin, ok := cols.index(ColAdmin)
	if !ok {
		return nil, stats, fmt.Errorf("عمود %s غير موجود في الملف", ColAdmin)
	}
	idxStatus, ok := cols.index(ColStatus)
	if !ok {
		return nil, stats, fmt.Errorf("عمود %s غير موجود في الملف", ColStatus)
	}
	idxSource, ok := cols.index(ColSource)
	if !ok {
		return nil, stats, fmt.Errorf("عمود %s غير موجود في الملف", ColSource)
	}
	idxCreated, _ := cols.index(ColCreated)

	created := ParseCreatedColumn(columnValues(rows, idxCreated))

	records := make([]*model.Record, 0, len(rows))
	for i, row := range rows {
		rec := &model.Record{
			ID:        cell(row, idxID),
			Admin:     cell(row, idxAdmin),
			RawStatus: cell(row, idxStatus),
			RawSource: cell(row, idxSource),
			CreatedAt: created[i],
			ClosedAt:  closedAt,
		}

		// الوقت المنقضي بالأرضية؛ التاريخ غير المفسَّر يُحسب صفر ثوانٍ
		seconds := 0.0
		if rec.CreatedAt != nil {
			seconds = closedAt.Sub(*rec.CreatedAt).Seconds()
		}
		hours := int64(math.Floor(seconds / 3600))
		rec.ElapsedHours = &hours

		status := classify.CanonStatus(rec.RawStatus)
		if !model.IsCanonStatus(status) {
			continue
		}
		rec.Status = model.Status(status)

		source := classify.CanonSource(rec.RawSource)
		if !model.IsAllowedSource(source) {
			continue
		}
		rec.Source = model.Source(source)

		rec.SLA = model.SLAFromHours(hours)
		records = append(records, rec)
	}

	return records, stats, nil
}

// keptColumns الأعمدة الباقية بعد القصّ البنيوي، بمواضعها الأصلية
type keptColumns struct {
	names   []string
	indices []int
}

func (k keptColumns) index(name string) (int, bool) {
	for i, n := range k.names {
		if n == name {
			return k.indices[i], true
		}
	}
	return -1, false
}

// trimColumns القصّ البنيوي لرأس الجدول
// تسقط نافذة الأعمدة المؤقتة بعد تاريخ الانشاء أولاً، ثم كل ما بعد
// عمود المصدر؛ ترتيب الخطوتين مهم لأن وجود "التصنيف الجديد" يُقرَّر
// على ما تبقى.
func trimColumns(header []string) (keptColumns, error) {
	idxCreated := -1
	for i, h := range header {
		if h == ColCreated {
			idxCreated = i
			break
		}
	}
	if idxCreated < 0 {
		return keptColumns{}, fmt.Errorf("عمود %s غير موجود في الملف", ColCreated)
	}

	dropEnd := idxCreated + transientAfterCreated
	if dropEnd >= len(header) {
		dropEnd = len(header) - 1
	}

	kept := keptColumns{}
	for i, h := range header {
		if i > idxCreated && i <= dropEnd {
			continue
		}
		kept.names = append(kept.names, h)
		kept.indices = append(kept.indices, i)
	}

	// قصّ ما بعد عمود المصدر على الأعمدة المتبقية
	for i, n := range kept.names {
		if n == ColSource {
			kept.names = kept.names[:i+1]
			kept.indices = kept.indices[:i+1]
			break
		}
	}

	return kept, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func columnValues(rows [][]string, idx int) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = cell(row, idx)
	}
	return out
}
