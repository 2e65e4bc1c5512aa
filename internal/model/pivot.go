package model

// TotalRowLabel تسمية صف الإجمالي في كل الجداول المحورية
const TotalRowLabel = "الإجمالي الكلي"

// Pivot جدول محوري: عدّادات (إدارة × فئة) مع صف إجمالي
// صف الإجمالي يُحسب عند البناء ولا يُحدَّث بعده.
type Pivot struct {
	Columns []string           // أسماء الفئات بترتيب العرض
	Units   []string           // الإدارات بترتيب الصفوف، بدون صف الإجمالي
	Rows    map[string][]int64 // إدارة → عدّادات بترتيب Columns
	Total   []int64            // صف الإجمالي الكلي

	// Note بديل مقروء عندما لا توجد بيانات (جدول القناة فقط)
	Note string
}

// IsPlaceholder هل الجدول بديل "لا توجد بيانات"
func (p *Pivot) IsPlaceholder() bool {
	return p != nil && p.Note != ""
}

// Empty هل الجدول بلا صفوف
func (p *Pivot) Empty() bool {
	return p == nil || len(p.Units) == 0
}

// Row عدّادات إدارة واحدة، أو nil إن لم توجد
func (p *Pivot) Row(unit string) []int64 {
	if p == nil {
		return nil
	}
	return p.Rows[unit]
}

// ColumnIndex موضع فئة في الأعمدة، أو -1
func (p *Pivot) ColumnIndex(column string) int {
	if p == nil {
		return -1
	}
	for i, c := range p.Columns {
		if c == column {
			return i
		}
	}
	return -1
}
