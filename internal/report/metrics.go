package report

import (
	"strings"

	"github.com/i-DAM/etmam-report/internal/artext"
	"github.com/i-DAM/etmam-report/internal/match"
	"github.com/i-DAM/etmam-report/internal/model"
	"github.com/i-DAM/etmam-report/internal/slides"
)

// Resolver يحوّل تسمية إدارة في القالب إلى أعدادها من الجداول المحورية
// المطابقة تجري على كل جدول على حدة لأن صفوف الإدارات قد تختلف بينها،
// والنتيجة تُحفظ لأن التسمية نفسها تتكرر في الجدول الرئيسي والجانبية.
type Resolver struct {
	status  *model.Pivot
	sla     *model.Pivot
	channel *model.Pivot

	reopenCol int
	nearCol   int
	lateCol   int

	cache map[string]slides.Metrics
}

// NewResolver ربط الجداول الثلاثة واكتشاف مواضع الأعمدة المطلوبة
func NewResolver(status, sla, channel *model.Pivot) *Resolver {
	r := &Resolver{
		status:    status,
		sla:       sla,
		channel:   channel,
		reopenCol: -1,
		nearCol:   -1,
		lateCol:   -1,
		cache:     make(map[string]slides.Metrics),
	}

	for i, c := range status.Columns {
		n := artext.Normalize(c)
		if (strings.Contains(n, "معلق") || strings.Contains(n, "مغلق")) && strings.Contains(n, "فتح") {
			r.reopenCol = i
			break
		}
	}
	for i, c := range sla.Columns {
		n := artext.Normalize(c)
		switch {
		case strings.Contains(n, "قارب"):
			r.nearCol = i
		case strings.Contains(n, "تجاوز") && !strings.Contains(n, "لم"):
			// "لم تتجاوز" يحوي "تجاوز" أيضاً فلا يُعد عمود تأخر
			r.lateCol = i
		}
	}
	return r
}

// Metrics أعداد الإدارة التي تطابق التسمية المعطاة
// الإدارات بلا أي صف مطابق تُعاد أصفاراً.
func (r *Resolver) Metrics(label string) slides.Metrics {
	if m, ok := r.cache[label]; ok {
		return m
	}

	var m slides.Metrics

	statusSum, reopen := r.sumColumns(r.status, label, r.reopenCol)
	m.Reopen = reopen
	m.Open = statusSum - reopen

	_, m.Near = r.sumColumns(r.sla, label, r.nearCol)
	_, m.Late = r.sumColumns(r.sla, label, r.lateCol)

	if !r.channel.IsPlaceholder() {
		m.Other, _ = r.sumColumns(r.channel, label, -1)
	}

	r.cache[label] = m
	return m
}

// sumColumns مجموع كل الأعمدة ومجموع عمود واحد عبر الصفوف المطابقة
func (r *Resolver) sumColumns(p *model.Pivot, label string, col int) (rowSum, colSum int64) {
	if p.Empty() {
		return 0, 0
	}
	for _, unit := range match.Resolve(label, p.Units) {
		counts := p.Row(unit)
		for i, v := range counts {
			rowSum += v
			if i == col {
				colSum += v
			}
		}
	}
	return rowSum, colSum
}
