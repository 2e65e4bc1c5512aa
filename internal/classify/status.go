// Package classify تحويل القيم الحرة لحالة البلاغ ومصدره إلى القيم القياسية.
//
// القواعد جدول مرتب يُقيَّم من الأعلى للأسفل وأول قاعدة تنطبق تحسم؛
// الترتيب جزء من العقد لأن القواعد اللاحقة قد تحجبها السابقة.
package classify

import (
	"github.com/i-DAM/etmam-report/internal/artext"
	"github.com/i-DAM/etmam-report/internal/model"
)

type statusRule struct {
	Canon model.Status
	Match func(norm string) bool
}

// جملة "قيد التنفيذ" لها صيغتان في بيانات المصدر
func inProgress(s string) bool {
	return artext.ContainsAll(s, "قيد", "التنفيذ") ||
		(artext.ContainsAll(s, "التنفيذ") && artext.ContainsAny(s, "قيد", "جاري"))
}

// قواعد الحالة: انتظار الاستجابة حسب الجهة (مقاول ثم مراقب ثم مشرف)،
// ثم قيد التنفيذ حسب الجهة (مراقب قبل مقاول)، ثم المعلق المعاد فتحه.
var statusRules = []statusRule{
	{
		Canon: model.StatusAwaitContractor,
		Match: func(s string) bool { return artext.ContainsAll(s, "انتظار", "استجابه", "مقاول") },
	},
	{
		Canon: model.StatusAwaitInspector,
		Match: func(s string) bool { return artext.ContainsAll(s, "انتظار", "استجابه", "مراقب") },
	},
	{
		Canon: model.StatusAwaitSupervisor,
		Match: func(s string) bool { return artext.ContainsAll(s, "انتظار", "استجابه", "مشرف") },
	},
	{
		Canon: model.StatusWorkInspector,
		Match: func(s string) bool { return inProgress(s) && artext.ContainsAll(s, "مراقب") },
	},
	{
		Canon: model.StatusWorkContractor,
		Match: func(s string) bool { return inProgress(s) && artext.ContainsAll(s, "مقاول") },
	},
	{
		Canon: model.StatusReopened,
		Match: func(s string) bool {
			return artext.ContainsAll(s, "معلق") &&
				artext.ContainsAny(s, "اعاده فتح", "اعادة فتح", "فتح")
		},
	},
}

// CanonStatus تحويل حالة خام إلى الحالة القياسية
// إن لم تنطبق أي قاعدة تُعاد القيمة الخام كما هي؛ هذه الصفوف تسقط
// لاحقاً لأنها خارج مجموعة الحالات القياسية.
func CanonStatus(raw string) string {
	s := artext.Normalize(raw)
	for _, r := range statusRules {
		if r.Match(s) {
			return string(r.Canon)
		}
	}
	return raw
}
