// Package match مطابقة أسماء الإدارات بين قالب العرض وبيانات المصدر.
//
// الاسم الواحد يُكتب بصيغ مختلفة في الجهتين (بادئات، مرادفات
// عامه/بلديه/منطقه، ومحددات اتجاه أو قطاع)، لذا تُقيَّم قواعد خاصة
// مرتبة قبل المطابقة العامة؛ الترتيب جزء من العقد لأن قاعدة لاحقة
// قد تحجبها سابقة.
package match

import (
	"github.com/i-DAM/etmam-report/internal/artext"
)

// label تسمية إدارة مع صورتها الموحدة وكلماتها المفتاحية
type label struct {
	raw  string
	norm string
	keys map[string]struct{}
}

func newLabel(s string) label {
	return label{raw: s, norm: artext.Normalize(s), keys: artext.Keywords(s)}
}

// rule قاعدة خاصة: شرط تفعيل على الاستعلام، وشرط قبول على المرشح
// Exclusive تعني أن تفعيل القاعدة يُنهي المطابقة لهذا المرشح نهائياً،
// قبولاً أو رفضاً، دون المرور على بقية القواعد أو المطابقة العامة.
type rule struct {
	Name      string
	Trigger   func(q label) bool
	Candidate func(q, c label) bool
	Exclusive bool
}

var directions = []string{"جنوب", "شمال", "وسط"}

// علامة إدارات التعمير أو رقابة الخدمات داخل بلديات الاتجاهات
func districtWorks(n string) bool {
	return artext.ContainsAny(n, "تعمير") || artext.ContainsAll(n, "رقابه", "الخدمات")
}

// rules القواعد الخاصة بترتيب تقييمها
var rules = []rule{
	{
		// بلدية مع اتجاه: تُحصر المطابقة في إدارات الاتجاه نفسه
		// التي تحمل تعمير أو رقابة+خدمات، ولا بديل عنها ولو صفر نتائج.
		Name: "municipal-direction",
		Trigger: func(q label) bool {
			return artext.ContainsAny(q.norm, "بلديه", "بلدية") &&
				artext.ContainsAny(q.norm, directions...)
		},
		Candidate: func(q, c label) bool {
			for _, d := range directions {
				if artext.ContainsAll(q.norm, d) && artext.ContainsAll(c.norm, d) && districtWorks(c.norm) {
					return true
				}
			}
			return false
		},
		Exclusive: true,
	},
	{
		Name: "general-cleanliness",
		Trigger: func(q label) bool {
			return artext.ContainsAny(q.norm, "النظافه", "النظافة") &&
				artext.ContainsAny(q.norm, "اداره", "الاداره", "الادارة") &&
				artext.ContainsAny(q.norm, "عامه", "العامه", "العامة")
		},
		Candidate: func(q, c label) bool {
			return artext.ContainsAny(c.norm, "النظافه", "النظافة")
		},
	},
	{
		Name: "general-projects",
		Trigger: func(q label) bool {
			return artext.ContainsAll(q.norm, "مشاريع") &&
				artext.ContainsAny(q.norm, "اداره", "الاداره", "الادارة") &&
				artext.ContainsAny(q.norm, "عامه", "العامه", "العامة")
		},
		Candidate: func(q, c label) bool {
			return artext.ContainsAll(c.norm, "مشاريع")
		},
	},
	{
		Name: "operation-maintenance",
		Trigger: func(q label) bool {
			return artext.ContainsAll(q.norm, "تشغيل", "صيان")
		},
		Candidate: func(q, c label) bool {
			return artext.ContainsAll(c.norm, "تشغيل", "صيان") ||
				artext.ContainsAny(c.norm, "اناره", "انارة")
		},
	},
	{
		Name: "environmental-sanitation",
		Trigger: func(q label) bool {
			return artext.ContainsAll(q.norm, "الاصحاح", "البيئي")
		},
		Candidate: func(q, c label) bool {
			return artext.ContainsAll(c.norm, "الاصحاح", "البيئي")
		},
	},
}

// Resolve إدارات المصدر التي تُجمع لتعبئة سطر القالب
// تُعاد النتائج بترتيب ظهورها في candidates لا بترتيب اكتشافها،
// وقائمة فارغة (لا خطأ) عندما لا يوجد مرشح معقول.
func Resolve(query string, candidates []string) []string {
	q := newLabel(query)

	matches := make([]string, 0, len(candidates))
	for _, name := range candidates {
		if matchOne(q, newLabel(name)) {
			matches = append(matches, name)
		}
	}
	return matches
}

func matchOne(q, c label) bool {
	for _, r := range rules {
		if !r.Trigger(q) {
			continue
		}
		if r.Candidate(q, c) {
			return true
		}
		if r.Exclusive {
			return false
		}
	}

	// المطابقة العامة: تطابق النص الموحد، أو تساوي مجموعتي الكلمات
	// المفتاحية، أو احتواء إحداهما في الأخرى (يتسامح مع كلمات وصفية
	// زائدة في أحد الطرفين).
	if q.norm == c.norm {
		return true
	}
	return artext.KeysEqual(q.keys, c.keys) ||
		artext.KeysSubset(q.keys, c.keys) ||
		artext.KeysSubset(c.keys, q.keys)
}
