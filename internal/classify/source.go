package classify

import (
	"strings"

	"github.com/i-DAM/etmam-report/internal/artext"
	"github.com/i-DAM/etmam-report/internal/model"
)

type sourceRule struct {
	Canon model.Source
	Match func(norm string) bool
}

// قواعد المصدر: اسم القناة الحرفي، ثم تطبيق بلدي، ثم توكلنا،
// ثم مراكز الاتصال بصيغتي المفرد والجمع.
var sourceRules = []sourceRule{
	{
		Canon: model.SourceUrbi,
		Match: func(s string) bool { return strings.Contains(strings.ToLower(s), "urbi") },
	},
	{
		Canon: model.SourceBaladyApp,
		Match: func(s string) bool { return strings.Contains(s, "بلدي") },
	},
	{
		Canon: model.SourceTawakkalna,
		Match: func(s string) bool { return strings.Contains(s, "توكلنا") },
	},
	{
		Canon: model.SourceCallCenter,
		Match: func(s string) bool {
			return (artext.ContainsAll(s, "مراكز", "اتصال")) ||
				(artext.ContainsAll(s, "مركز", "اتصال"))
		},
	},
}

// CanonSource تحويل مصدر خام إلى المصدر القياسي
// القيمة غير المعروفة تُعاد كما هي وتسقط لاحقاً خارج المجموعة المسموحة.
func CanonSource(raw string) string {
	s := artext.Normalize(raw)
	for _, r := range sourceRules {
		if r.Match(s) {
			return string(r.Canon)
		}
	}
	return raw
}
