package model

import "time"

// Status حالة البلاغ القياسية
// ترتيب القيم في StatusOrder هو ترتيب الأعمدة في كل المخرجات.
type Status string

const (
	StatusAwaitContractor Status = "انتظار الاستجابة - مقاول"
	StatusAwaitInspector  Status = "انتظار الاستجابة - مراقب"
	StatusAwaitSupervisor Status = "انتظار الاستجابة - مشرف"
	StatusWorkInspector   Status = "قيد التنفيذ - مراقب"
	StatusWorkContractor  Status = "قيد التنفيذ - مقاول"
	StatusReopened        Status = "معلق - اعادة فتح"
)

// StatusOrder الحالات القياسية الست بترتيب العرض
var StatusOrder = []Status{
	StatusAwaitContractor,
	StatusAwaitInspector,
	StatusAwaitSupervisor,
	StatusWorkInspector,
	StatusWorkContractor,
	StatusReopened,
}

// IsCanonStatus هل القيمة ضمن الحالات القياسية
func IsCanonStatus(s string) bool {
	for _, c := range StatusOrder {
		if Status(s) == c {
			return true
		}
	}
	return false
}

// Source مصدر البلاغ القياسي
type Source string

const (
	SourceUrbi       Source = "Urbi"
	SourceBaladyApp  Source = "تطبيق بلدي"
	SourceTawakkalna Source = "توكلنا"
	SourceCallCenter Source = "مراكز الاتصال"
)

// SourceOrder المصادر المسموح بها بترتيب العرض
var SourceOrder = []Source{
	SourceUrbi,
	SourceBaladyApp,
	SourceTawakkalna,
	SourceCallCenter,
}

// IsAllowedSource هل القيمة ضمن المصادر المسموح بها
func IsAllowedSource(s string) bool {
	for _, c := range SourceOrder {
		if Source(s) == c {
			return true
		}
	}
	return false
}

// SLABucket توصيف البلاغ حسب الوقت المنقضي
type SLABucket string

const (
	SLAWithin SLABucket = "لم تتجاوز"
	SLANear   SLABucket = "قارب على تجاوز SLA"
	SLALate   SLABucket = "تجاوز SLA"
)

// SLAOrder التوصيفات الثلاثة بترتيب العرض
var SLAOrder = []SLABucket{SLAWithin, SLANear, SLALate}

// SLAFromHours التوصيف من الساعات المنقضية
// أقل من 72 لم تتجاوز، من 72 إلى 95 قارب، وما عدا ذلك تجاوز.
func SLAFromHours(hours int64) SLABucket {
	switch {
	case hours < 72:
		return SLAWithin
	case hours <= 95:
		return SLANear
	default:
		return SLALate
	}
}

// Record بلاغ واحد بعد المعالجة
// القيم الخام تبقى للعرض، والقيم القياسية للتجميع.
type Record struct {
	ID        string
	Admin     string // الإدارة كما وردت في الملف
	RawStatus string
	Status    Status
	RawSource string
	Source    Source

	CreatedAt *time.Time // nil إذا تعذر تفسير تاريخ الانشاء
	ClosedAt  time.Time  // وقت التقرير الموحد لكل الصفوف

	// الساعات المنقضية بعد الأرضية. التاريخ غير المفسَّر يُحسب صفر
	// ثوانٍ قبل الأرضية، والحقل يبقى مؤشراً ليميّزه من أراد لاحقاً.
	ElapsedHours *int64

	SLA SLABucket
}

// FilterStats إحصاءات مرشّح التصنيف المستبعد لتشغيلة واحدة
// تُعاد بجانب الصفوف بدل تكرارها كأعمدة في كل صف.
type FilterStats struct {
	RowsBefore int `json:"rowsBefore"`
	RowsAfter  int `json:"rowsAfter"`
	Deleted    int `json:"deleted"`
}
