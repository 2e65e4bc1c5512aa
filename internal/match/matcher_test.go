package match

import (
	"reflect"
	"testing"
)

func TestResolve_IdenticalAfterNormalization(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"الإدارة العامة للنظافة",
		"إدارة المشاريع",
	}
	got := Resolve("الاداره العامه للنظافه", candidates)
	if !reflect.DeepEqual(got, []string{"الإدارة العامة للنظافة"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_MunicipalDirectionExclusive(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة تعمير جنوب المدينة",
		"بلدية جنوب",
		"إدارة رقابة الخدمات بقطاع جنوب",
		"إدارة تعمير شمال المدينة",
	}
	got := Resolve("بلدية جنوب", candidates)
	want := []string{
		"إدارة تعمير جنوب المدينة",
		"إدارة رقابة الخدمات بقطاع جنوب",
	}
	// القاعدة الحصرية تمنع مطابقة "بلدية جنوب" الحرفية نفسها لأنها
	// بلا تعمير أو رقابة خدمات
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_MunicipalDirectionZeroHitsStaysEmpty(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"بلدية شمال", // اتجاه مختلف
		"إدارة عامة",
	}
	got := Resolve("بلدية جنوب", candidates)
	if len(got) != 0 {
		t.Fatalf("exclusive rule must not fall back: %v", got)
	}
}

func TestResolve_GeneralCleanliness(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة النظافة بقطاع الشمال",
		"إدارة المشاريع",
		"النظافة العامة",
	}
	got := Resolve("إدارة النظافة العامة", candidates)
	want := []string{"إدارة النظافة بقطاع الشمال", "النظافة العامة"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_GeneralProjects(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة مشاريع الصيانة",
		"إدارة النظافة",
	}
	got := Resolve("الإدارة العامة للمشاريع", candidates)
	if !reflect.DeepEqual(got, []string{"إدارة مشاريع الصيانة"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_OperationMaintenanceIncludesLighting(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة الإنارة",
		"إدارة التشغيل والصيانة",
		"إدارة المشاريع",
	}
	got := Resolve("إدارة التشغيل والصيانة", candidates)
	want := []string{"إدارة الإنارة", "إدارة التشغيل والصيانة"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_EnvironmentalSanitation(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة الإصحاح البيئي",
		"إدارة البيئة",
	}
	got := Resolve("الإصحاح البيئي", candidates)
	if !reflect.DeepEqual(got, []string{"إدارة الإصحاح البيئي"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_KeywordSubsetTolerance(t *testing.T) {
	t.Parallel()

	// كلمات وصفية زائدة في طرف واحد لا تمنع المطابقة
	candidates := []string{"إدارة الحدائق"}
	got := Resolve("الإدارة العامة للحدائق بأمانة المدينة", candidates)
	if !reflect.DeepEqual(got, []string{"إدارة الحدائق"}) {
		t.Fatalf("unexpected: %v", got)
	}
}

func TestResolve_NoPlausibleCandidate(t *testing.T) {
	t.Parallel()

	got := Resolve("إدارة الطوارئ والأزمات", []string{"إدارة الحدائق", "إدارة النظافة"})
	if len(got) != 0 {
		t.Fatalf("want empty, got %v", got)
	}
}

func TestResolve_OrderFollowsCandidates(t *testing.T) {
	t.Parallel()

	candidates := []string{
		"إدارة رقابة الخدمات بقطاع وسط",
		"إدارة تعمير وسط المدينة",
	}
	got := Resolve("بلدية وسط المدينة", candidates)
	if !reflect.DeepEqual(got, candidates) {
		t.Fatalf("order must follow candidate list: %v", got)
	}
}
