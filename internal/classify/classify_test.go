package classify

import (
	"testing"

	"github.com/i-DAM/etmam-report/internal/model"
)

func TestCanonStatus_AwaitingVariants(t *testing.T) {
	t.Parallel()

	if got := CanonStatus("انتظار الإستجابة من المقاول"); got != string(model.StatusAwaitContractor) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonStatus("انتظار الاستجابة - مراقب"); got != string(model.StatusAwaitInspector) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonStatus("  انتظار  الاستجابه مشرف "); got != string(model.StatusAwaitSupervisor) {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonStatus_ActorPriority(t *testing.T) {
	t.Parallel()

	// عند ورود أكثر من جهة يفوز الترتيب: مقاول ثم مراقب ثم مشرف
	got := CanonStatus("انتظار الاستجابة مراقب مقاول")
	if got != string(model.StatusAwaitContractor) {
		t.Fatalf("unexpected: %q", got)
	}

	// في قيد التنفيذ يفوز المراقب قبل المقاول
	got = CanonStatus("قيد التنفيذ مقاول مراقب")
	if got != string(model.StatusWorkInspector) {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonStatus_InProgressPhrasings(t *testing.T) {
	t.Parallel()

	if got := CanonStatus("جاري التنفيذ من قبل المقاول"); got != string(model.StatusWorkContractor) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonStatus("قيد التنفيذ - مقاول"); got != string(model.StatusWorkContractor) {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonStatus_Reopened(t *testing.T) {
	t.Parallel()

	if got := CanonStatus("معلق - إعادة فتح"); got != string(model.StatusReopened) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonStatus("معلق بعد فتح البلاغ"); got != string(model.StatusReopened) {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonStatus_UnknownReturnsRaw(t *testing.T) {
	t.Parallel()

	raw := "  مغلق نهائياً  "
	if got := CanonStatus(raw); got != raw {
		t.Fatalf("want raw back, got %q", got)
	}
	if model.IsCanonStatus(raw) {
		t.Fatalf("raw value must stay outside the canonical set")
	}
}

func TestCanonStatus_AwaitingWithoutActorFallsThrough(t *testing.T) {
	t.Parallel()

	// انتظار استجابة بلا جهة لا يطابق أي قاعدة
	raw := "انتظار الاستجابة"
	if got := CanonStatus(raw); got != raw {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonSource(t *testing.T) {
	t.Parallel()

	if got := CanonSource("URBI App"); got != string(model.SourceUrbi) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonSource("تطبيق بلدي الموحد"); got != string(model.SourceBaladyApp) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonSource("توكلنا"); got != string(model.SourceTawakkalna) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonSource("مركز الاتصال 940"); got != string(model.SourceCallCenter) {
		t.Fatalf("unexpected: %q", got)
	}
	if got := CanonSource("مراكز الاتصال"); got != string(model.SourceCallCenter) {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestCanonSource_UnknownReturnsRaw(t *testing.T) {
	t.Parallel()

	raw := "قنوات أخرى"
	if got := CanonSource(raw); got != raw {
		t.Fatalf("want raw back, got %q", got)
	}
	if model.IsAllowedSource(raw) {
		t.Fatalf("raw value must stay outside the allowed set")
	}
}
