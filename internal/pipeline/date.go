package pipeline

import (
	"strings"
	"time"
)

// تفسير عمود تاريخ الانشاء بتساهل: تجارب التفسير شهر-أولاً ويوم-أولاً
// على كامل العمود، ويفوز التفسير الذي نجح في صفوف أكثر.

// صيغ لا تختلف بين التفسيرين
var commonLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	time.RFC3339,
}

// صيغ الشهر أولاً (نمط النظام المصدر الافتراضي)
var monthFirstLayouts = []string{
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006",
	"1-2-2006 15:04:05",
	"1-2-2006",
}

// صيغ اليوم أولاً
var dayFirstLayouts = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006 3:04:05 PM",
	"2/1/2006",
	"2-1-2006 15:04:05",
	"2-1-2006",
}

func parseWith(value string, layouts []string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range append(layouts, commonLayouts...) {
		if ts, err := time.Parse(layout, value); err == nil {
			return &ts
		}
	}
	return nil
}

// ParseCreatedColumn تفسير عمود التاريخ كاملاً
// يُجرَّب العمود بالتفسيرين ويُعتمد من فسّر صفوفاً أكثر؛
// التعادل لصالح الشهر أولاً. الصف الذي يفشل فيه التفسير الفائز يبقى nil.
func ParseCreatedColumn(values []string) []*time.Time {
	monthFirst := make([]*time.Time, len(values))
	dayFirst := make([]*time.Time, len(values))
	monthHits, dayHits := 0, 0

	for i, v := range values {
		if ts := parseWith(v, monthFirstLayouts); ts != nil {
			monthFirst[i] = ts
			monthHits++
		}
		if ts := parseWith(v, dayFirstLayouts); ts != nil {
			dayFirst[i] = ts
			dayHits++
		}
	}

	if dayHits > monthHits {
		return dayFirst
	}
	return monthFirst
}
