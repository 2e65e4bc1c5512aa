package artext

import (
	"regexp"
	"strings"
)

// توحيد الكتابة العربية قبل أي مقارنة نصية.
// القيم الأصلية تبقى كما هي للعرض؛ التوحيد للمطابقة فقط.

var (
	// طيّ الحروف المتكافئة في الكتابة اليومية
	letterFolder = strings.NewReplacer(
		"أ", "ا",
		"إ", "ا",
		"آ", "ا",
		"ى", "ي",
		"ة", "ه",
	)

	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize توحيد نص عربي للمقارنة
// القاعدة: قصّ الأطراف، طيّ الهمزات والألف المقصورة والتاء المربوطة،
// ضغط الفراغات المتكررة، وإزالة الفراغ حول الشرطة.
// العملية ثابتة: Normalize(Normalize(x)) == Normalize(x)
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = letterFolder.Replace(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " -", "-")
	s = strings.ReplaceAll(s, "- ", "-")
	return s
}

// كلمات وصفية عامة لا تميّز اسم إدارة عن آخر
var stopWords = map[string]struct{}{
	"الاداره": {}, "اداره": {}, "الادارة": {},
	"العامه": {}, "عامه": {}, "العامة": {},
	"بلديه": {}, "بلدية": {},
	"امانه": {}, "امانة": {},
	"مدينه": {}, "مدينة": {}, "المدينه": {},
	"منطقه": {}, "منطقة": {}, "المنطقه": {},
}

// Keywords استخراج الكلمات المفتاحية من تسمية إدارة
// بعد التوحيد: تقسيم على الفراغ، نزع البادئات (لل / ال / ل) إذا بقي
// من الكلمة ما يُعتدّ به، ثم استبعاد الكلمات الوصفية العامة.
func Keywords(s string) map[string]struct{} {
	s = Normalize(s)
	keys := make(map[string]struct{})
	for _, t := range strings.Fields(s) {
		r := []rune(t)
		switch {
		case strings.HasPrefix(t, "لل") && len(r) > 2:
			t = string(r[2:])
		case strings.HasPrefix(t, "ال") && len(r) > 2:
			t = string(r[2:])
		case strings.HasPrefix(t, "ل") && len(r) > 2:
			t = string(r[1:])
		}
		if t == "" {
			continue
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		keys[t] = struct{}{}
	}
	return keys
}

// KeysEqual تساوي مجموعتي كلمات مفتاحية
func KeysEqual(a, b map[string]struct{}) bool {
	return len(a) == len(b) && KeysSubset(a, b)
}

// KeysSubset هل كل عناصر a موجودة في b
func KeysSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

// ContainsAll هل يحتوي النص على كل الكلمات المحددة
func ContainsAll(text string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(text, sub) {
			return false
		}
	}
	return true
}

// ContainsAny هل يحتوي النص على أي من الكلمات المحددة
func ContainsAny(text string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
