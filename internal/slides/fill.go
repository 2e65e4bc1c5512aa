package slides

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/i-DAM/etmam-report/internal/artext"
)

// Metrics أعداد بلاغات إدارة واحدة كما تُعرض في جدول الشريحة
type Metrics struct {
	Open   int64 // المفتوحة بدون المعاد فتحها
	Reopen int64
	Near   int64 // قاربت على تجاوز SLA
	Late   int64 // تجاوزت SLA
	Other  int64 // مصادر أخرى
}

// MetricsFunc تعيد أعداد الإدارة التي تحمل التسمية المعطاة في القالب
type MetricsFunc func(adminLabel string) Metrics

// Totals مجاميع صف الإجمالي ورموز المجاميع، تتراكم من صفوف الجدول
// الرئيسي فقط. Open لا تشمل المعاد فتحها؛ لها مجموعها المستقل.
type Totals struct {
	Open   int64
	Reopen int64
	Near   int64
	Late   int64
	Other  int64
}

// FillOptions مدخلات تعبئة القالب
type FillOptions struct {
	Metrics MetricsFunc
	RefTime time.Time // وقت التحديث المعروض مكان {DATE}
}

var cardRe = regexp.MustCompile(`(?s)\{CARD_(OPEN|NEAR|LATE|OTHER)([^}]*)\}`)

var arabicWeekdays = map[time.Weekday]string{
	time.Saturday:  "السبت",
	time.Sunday:    "الأحد",
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
}

// Fill تعبئة القالب كاملاً: الجدول الرئيسي والجداول الجانبية في
// الشريحة الأولى ثم البطاقات والتاريخ ورموز المجاميع في كل الشرائح.
func Fill(deck *Deck, opts FillOptions) error {
	first, err := deck.Slide(0)
	if err != nil {
		return err
	}

	tables := tablesOn(first)
	if len(tables) == 0 {
		return fmt.Errorf("لم يتم العثور على جدول في الشريحة")
	}

	// الجدول الرئيسي هو الأعرض، والبقية جداول جانبية مكملة
	mainIdx := 0
	for i, t := range tables {
		if tableWidth(t) > tableWidth(tables[mainIdx]) {
			mainIdx = i
		}
	}

	totals := fillMainTable(tables[mainIdx], opts.Metrics)
	for i, t := range tables {
		if i != mainIdx {
			fillSideTable(t, opts.Metrics)
		}
	}

	for i := 0; i < deck.SlideCount(); i++ {
		doc, err := deck.Slide(i)
		if err != nil {
			return err
		}
		for _, body := range shapeBodies(doc) {
			fillCards(body, opts.Metrics, totals)
			fillDate(body, opts.RefTime)
			fillTotalTokens(body, totals)
		}
	}
	return nil
}

func tableWidth(t Table) int {
	if c := t.Cols(); c > 0 {
		return c
	}
	if rows := t.RowEls(); len(rows) > 0 {
		return len(cells(rows[0]))
	}
	return 0
}

// colRoles مواضع الأعمدة في جدول الشريحة حسب نص صف الترويسة
type colRoles struct {
	admin  int
	open   int
	reopen int
	near   int
	late   int
	other  int
}

// detectColumnRoles قراءة أدوار الأعمدة من نص صف الترويسة
// عمود الإدارة يفترض في الموضع صفر إن لم يُعثر عليه، والبقية تبقى
// -1 فتُتجاهل عند التعبئة.
func detectColumnRoles(headerCells []string) colRoles {
	roles := colRoles{admin: 0, open: -1, reopen: -1, near: -1, late: -1, other: -1}
	for i, raw := range headerCells {
		norm := artext.Normalize(raw)
		lower := strings.ToLower(norm)
		switch {
		case strings.Contains(norm, "الادارات") || strings.Contains(norm, "الاداره"):
			roles.admin = i
		case strings.Contains(norm, "البلاغات المفتوحه"):
			roles.open = i
		case strings.Contains(norm, "اعاده فتح") || strings.Contains(norm, "المعاد فتحها"):
			roles.reopen = i
		case strings.Contains(norm, "قارب"):
			roles.near = i
		case strings.Contains(norm, "المتاخره") || strings.Contains(lower, "تجاوز sla"):
			roles.late = i
		case strings.Contains(norm, "مصادر اخري"):
			roles.other = i
		}
	}
	return roles
}

// fillMainTable تعبئة الجدول الرئيسي وجمع مجاميع البطاقات من صفوفه
// صف الإجمالي يُحتسب من المجاميع المتراكمة ويُلوَّن نصه بالأبيض.
func fillMainTable(t Table, metrics MetricsFunc) Totals {
	var totals Totals
	rows := t.RowEls()
	if len(rows) < 2 {
		return totals
	}

	roles := detectColumnRoles(rowTexts(rows[0]))

	var totalRow []*etree.Element
	for _, tr := range rows[1:] {
		tcs := cells(tr)
		if roles.admin >= len(tcs) {
			continue
		}
		label := cellText(tcs[roles.admin])
		if strings.Contains(artext.Normalize(label), "الاجمالي") {
			totalRow = tcs
			continue
		}
		if strings.TrimSpace(label) == "" {
			continue
		}

		m := metrics(label)
		writeCount(tcs, roles.open, m.Open)
		writeCount(tcs, roles.reopen, m.Reopen)
		writeCount(tcs, roles.near, m.Near)
		writeCount(tcs, roles.late, m.Late)
		writeCount(tcs, roles.other, m.Other)

		totals.Open += m.Open
		totals.Reopen += m.Reopen
		totals.Near += m.Near
		totals.Late += m.Late
		totals.Other += m.Other
	}

	if totalRow != nil {
		writeWhiteCount(totalRow, roles.open, totals.Open)
		writeWhiteCount(totalRow, roles.reopen, totals.Reopen)
		writeWhiteCount(totalRow, roles.near, totals.Near)
		writeWhiteCount(totalRow, roles.late, totals.Late)
		writeWhiteCount(totalRow, roles.other, totals.Other)
	}
	return totals
}

// fillSideTable تعبئة جدول جانبي بنفس الأدوار دون صف إجمالي
// ولا أثر له على مجاميع البطاقات.
func fillSideTable(t Table, metrics MetricsFunc) {
	rows := t.RowEls()
	if len(rows) < 2 {
		return
	}

	roles := detectColumnRoles(rowTexts(rows[0]))

	for _, tr := range rows[1:] {
		tcs := cells(tr)
		if roles.admin >= len(tcs) {
			continue
		}
		label := cellText(tcs[roles.admin])
		if strings.Contains(artext.Normalize(label), "الاجمالي") {
			continue
		}
		if strings.TrimSpace(label) == "" {
			continue
		}

		m := metrics(label)
		writeCount(tcs, roles.open, m.Open)
		writeCount(tcs, roles.reopen, m.Reopen)
		writeCount(tcs, roles.near, m.Near)
		writeCount(tcs, roles.late, m.Late)
		writeCount(tcs, roles.other, m.Other)
	}
}

func rowTexts(tr *etree.Element) []string {
	tcs := cells(tr)
	out := make([]string, len(tcs))
	for i, tc := range tcs {
		out[i] = cellText(tc)
	}
	return out
}

func writeCount(tcs []*etree.Element, idx int, v int64) {
	if idx < 0 || idx >= len(tcs) {
		return
	}
	setCellText(tcs[idx], strconv.FormatInt(v, 10))
}

func writeWhiteCount(tcs []*etree.Element, idx int, v int64) {
	if idx < 0 || idx >= len(tcs) {
		return
	}
	setCellText(tcs[idx], strconv.FormatInt(v, 10))
	if body := childByTag(tcs[idx], "txBody"); body != nil {
		whiteRuns(body)
	}
}

// fillCards استبدال رموز البطاقات {CARD_X تسمية إدارة}
// التسمية المضمنة تُنظَّف ثم تُحل عبر المطابقة كما يُحل سطر الجدول،
// ويُكتب العدد وحده مكان الرمز كاملاً؛ بطاقة بلا تسمية تأخذ المجموع.
// النص البديل يتوسط ويُلوَّن بالأبيض.
func fillCards(body *etree.Element, metrics MetricsFunc, totals Totals) {
	text := bodyText(body)
	if !cardRe.MatchString(text) {
		return
	}

	replaced := cardRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := cardRe.FindStringSubmatch(m)
		label := cleanCardLabel(sub[2])
		if label == "" {
			return strconv.FormatInt(totalValue(sub[1], totals), 10)
		}
		return strconv.FormatInt(cardValue(sub[1], metrics(label)), 10)
	})

	setBodyText(body, replaced)
	centerParagraphs(body)
	whiteRuns(body)
}

func cardValue(kind string, m Metrics) int64 {
	switch kind {
	case "OPEN":
		return m.Open
	case "NEAR":
		return m.Near
	case "LATE":
		return m.Late
	case "OTHER":
		return m.Other
	}
	return 0
}

func totalValue(kind string, totals Totals) int64 {
	switch kind {
	case "OPEN":
		return totals.Open
	case "NEAR":
		return totals.Near
	case "LATE":
		return totals.Late
	case "OTHER":
		return totals.Other
	}
	return 0
}

// cleanCardLabel تنظيف عنوان البطاقة من فواصل التنسيق في القالب
func cleanCardLabel(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ", ":", " ", "ـ", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// fillDate استبدال رمز التاريخ بعبارة التحديث اليومي
func fillDate(body *etree.Element, ref time.Time) {
	text := bodyText(body)
	if !strings.Contains(text, "{DATE}") && !strings.Contains(text, "{{DATE}}") {
		return
	}

	stamp := fmt.Sprintf("التحديث اليومي %s %s",
		arabicWeekdays[ref.Weekday()], ref.Format("2006-01-02"))
	text = strings.ReplaceAll(text, "{{DATE}}", stamp)
	text = strings.ReplaceAll(text, "{DATE}", stamp)

	setBodyText(body, text)
	whiteRuns(body)
}

// fillTotalTokens استبدال رموز المجاميع الأربعة بصيغتيها
func fillTotalTokens(body *etree.Element, totals Totals) {
	text := bodyText(body)
	tokens := map[string]int64{
		"OPEN_TOTAL":     totals.Open,
		"NEAR_SLA_TOTAL": totals.Near,
		"LATE_TOTAL":     totals.Late,
		"OTHER_TOTAL":    totals.Other,
	}

	found := false
	for name := range tokens {
		if strings.Contains(text, "{"+name+"}") || strings.Contains(text, "{{"+name+"}}") {
			found = true
			break
		}
	}
	if !found {
		return
	}

	for name, v := range tokens {
		s := strconv.FormatInt(v, 10)
		text = strings.ReplaceAll(text, "{{"+name+"}}", s)
		text = strings.ReplaceAll(text, "{"+name+"}", s)
	}
	setBodyText(body, text)
}
