// Package slides تعبئة قالب العرض التقديمي بنتائج التجميع.
//
// القالب ملف pptx ثابت يُعدَّل في مكانه: خلايا الجداول ورموز
// الاستبدال فقط، وكل ما عداه (الشعارات، النصوص الثابتة، التنسيق)
// يمرّ كما هو بايتاً ببايت.
package slides

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

var slidePartRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// Deck قالب عرض محمّل في الذاكرة
// أجزاء الشرائح تُفسَّر عند أول طلب؛ بقية أجزاء الحزمة تبقى خاماً.
type Deck struct {
	order  []string
	raw    map[string][]byte
	docs   map[string]*etree.Document
	slides []string // أسماء أجزاء الشرائح بترتيب رقمها
}

// Open فتح قالب pptx من الذاكرة
func Open(data []byte) (*Deck, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("فتح قالب العرض: %w", err)
	}

	d := &Deck{
		raw:  make(map[string][]byte),
		docs: make(map[string]*etree.Document),
	}

	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return nil, fmt.Errorf("قراءة جزء %s: %w", zf.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("قراءة جزء %s: %w", zf.Name, err)
		}
		d.order = append(d.order, zf.Name)
		d.raw[zf.Name] = content
		if slidePartRe.MatchString(zf.Name) {
			d.slides = append(d.slides, zf.Name)
		}
	}

	sort.Slice(d.slides, func(i, j int) bool {
		return slideNumber(d.slides[i]) < slideNumber(d.slides[j])
	})

	if len(d.slides) == 0 {
		return nil, fmt.Errorf("القالب لا يحتوي على شرائح")
	}

	return d, nil
}

func slideNumber(part string) int {
	m := slidePartRe.FindStringSubmatch(part)
	if len(m) != 2 {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// SlideCount عدد الشرائح
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// Slide مستند XML للشريحة i (من صفر)
// الجزء المفسَّر يُعاد تسلسله عند الحفظ، فأي تعديل عليه يُكتب.
func (d *Deck) Slide(i int) (*etree.Document, error) {
	if i < 0 || i >= len(d.slides) {
		return nil, fmt.Errorf("لا توجد شريحة رقم %d", i+1)
	}
	part := d.slides[i]
	if doc, ok := d.docs[part]; ok {
		return doc, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(d.raw[part]); err != nil {
		return nil, fmt.Errorf("تفسير الشريحة %s: %w", part, err)
	}
	d.docs[part] = doc
	return doc, nil
}

// Save إعادة تركيب الحزمة
// الأجزاء غير المفسَّرة تُنسخ كما وردت؛ أجزاء الشرائح المفسَّرة
// تُسلسل من مستندها.
func (d *Deck) Save() ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, name := range d.order {
		content := d.raw[name]
		if doc, ok := d.docs[name]; ok {
			serialized, err := doc.WriteToBytes()
			if err != nil {
				return nil, fmt.Errorf("تسلسل %s: %w", name, err)
			}
			content = serialized
		}

		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("كتابة %s: %w", name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("كتابة %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("إغلاق الحزمة: %w", err)
	}
	return buf.Bytes(), nil
}

// ===== عناصر DrawingML =====

// findAll بحث متعمق عن عناصر بوسم محدد (مع تجاهل البادئة الفضائية)
func findAll(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, e)
			return // لا جداول داخل جداول في قوالبنا
		}
		for _, c := range e.ChildElements() {
			walk(c)
		}
	}
	for _, c := range el.ChildElements() {
		walk(c)
	}
	return out
}

// Table جدول a:tbl داخل شريحة
type Table struct {
	el *etree.Element
}

// tablesOn كل جداول الشريحة بترتيب ظهورها
func tablesOn(doc *etree.Document) []Table {
	var out []Table
	for _, el := range findAll(doc.Root(), "tbl") {
		out = append(out, Table{el: el})
	}
	return out
}

// Cols عدد أعمدة الجدول من شبكة الأعمدة
func (t Table) Cols() int {
	if grid := t.el.SelectElement("a:tblGrid"); grid != nil {
		return len(grid.SelectElements("a:gridCol"))
	}
	return 0
}

// RowEls صفوف الجدول a:tr
func (t Table) RowEls() []*etree.Element {
	return t.el.SelectElements("a:tr")
}

// cells خلايا صف a:tc
func cells(tr *etree.Element) []*etree.Element {
	return tr.SelectElements("a:tc")
}

// cellText نص خلية: الفقرات بسطر جديد والنصوص داخل الفقرة متتالية
func cellText(tc *etree.Element) string {
	body := childByTag(tc, "txBody")
	if body == nil {
		return ""
	}
	return bodyText(body)
}

func childByTag(el *etree.Element, tag string) *etree.Element {
	for _, c := range el.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func bodyText(body *etree.Element) string {
	var paras []string
	for _, p := range body.SelectElements("a:p") {
		var sb strings.Builder
		for _, r := range p.SelectElements("a:r") {
			if t := r.SelectElement("a:t"); t != nil {
				sb.WriteString(t.Text())
			}
		}
		paras = append(paras, sb.String())
	}
	return strings.Join(paras, "\n")
}

// setBodyText استبدال نص الإطار كاملاً
// كل سطر فقرة بتشغيلة واحدة؛ يفقد التنسيق الجزئي كما في التعبئة
// اليدوية للقالب.
func setBodyText(body *etree.Element, text string) {
	for _, p := range body.SelectElements("a:p") {
		body.RemoveChild(p)
	}
	for _, line := range strings.Split(text, "\n") {
		p := body.CreateElement("a:p")
		r := p.CreateElement("a:r")
		t := r.CreateElement("a:t")
		t.SetText(line)
	}
}

func setCellText(tc *etree.Element, text string) {
	body := childByTag(tc, "txBody")
	if body == nil {
		return
	}
	setBodyText(body, text)
}

// whiteRuns تلوين نصوص الإطار بالأبيض (صف الإجمالي والبطاقات)
func whiteRuns(body *etree.Element) {
	for _, p := range body.SelectElements("a:p") {
		for _, r := range p.SelectElements("a:r") {
			rPr := r.SelectElement("a:rPr")
			if rPr == nil {
				rPr = etree.NewElement("a:rPr")
				r.InsertChildAt(0, rPr)
			}
			if fill := rPr.SelectElement("a:solidFill"); fill != nil {
				rPr.RemoveChild(fill)
			}
			fill := rPr.CreateElement("a:solidFill")
			clr := fill.CreateElement("a:srgbClr")
			clr.CreateAttr("val", "FFFFFF")
		}
	}
}

// centerParagraphs محاذاة فقرات الإطار إلى الوسط
func centerParagraphs(body *etree.Element) {
	for _, p := range body.SelectElements("a:p") {
		pPr := p.SelectElement("a:pPr")
		if pPr == nil {
			pPr = etree.NewElement("a:pPr")
			p.InsertChildAt(0, pPr)
		}
		pPr.RemoveAttr("algn")
		pPr.CreateAttr("algn", "ctr")
	}
}

// shapeBodies إطارات نصوص الأشكال في الشريحة (بدون خلايا الجداول)
func shapeBodies(doc *etree.Document) []*etree.Element {
	var out []*etree.Element
	for _, sp := range findAll(doc.Root(), "sp") {
		if body := childByTag(sp, "txBody"); body != nil {
			out = append(out, body)
		}
	}
	return out
}
