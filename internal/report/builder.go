// Package report تنسيق خط المعالجة الكامل من ملف البلاغات إلى المخرجات.
package report

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/i-DAM/etmam-report/internal/aggregate"
	"github.com/i-DAM/etmam-report/internal/model"
	"github.com/i-DAM/etmam-report/internal/pipeline"
	"github.com/i-DAM/etmam-report/internal/slides"
	"github.com/i-DAM/etmam-report/internal/workbook"
)

// Result مخرجات تقرير واحد
// Slides تكون فارغة عندما لا يتوفر قالب عرض.
type Result struct {
	Workbook []byte
	Slides   []byte
	Stats    model.FilterStats
}

// Build بناء التقرير كاملاً من ملف البلاغات الخام
// closedAt هو وقت الإغلاق المرجعي الذي تُحسب منه ساعات التأخر.
func Build(fileName string, fileData, template []byte, closedAt time.Time) (*Result, error) {
	header, rows, err := workbook.ReadSheet(fileName, fileData)
	if err != nil {
		return nil, err
	}

	records, stats, err := pipeline.Process(header, rows, closedAt)
	if err != nil {
		return nil, err
	}

	// القناة المميزة تُعزل في جدولها الخاص ولا تدخل في جدولي
	// الحالة والتوصيف
	mainRecords := lo.Filter(records, func(r *model.Record, _ int) bool {
		return r.Source != model.SourceUrbi
	})

	statusPivot := aggregate.StatusPivot(mainRecords)
	slaPivot := aggregate.SLAPivot(mainRecords)
	channelPivot := aggregate.ChannelPivot(records)

	f, err := workbook.Write(statusPivot, slaPivot, channelPivot)
	if err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("كتابة ملف التقرير: %w", err)
	}

	result := &Result{Workbook: buf.Bytes(), Stats: stats}

	if len(template) == 0 {
		return result, nil
	}

	deck, err := slides.Open(template)
	if err != nil {
		return nil, err
	}
	resolver := NewResolver(statusPivot, slaPivot, channelPivot)
	if err := slides.Fill(deck, slides.FillOptions{
		Metrics: resolver.Metrics,
		RefTime: closedAt,
	}); err != nil {
		return nil, err
	}
	result.Slides, err = deck.Save()
	if err != nil {
		return nil, err
	}
	return result, nil
}
