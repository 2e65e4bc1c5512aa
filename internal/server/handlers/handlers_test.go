package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/i-DAM/etmam-report/internal/config"
	"github.com/i-DAM/etmam-report/internal/server/handlers"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewHandlers(config.DefaultConfig())
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func postReport(t *testing.T, r *gin.Engine, fileName string, fileData []byte, fields map[string]string) handlers.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("بناء الطلب: %v", err)
		}
		fw.Write(fileData)
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/report", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handlers.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("تفسير الاستجابة: %v", err)
	}
	return resp
}

func sampleXlsx(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]string{
		{"رقم البلاغ", "الإدارة", "حالة البلاغ في النظام", "تاريخ الانشاء", "م1", "م2", "م3", "مصدر البلاغ"},
		{"1", "الإدارة العامة للمشاريع", "جاري التنفيذ من قبل المقاول", "2026-08-29 08:00:00", "", "", "", "توكلنا"},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := f.SetCellValue("Sheet1", cell, v); err != nil {
				t.Fatalf("تعبئة الخلية: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("كتابة الملف: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateReport_MissingFile(t *testing.T) {
	r := newRouter()
	resp := postReport(t, r, "", nil, nil)
	if resp.Code != 1001 {
		t.Fatalf("الرمز = %d، المتوقع 1001", resp.Code)
	}
}

func TestGenerateReport_BadExtension(t *testing.T) {
	r := newRouter()
	resp := postReport(t, r, "بلاغات.csv", []byte("a,b"), nil)
	if resp.Code != 1002 {
		t.Fatalf("الرمز = %d، المتوقع 1002", resp.Code)
	}
}

func TestGenerateReport_BadDate(t *testing.T) {
	r := newRouter()
	resp := postReport(t, r, "بلاغات.xlsx", sampleXlsx(t), map[string]string{"date": "31/08/2026"})
	if resp.Code != 1004 {
		t.Fatalf("الرمز = %d، المتوقع 1004", resp.Code)
	}
}

func TestGenerateReport_ThenDownload(t *testing.T) {
	r := newRouter()
	resp := postReport(t, r, "بلاغات.xlsx", sampleXlsx(t),
		map[string]string{"date": "2026-08-31", "time": "08:00"})
	if resp.Code != 0 {
		t.Fatalf("فشل التوليد: %s", resp.Message)
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("بنية الاستجابة غير متوقعة: %#v", resp.Data)
	}
	url, ok := data["workbookUrl"].(string)
	if !ok || url == "" {
		t.Fatalf("رابط التنزيل مفقود: %#v", data)
	}

	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("حالة التنزيل = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=report_balady.xlsx" {
		t.Fatalf("ترويسة التنزيل = %q", cd)
	}
	if _, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("الناتج ليس مصنّف Excel صالحاً: %v", err)
	}
}

func TestDownload_UnknownExport(t *testing.T) {
	r := newRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/report/download/لا-شيء", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("الحالة = %d، المتوقع 404", w.Code)
	}
}
