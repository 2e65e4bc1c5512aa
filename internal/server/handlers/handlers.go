package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/i-DAM/etmam-report/internal/config"
	"github.com/i-DAM/etmam-report/internal/report"
)

// الحد الأقصى لحجم ملف البلاغات
const maxUploadSize = 10 * 1024 * 1024

// وقت الإغلاق الافتراضي عندما لا يُرسل حقل الوقت
const defaultClosingClock = "08:00"

// Handlers معالجات الواجهة
type Handlers struct {
	cfg *config.AppConfig

	// ملفات التقارير المولدة، كل ناتج بمعرّف تنزيل خاص
	exports   map[string]*exportEntry
	exportsMu sync.RWMutex
}

type exportEntry struct {
	Path        string
	FileName    string
	ContentType string
}

// NewHandlers إنشاء المعالجات
func NewHandlers(cfg *config.AppConfig) *Handlers {
	return &Handlers{
		cfg:     cfg,
		exports: make(map[string]*exportEntry),
	}
}

// Response الاستجابة الموحدة
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// RegisterRoutes تسجيل مسارات الواجهة
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	v1 := api.Group("/v1")
	{
		v1.POST("/report", h.GenerateReport)
		v1.GET("/report/download/:exportId", h.Download)
	}
}

// GenerateReport توليد التقرير من ملف البلاغات المرفوع
func (h *Handlers) GenerateReport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "الرجاء إرفاق ملف البلاغات")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		errorResponse(c, 1003, "الملف كبير جداً، الحد الأقصى 10MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".xls" {
		errorResponse(c, 1002, "صيغة الملف غير مدعومة، المسموح .xlsx و .xls")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "تعذر قراءة الملف المرفوع")
		return
	}

	closedAt, err := parseClosingTime(c.PostForm("date"), c.PostForm("time"))
	if err != nil {
		errorResponse(c, 1004, "صيغة تاريخ التقرير غير صحيحة")
		return
	}

	// قالب العرض اختياري: غيابه يُسقط ناتج الشرائح فقط
	var template []byte
	if p := config.ResolveTemplatePath(h.cfg); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			template = data
		}
	}

	result, err := report.Build(header.Filename, content, template, closedAt)
	if err != nil {
		errorResponse(c, 2001, err.Error())
		return
	}

	data := gin.H{
		"fileName": header.Filename,
		"stats":    result.Stats,
	}

	workbookURL, err := h.stashExport(result.Workbook, "report_balady.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		errorResponse(c, 3001, "تعذر حفظ ملف التقرير")
		return
	}
	data["workbookUrl"] = workbookURL

	if len(result.Slides) > 0 {
		slidesURL, err := h.stashExport(result.Slides, "report_balady.pptx",
			"application/vnd.openxmlformats-officedocument.presentationml.presentation")
		if err != nil {
			errorResponse(c, 3001, "تعذر حفظ ملف العرض")
			return
		}
		data["slidesUrl"] = slidesURL
	}

	data["expiresAt"] = time.Now().Add(time.Hour).Format(time.RFC3339)
	success(c, data)
}

// parseClosingTime وقت الإغلاق المرجعي من حقلي النموذج
// غياب التاريخ يعني الآن؛ غياب الوقت يعني الثامنة صباحاً.
func parseClosingTime(date, clock string) (time.Time, error) {
	if date == "" {
		return time.Now(), nil
	}
	if clock == "" {
		clock = defaultClosingClock
	}
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}

// stashExport حفظ ناتج في مجلد النواتج وإرجاع رابط تنزيله
// عند تعذر الكتابة هناك (تشغيل من مجلد غير قابل للكتابة) يُستخدم
// المجلد المؤقت للنظام.
func (h *Handlers) stashExport(data []byte, fileName, contentType string) (string, error) {
	exportID := uuid.New().String()
	stored := fmt.Sprintf("etmam_export_%s%s", exportID, filepath.Ext(fileName))

	tmpPath := config.GetDataPath(h.cfg, "exports", stored)
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		tmpPath = filepath.Join(os.TempDir(), stored)
		if err := os.WriteFile(tmpPath, data, 0644); err != nil {
			return "", err
		}
	}

	h.exportsMu.Lock()
	h.exports[exportID] = &exportEntry{
		Path:        tmpPath,
		FileName:    fileName,
		ContentType: contentType,
	}
	h.exportsMu.Unlock()

	return "/api/v1/report/download/" + exportID, nil
}

// Download تنزيل ناتج مولد سابقاً
func (h *Handlers) Download(c *gin.Context) {
	exportID := c.Param("exportId")

	h.exportsMu.RLock()
	entry, ok := h.exports[exportID]
	h.exportsMu.RUnlock()

	if !ok {
		c.String(http.StatusNotFound, "الملف غير موجود أو انتهت صلاحيته")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+entry.FileName)
	c.Header("Content-Type", entry.ContentType)
	c.File(entry.Path)
}
