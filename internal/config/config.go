package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// المسار الافتراضي لقالب العرض نسبةً إلى مجلد التطبيق
const defaultTemplatePath = "templates/balady_template.pptx"

// AppConfig إعدادات التطبيق
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig إعدادات الخادم
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig إعدادات مجلد البيانات
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// ReportConfig إعدادات توليد التقرير
type ReportConfig struct {
	PPTTemplatePath string `toml:"ppt_template_path"`
}

// LoadConfigInfo معلومات مرافقة لتحميل الإعدادات
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig الإعدادات الافتراضية
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8409,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Report: ReportConfig{
			PPTTemplatePath: defaultTemplatePath,
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir مجلد الملف التنفيذي
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo تحميل الإعدادات من config.toml مع معلوماتها
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// تعذر تحديد مجلد التطبيق، نستخدم المجلد الحالي
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// لا ملف إعدادات، الافتراضيات تكفي
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// تجاوز عبر متغير البيئة للتشغيل المحلي والاختبارات الشاملة
	if v := os.Getenv("ETMAM_PPT_TEMPLATE_PATH"); v != "" {
		config.Report.PPTTemplatePath = v
	}

	return config, info, nil
}

// LoadConfig تحميل الإعدادات من config.toml
// الملف بجوار الملف التنفيذي إن وُجد
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// ResolveTemplatePath مسار قالب العرض المطلق
// المسار النسبي يُحل نسبةً إلى مجلد التطبيق.
func ResolveTemplatePath(config *AppConfig) string {
	p := config.Report.PPTTemplatePath
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}
	return filepath.Join(exeDir, p)
}

// EnsureDataDir ضمان وجود مجلد البيانات ومجلداته الفرعية
// المجلد بجوار الملف التنفيذي
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}

// GetDataPath مسار ملف داخل مجلد البيانات
func GetDataPath(config *AppConfig, subdir, filename string) string {
	exeDir, _ := GetExeDir()
	if exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, config.Data.DataDir, subdir, filename)
}
