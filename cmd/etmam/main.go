package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/i-DAM/etmam-report/internal/config"
	"github.com/i-DAM/etmam-report/internal/server"
	"github.com/i-DAM/etmam-report/internal/util"
)

var (
	port    = flag.Int("port", 0, "منفذ الخدمة (config.toml له الأولوية إن حدد المنفذ صراحة)")
	devMode = flag.Bool("dev", false, "وضع التطوير")
	dataDir = flag.String("dataDir", "", "مجلد البيانات (يتجاوز ملف الإعدادات)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  إتمام - مولد تقرير البلاغات اليومي")
	fmt.Println("==========================================")

	// تحميل الإعدادات
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("فشل تحميل الإعدادات، سنستخدم الافتراضيات: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// وسائط سطر الأوامر تتجاوز الإعدادات
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	// ضمان مجلد البيانات
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Printf("فشل إنشاء مجلد البيانات: %v", err)
	} else {
		fmt.Printf("مجلد البيانات: %s\n", dataDir)
	}

	if p := config.ResolveTemplatePath(cfg); p != "" {
		if _, err := os.Stat(p); err != nil {
			fmt.Printf("قالب العرض غير موجود (%s)، سيُولد ملف Excel فقط\n", p)
		} else {
			fmt.Printf("قالب العرض: %s\n", p)
		}
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("الخدمة تعمل على المنفذ %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("فشل تشغيل الخدمة: %v", err)
		}
	}()

	// فتح المتصفح
	if !cfg.Server.DevMode {
		fmt.Printf("جارٍ فتح المتصفح: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("تعذر فتح المتصفح تلقائياً، افتح يدوياً: %s\n", url)
		}
	} else {
		fmt.Printf("وضع التطوير: افتح %s\n", url)
	}

	fmt.Println("\nاضغط Ctrl+C لإيقاف الخدمة...")

	// انتظار إشارة الإيقاف
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nتم إيقاف الخدمة")
}
