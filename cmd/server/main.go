package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/ledgerdesk/backend/config"
	"github.com/ledgerdesk/backend/internal/catalog"
	"github.com/ledgerdesk/backend/internal/eventbus"
	"github.com/ledgerdesk/backend/internal/handler"
	"github.com/ledgerdesk/backend/internal/pkg/database"
	"github.com/ledgerdesk/backend/internal/repository"
	"github.com/ledgerdesk/backend/internal/router"
	"github.com/ledgerdesk/backend/internal/service"
	"github.com/ledgerdesk/backend/internal/service/importer"
	"github.com/ledgerdesk/backend/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 初始化 Repository
	templateRepo := repository.NewTemplateRepository(db)
	clientRepo := repository.NewClientRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// 字段目录（内置定义 + 可选覆盖文件）
	fieldCatalog := catalog.Load(cfg.Catalog.Path)

	// 事件总线与 Service
	bus := eventbus.NewBus()
	templateService := service.NewTemplateService(templateRepo, bus)
	editorService := service.NewEditorService(templateRepo, fieldCatalog, bus)
	clientService := service.NewClientService(clientRepo)
	importService := importer.NewService(transactionRepo)

	// 模板事件订阅：审计日志 + 布局缓存失效
	subscriber.NewTemplateEventSubscriber(templateService).Register(bus)

	// 初始化 Handler
	templateHandler := handler.NewTemplateHandler(templateService)
	editorHandler := handler.NewEditorHandler(editorService)
	catalogHandler := handler.NewCatalogHandler(fieldCatalog)
	clientHandler := handler.NewClientHandler(clientService)
	transactionHandler := handler.NewTransactionHandler(importService, transactionRepo)

	// 设置路由
	r := router.Setup(cfg, templateHandler, editorHandler, catalogHandler, clientHandler, transactionHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
