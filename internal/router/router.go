package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/ledgerdesk/backend/config"
	"github.com/ledgerdesk/backend/internal/handler"
)

func Setup(
	cfg *config.Config,
	templateHandler *handler.TemplateHandler,
	editorHandler *handler.EditorHandler,
	catalogHandler *handler.CatalogHandler,
	clientHandler *handler.ClientHandler,
	transactionHandler *handler.TransactionHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	api := r.Group("/api")
	{
		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", templateHandler.Create)
			templates.GET("/default/:type", templateHandler.DefaultForType)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.GET("/:id/layout", templateHandler.Layout)
		}

		api.GET("/catalog/fields", catalogHandler.ListFields)

		sessions := api.Group("/editor/sessions")
		{
			sessions.POST("", editorHandler.Open)
			sessions.GET("/:id", editorHandler.State)
			sessions.DELETE("/:id", editorHandler.Close)
			sessions.POST("/:id/fields", editorHandler.AddField)
			sessions.POST("/:id/fields/move", editorHandler.MoveField)
			sessions.POST("/:id/fields/resize", editorHandler.ResizeField)
			sessions.POST("/:id/fields/delete", editorHandler.DeleteFields)
			sessions.POST("/:id/select", editorHandler.Select)
			sessions.POST("/:id/group", editorHandler.Group)
			sessions.POST("/:id/ungroup", editorHandler.Ungroup)
			sessions.POST("/:id/copy", editorHandler.Copy)
			sessions.POST("/:id/copy-section", editorHandler.CopySection)
			sessions.POST("/:id/paste", editorHandler.Paste)
			sessions.POST("/:id/clear-section", editorHandler.ClearSection)
			sessions.POST("/:id/clear-all", editorHandler.ClearAll)
			sessions.GET("/:id/layout", editorHandler.Compile)
			sessions.POST("/:id/save", editorHandler.Save)
		}

		clients := api.Group("/clients")
		{
			clients.GET("", clientHandler.List)
			clients.POST("", clientHandler.Create)
			clients.GET("/:id", clientHandler.Get)
			clients.PUT("/:id", clientHandler.Update)
			clients.DELETE("/:id", clientHandler.Delete)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("/import", transactionHandler.Import)
			transactions.GET("/batches", transactionHandler.ListBatches)
			transactions.GET("/batches/:id", transactionHandler.GetBatch)
			transactions.GET("/batches/:id/rows", transactionHandler.ListByBatch)
		}
	}

	return r
}
