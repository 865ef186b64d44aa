package router

import (
	"time"

	"caruma/internal/config"
	"caruma/internal/handler"
	"caruma/internal/infra"
	"caruma/internal/middleware"
	"caruma/internal/repository"
	"caruma/internal/service"
	"caruma/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailer *infra.Mailer, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	categoriaRepo := repository.NewCategoriaRepository(db)
	insumoRepo := repository.NewInsumoRepository(db)
	servicioRepo := repository.NewServicioRepository(db)
	alertaRepo := repository.NewAlertaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	categoriaSvc := service.NewCategoriaService(categoriaRepo)
	insumoSvc := service.NewInsumoService(insumoRepo, categoriaRepo)
	servicioSvc := service.NewServicioService(servicioRepo, insumoRepo)
	inventarioSvc := service.NewInventarioService(insumoRepo, cfg.VentanaCaducidadDias)
	alertaSvc := service.NewAlertaService(alertaRepo, insumoRepo, cfg.HistorialLimite, cfg.VentanaCaducidadDias)
	reporteSvc := service.NewReporteService(inventarioSvc, dispatcher, cfg.VentanaCaducidadDias, cfg.ReporteStoragePath, cfg.ReporteEmailDestino)

	// ── Handlers ─────────────────────────────────────────────────────────────
	categoriasH := handler.NewCategoriasHandler(categoriaSvc)
	insumosH := handler.NewInsumosHandler(insumoSvc)
	serviciosH := handler.NewServiciosHandler(servicioSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc)
	alertasH := handler.NewAlertasHandler(inventarioSvc, alertaSvc)
	reportesH := handler.NewReportesHandler(reporteSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailer))

	v1 := r.Group("/v1")
	{
		categorias := v1.Group("/categorias")
		{
			categorias.POST("", categoriasH.Crear)
			categorias.GET("", categoriasH.Listar)
			categorias.GET("/:id", categoriasH.Obtener)
			categorias.PUT("/:id", categoriasH.Actualizar)
			categorias.DELETE("/:id", categoriasH.Eliminar)
			categorias.GET("/:id/insumos", insumosH.PorCategoria)
		}

		insumos := v1.Group("/insumos")
		{
			insumos.POST("", insumosH.Crear)
			insumos.GET("", insumosH.Listar)
			insumos.GET("/buscar", insumosH.Buscar)
			insumos.GET("/unidades", insumosH.Unidades)
			insumos.GET("/:id", insumosH.Obtener)
			insumos.PUT("/:id", insumosH.Actualizar)
			insumos.DELETE("/:id", insumosH.Eliminar)
			insumos.PATCH("/:id/stock", insumosH.AjustarStock)
		}

		servicios := v1.Group("/servicios")
		{
			servicios.POST("", serviciosH.Crear)
			servicios.GET("", serviciosH.Listar)
			servicios.GET("/:id", serviciosH.Obtener)
			servicios.PUT("/:id", serviciosH.Actualizar)
			servicios.DELETE("/:id", serviciosH.Eliminar)
			servicios.GET("/:id/insumos", serviciosH.ListarInsumos)
			servicios.POST("/:id/insumos", serviciosH.AgregarInsumo)
			servicios.PUT("/:id/insumos/:vinculo_id", serviciosH.ActualizarInsumo)
			servicios.DELETE("/:id/insumos/:vinculo_id", serviciosH.QuitarInsumo)
		}

		inventario := v1.Group("/inventario")
		{
			inventario.GET("", inventarioH.Completo)
			inventario.GET("/resumen", inventarioH.Resumen)
			inventario.GET("/por-categoria", inventarioH.PorCategoria)
			inventario.GET("/mas-usados", inventarioH.MasUsados)
			inventario.GET("/totales-contenido", inventarioH.TotalesContenido)
		}

		alertas := v1.Group("/alertas")
		{
			alertas.GET("/resumen", alertasH.Resumen)
			alertas.GET("/stock-bajo", alertasH.StockBajo)
			alertas.GET("/por-caducar", alertasH.PorCaducar)
			alertas.GET("/caducados", alertasH.Caducados)
			alertas.POST("/escanear", alertasH.Escanear)
			alertas.GET("/historial", alertasH.Historial)
			alertas.POST("/historial", alertasH.Registrar)
			alertas.DELETE("/historial", alertasH.LimpiarHistorial)
		}

		reportes := v1.Group("/reportes")
		{
			reportes.GET("/lista-compras", reportesH.ListaCompras)
			reportes.GET("/lista-compras/pdf", reportesH.ListaComprasPDF)
			reportes.GET("/alertas", reportesH.Alertas)
			reportes.GET("/alertas/pdf", reportesH.AlertasPDF)
			reportes.POST("/alertas/enviar", reportesH.EnviarAlertas)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
