// @title           AquaCalc API
// @version         1.0
// @description     Pool construction cost calculator - estimate, compare and generate commercial proposals.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"poolcalc/handlers"
	"poolcalc/services"
	"poolcalc/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:9000",
		"http://localhost:8080",
		"http://localhost:3000",
	}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
			}
		}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Content-Type", "Content-Length", "Accept-Encoding",
		"Accept", "Origin", "X-Requested-With", "Authorization", "User-Agent",
		"Cache-Control", "Referer",
		"Access-Control-Request-Method", "Access-Control-Request-Headers",
		"Accept-Language", "Accept-Charset", "DNT", "Connection",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD", "PATCH",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length", "Authorization", "Content-Type", "Content-Disposition",
	}
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}

var cronRunning int32

func safeGo(
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	fn func(context.Context) error,
	cronLogger *log.Logger,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				if cronLogger != nil {
					cronLogger.Printf("PANIC in %s: %v\n%s", name, r, debug.Stack())
				}
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("%s failed: %v", name, err)
			if cronLogger != nil {
				cronLogger.Printf("%s failed: %v", name, err)
			}
		} else {
			log.Printf("%s completed successfully", name)
			if cronLogger != nil {
				cronLogger.Printf("%s completed successfully", name)
			}
		}
	}()
}

// ginPathToSwaggerPath converts Gin path params :param to Swagger {param}
var ginPathParamRe = regexp.MustCompile(`:([^/]+)`)

func ginPathToSwaggerPath(path string) string {
	return ginPathParamRe.ReplaceAllString(path, "{$1}")
}

// Common API request/response models for Swagger so Example Value shows real JSON structure.
var swaggerDefinitions = map[string]interface{}{
	"CalculateRequest": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"length":         map[string]interface{}{"type": "number", "example": 8000},
			"width":          map[string]interface{}{"type": "number", "example": 4000},
			"depth":          map[string]interface{}{"type": "number", "example": 1500},
			"wall_thickness": map[string]interface{}{"type": "number", "example": 200},
			"profile_id":     map[string]interface{}{"type": "string", "example": "kp1"},
		},
		"description": "Pool dimensions in millimeters plus an optional proposal profile",
	},
	"CalculateResponse": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"basic_dimensions": map[string]interface{}{"type": "object"},
			"earthworks":       map[string]interface{}{"type": "object"},
			"concrete_works":   map[string]interface{}{"type": "object"},
			"formwork":         map[string]interface{}{"type": "object"},
			"finishing":        map[string]interface{}{"type": "object"},
			"materials_cost":   map[string]interface{}{"type": "object"},
			"works_cost":       map[string]interface{}{"type": "object"},
			"kp_items":         map[string]interface{}{"type": "object"},
			"costs":            map[string]interface{}{"type": "object"},
		},
	},
}

// buildSwaggerFromRoutes returns a handler that serves Swagger 2.0 JSON with all registered routes.
func buildSwaggerFromRoutes(engine *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		paths := make(map[string]interface{})
		routes := engine.Routes()
		for _, route := range routes {
			if strings.HasPrefix(route.Path, "/swagger") {
				continue
			}
			path := ginPathToSwaggerPath(route.Path)
			if paths[path] == nil {
				paths[path] = make(map[string]interface{})
			}
			method := strings.ToLower(route.Method)

			op := map[string]interface{}{
				"summary":     route.Method + " " + route.Path,
				"description": "API endpoint: " + route.Path,
				"tags":        []string{"API"},
				"produces":    []string{"application/json"},
				"responses": map[string]interface{}{
					"200": map[string]interface{}{
						"description": "Success - returns JSON",
						"schema":      map[string]interface{}{"$ref": "#/definitions/CalculateResponse"},
					},
					"400": map[string]interface{}{
						"description": "Bad Request",
						"schema": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"error": map[string]interface{}{"type": "string"},
							},
						},
					},
					"500": map[string]interface{}{
						"description": "Internal Server Error",
						"schema": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"error": map[string]interface{}{"type": "string"},
							},
						},
					},
				},
			}

			if method == "post" || method == "put" || method == "patch" {
				op["consumes"] = []string{"application/json"}
				op["parameters"] = []map[string]interface{}{
					{
						"in":          "body",
						"name":        "body",
						"required":    true,
						"description": "JSON body. See model below; fields may vary by endpoint.",
						"schema":      map[string]interface{}{"$ref": "#/definitions/CalculateRequest"},
					},
				}
			}

			(paths[path].(map[string]interface{}))[method] = op
		}
		doc := map[string]interface{}{
			"swagger":     "2.0",
			"definitions": swaggerDefinitions,
			"info": map[string]interface{}{
				"title":       "AquaCalc API",
				"description": "Pool construction cost calculator API.",
				"version":     "1.0",
			},
			"host":     c.Request.Host,
			"basePath": "/",
			"schemes":  []string{"http", "https"},
			"paths":    paths,
		}
		c.Header("Content-Type", "application/json")
		c.JSON(http.StatusOK, doc)
	}
}

func main() {
	db := storage.InitDB()
	// Initialize GORM database for price overrides
	_ = storage.InitGormDB()

	emailService := services.NewEmailService()
	if !emailService.Configured() {
		log.Println("SMTP is not configured, proposal emails will be disabled")
	}

	// Setup cron job to run maintenance daily
	c := cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))),
	)

	// Open a file for cron error logging
	cronLogFile, err := os.OpenFile("cron_errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Failed to open cron error log file: %v", err)
	}
	cronLogger := log.New(cronLogFile, "CRON_ERROR: ", log.LstdFlags)

	_, err = c.AddFunc("30 3 * * *", func() {
		if !atomic.CompareAndSwapInt32(&cronRunning, 0, 1) {
			log.Println("Previous cron still running. Skipping this run.")
			if cronLogger != nil {
				cronLogger.Println("Previous cron still running. Skipping this run.")
			}
			return
		}
		defer atomic.StoreInt32(&cronRunning, 0)

		log.Println("Starting daily maintenance cron job")
		if cronLogger != nil {
			cronLogger.Println("Starting daily maintenance cron job")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		var wg sync.WaitGroup

		safeGo(ctx, &wg, "CleanupExpiredSessions", func(ctx context.Context) error {
			n, err := storage.CleanupExpiredSessions(db)
			if err != nil {
				return err
			}
			log.Printf("Cleaned up %d expired sessions", n)
			return nil
		}, cronLogger)

		safeGo(ctx, &wg, "CleanupOldEstimates", func(ctx context.Context) error {
			retentionDays := 0
			if v := os.Getenv("ESTIMATE_RETENTION_DAYS"); v != "" {
				retentionDays, _ = strconv.Atoi(v)
			}
			n, err := storage.CleanupOldEstimates(db, retentionDays)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Printf("Cleaned up %d old estimates", n)
			}
			return nil
		}, cronLogger)

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("All cron jobs finished")
			if cronLogger != nil {
				cronLogger.Println("All cron jobs finished")
			}
		case <-ctx.Done():
			log.Println("Cron timeout reached, jobs cancelled")
			if cronLogger != nil {
				cronLogger.Println("Cron timeout reached, jobs cancelled")
			}
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule daily maintenance cron job: %v", err)
	}

	c.Start()

	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(CORSConfig()))

	// ==================== 1. CALCULATOR UI ====================
	r.StaticFile("/", "./static/index.html")
	r.Static("/static", "./static")

	// ==================== 2. CALCULATION ====================
	r.POST("/calculate", handlers.CalculateHandler())
	r.POST("/compare_estimate", handlers.CompareEstimateHandler())

	// ==================== 3. PROFILES & PRICES ====================
	r.GET("/get_profiles", handlers.GetProfilesHandler())
	r.GET("/get_profile/:profile_id", handlers.GetProfileHandler())
	r.POST("/get_dimensions_correction", handlers.GetDimensionsCorrectionHandler())
	r.POST("/get_prices", handlers.GetPricesHandler())
	r.POST("/get_costs", handlers.GetCostsHandler())

	// ==================== 4. PROPOSALS ====================
	r.POST("/generate_kp", handlers.GenerateKPHandler(db))
	r.POST("/send_kp", handlers.SendKPHandler(db, emailService))

	// ==================== 5. PROPOSAL EXPORT ====================
	r.GET("/kp_pdf/:reference", handlers.KPPDFHandler(db))
	r.GET("/kp_excel/:reference", handlers.KPExcelHandler(db))
	r.GET("/kp_qr/:reference", handlers.KPQRCodeHandler(db))

	// ==================== 6. AUTH & LOGIN ====================
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSessionHandler(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))

	// ==================== 7. SAVED ESTIMATES ====================
	api := r.Group("/api", handlers.AuthRequired(db))
	api.GET("/estimates", handlers.ListEstimatesHandler(db))
	api.GET("/estimates/:reference", handlers.GetEstimateHandler(db))
	api.DELETE("/estimates/:reference", handlers.DeleteEstimateHandler(db))

	// ==================== 8. PRICE ADMINISTRATION ====================
	api.PUT("/prices", handlers.UpsertPriceHandler())
	api.DELETE("/prices", handlers.DeletePriceHandler())
	api.GET("/prices/:profile_id", handlers.ListPriceOverridesHandler())

	// ==================== 9. SWAGGER ====================
	r.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			doc, err := swag.ReadDoc("swagger")
			if err == nil && len(doc) > 100 {
				c.Header("Content-Type", "application/json")
				c.String(http.StatusOK, doc)
				return
			}
			buildSwaggerFromRoutes(r)(c)
			return
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"))(c)
	})

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}

	// Validate port is numeric
	portInt, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("Invalid PORT environment variable: %s. Must be a number.", port)
	}
	if portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT: %d. Must be between 0 and 65535.", portInt)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
