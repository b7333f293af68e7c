package main

import (
	"log"
	"os"

	"github.com/finsight/receipt-forecast/client"
	"github.com/finsight/receipt-forecast/config"
	"github.com/finsight/receipt-forecast/handler"
	"github.com/finsight/receipt-forecast/service"
	"github.com/finsight/receipt-forecast/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	if err := os.MkdirAll(cfg.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	// Initialize Tesseract client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Optional trained models; absence degrades to rule-based forecasting
	forecastModels := client.NewForecastModels(cfg.ModelsDir)

	// Initialize PDF processor and persistence
	pdfProcessor := service.NewPDFProcessor()
	jsonStore := store.NewJSONStore(cfg.DataFile)

	// Initialize service layer
	forecastService := service.NewForecastService(forecastModels)
	receiptService := service.NewReceiptService(tesseractClient, pdfProcessor, forecastService, jsonStore, cfg.UploadDir)

	// Initialize handler layer
	receiptHandler := handler.NewReceiptHandler(receiptService)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Receipt Forecast",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		receipts := api.Group("/receipts")
		{
			receipts.POST("/upload", receiptHandler.Upload)
			receipts.POST("/manual", receiptHandler.ManualEntry)
			receipts.GET("", receiptHandler.Entries)
		}
		api.GET("/summary", receiptHandler.Summary)
		api.GET("/predict", receiptHandler.Predict)
		api.GET("/insights", receiptHandler.Insights)
	}

	// Start server
	log.Printf("Starting Receipt Forecast Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
