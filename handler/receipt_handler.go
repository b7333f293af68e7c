package handler

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/finsight/receipt-forecast/dto"
	"github.com/finsight/receipt-forecast/service"

	"github.com/gin-gonic/gin"
)

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".pdf":  true,
}

type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
	}
}

// Upload handles POST /receipts/upload with a multipart "receipt" file
func (h *ReceiptHandler) Upload(c *gin.Context) {
	log.Println("Received receipt upload request")

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "No file part", err)
		return
	}
	if fileHeader.Filename == "" {
		h.sendError(c, http.StatusBadRequest, "No selected file", nil)
		return
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		h.sendError(c, http.StatusBadRequest, "Invalid file type. Allowed: JPG, PNG, GIF, PDF", nil)
		return
	}

	response, err := h.receiptService.ProcessUpload(fileHeader)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to process receipt", err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ManualEntry handles POST /receipts/manual
func (h *ReceiptHandler) ManualEntry(c *gin.Context) {
	var request dto.ManualEntryRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	entry, err := h.receiptService.ManualEntry(&request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to record entry", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Entries handles GET /receipts
func (h *ReceiptHandler) Entries(c *gin.Context) {
	response, err := h.receiptService.Entries()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load entries", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Summary handles GET /summary
func (h *ReceiptHandler) Summary(c *gin.Context) {
	response, err := h.receiptService.Summary()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to build summary", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Predict handles GET /predict
func (h *ReceiptHandler) Predict(c *gin.Context) {
	response, err := h.receiptService.PredictAggregate()
	if errors.Is(err, service.ErrNoData) {
		h.sendError(c, http.StatusBadRequest, "no data", err)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to predict", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Insights handles GET /insights
func (h *ReceiptHandler) Insights(c *gin.Context) {
	response, err := h.receiptService.Insights()
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to build insights", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// sendError sends a structured error response
func (h *ReceiptHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "RECEIPT_PROCESSING_FAILED",
		Message: message,
		Code:    statusCode,
	})
}
