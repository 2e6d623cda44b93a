package handlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"exam-seating-go/config"
	"exam-seating-go/db"
	"exam-seating-go/export"
	"exam-seating-go/models"
	"exam-seating-go/seating"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// APIHandler holds the dependencies for API handlers
type APIHandler struct {
	RedisService *db.RedisService
	Config       config.Config
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(service *db.RedisService, cfg config.Config) *APIHandler {
	return &APIHandler{
		RedisService: service,
		Config:       cfg,
	}
}

// SetupRouter registers all API routes
func SetupRouter(h *APIHandler) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api")
	{
		// Batch routes
		api.GET("/batches", h.GetAllBatches)
		api.GET("/batches/:batchId", h.GetBatchByID)
		api.POST("/batches", h.AddBatch)
		api.PATCH("/batches/:batchId/active", h.SetBatchActive)
		api.DELETE("/batches/:batchId", h.DeleteBatch)

		// Import route
		api.POST("/import/batches", h.ImportBatches)

		// Seating routes
		api.GET("/seating/options", h.GetSeatingOptions)
		api.POST("/seating", h.GenerateSeating)

		// Report routes
		api.GET("/reports/:reportId", h.GetReport)
		api.GET("/reports/:reportId/export", h.ExportReport)

		api.GET("/ping", PingHandler)
	}
	return router
}

// --- Batch Handlers ---

// GetAllBatches handles GET /api/batches
func (h *APIHandler) GetAllBatches(c *gin.Context) {
	batches, err := h.RedisService.GetAllBatches()
	if err != nil {
		log.Printf("Error in GetAllBatches handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batches"})
		return
	}
	c.JSON(http.StatusOK, batches)
}

// GetBatchByID handles GET /api/batches/:batchId
func (h *APIHandler) GetBatchByID(c *gin.Context) {
	batchID := c.Param("batchId")
	batch, err := h.RedisService.GetBatchByID(batchID)
	if err != nil {
		log.Printf("Error in GetBatchByID handler for ID %s: %v", batchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve batch"})
		return
	}
	if batch == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		return
	}
	c.JSON(http.StatusOK, batch)
}

// AddBatch handles POST /api/batches
func (h *APIHandler) AddBatch(c *gin.Context) {
	var batch models.Batch
	if err := c.ShouldBindJSON(&batch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := seating.CheckRosterSize([]models.Batch{batch}, h.Config.MaxStudents); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := h.RedisService.AddBatch(batch)
	if err != nil {
		log.Printf("Error in AddBatch handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add batch"})
		return
	}
	c.JSON(http.StatusCreated, stored)
}

type activeRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// SetBatchActive handles PATCH /api/batches/:batchId/active
func (h *APIHandler) SetBatchActive(c *gin.Context) {
	batchID := c.Param("batchId")
	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	found, err := h.RedisService.SetBatchActive(batchID, *req.IsActive)
	if err != nil {
		log.Printf("Error in SetBatchActive handler for ID %s: %v", batchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update batch"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": batchID, "isActive": *req.IsActive})
}

// DeleteBatch handles DELETE /api/batches/:batchId
func (h *APIHandler) DeleteBatch(c *gin.Context) {
	batchID := c.Param("batchId")
	deleted, err := h.RedisService.DeleteBatch(batchID)
	if err != nil {
		log.Printf("Error in DeleteBatch handler for ID %s: %v", batchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete batch"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Batch not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Import Handler ---

// ImportBatches handles POST /api/import/batches
func (h *APIHandler) ImportBatches(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		log.Printf("Error getting form file: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error retrieving uploaded file: " + err.Error()})
		return
	}
	defer file.Close()

	log.Printf("Received batch upload: %s", header.Filename)

	importedCount, err := h.RedisService.ImportBatchesFromExcel(file)
	if err != nil {
		log.Printf("Error importing batches from file %s: %v", header.Filename, err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to import batches: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Import successful",
		"importedCount": importedCount,
	})
}

// --- Seating Handlers ---

// SeatingRequest is the body of POST /api/seating. Stored batches are used
// when Batches is omitted.
type SeatingRequest struct {
	BenchesPerRoom int            `json:"benchesPerRoom" binding:"omitempty,min=1"`
	ExamName       string         `json:"examName"`
	AcademicYear   string         `json:"academicYear"`
	Batches        []models.Batch `json:"batches" binding:"omitempty,dive"`
}

// GetSeatingOptions handles GET /api/seating/options
func (h *APIHandler) GetSeatingOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"benchOptions":   h.Config.BenchOptions,
		"defaultBenches": h.Config.DefaultBenches,
		"standards":      seating.Standards,
	})
}

// GenerateSeating handles POST /api/seating
func (h *APIHandler) GenerateSeating(c *gin.Context) {
	var req SeatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if req.BenchesPerRoom == 0 {
		req.BenchesPerRoom = h.Config.DefaultBenches
	}

	batches := req.Batches
	if batches == nil {
		stored, err := h.RedisService.GetAllBatches()
		if err != nil {
			log.Printf("Error loading batches for seating: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load batches"})
			return
		}
		batches = stored
	}

	if err := seating.Validate(batches, req.BenchesPerRoom, h.Config.MaxStudents); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := seating.Generate(batches, seating.Options{
		BenchesPerRoom: req.BenchesPerRoom,
		ExamName:       req.ExamName,
		AcademicYear:   req.AcademicYear,
	})
	for _, className := range report.SkippedBatches {
		log.Printf("Warning: batch %q has no recognized standard and was not seated", className)
	}
	log.Printf("Generated seating: %d rooms, %d students, %d benches per room", len(report.Arrangement), report.GrandTotal, report.MaxBenches)

	if _, err := h.RedisService.SaveReport(report); err != nil {
		log.Printf("Error saving report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// --- Report Handlers ---

// GetReport handles GET /api/reports/:reportId
func (h *APIHandler) GetReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportReport handles GET /api/reports/:reportId/export
func (h *APIHandler) ExportReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, report, h.Config.SchoolName); err != nil {
		log.Printf("Error exporting report %s: %v", report.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export report"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="seating-`+report.ID+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *APIHandler) loadReport(c *gin.Context) (*models.Report, bool) {
	reportID := c.Param("reportId")
	report, err := h.RedisService.GetReport(reportID)
	if err != nil {
		log.Printf("Error loading report %s: %v", reportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		return nil, false
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return nil, false
	}
	return report, true
}

// --- Ping Handler ---

// PingHandler handles GET /api/ping
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
