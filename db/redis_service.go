package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"exam-seating-go/config"
	"exam-seating-go/models"
)

const (
	batchesKey      = "batches"     // Sorted set: batch IDs scored by insertion sequence
	batchSeqKey     = "batches:seq" // Counter backing the insertion sequence
	batchInfoPrefix = "batch:"      // Hash prefix: batch:{id} -> batch fields
	reportPrefix    = "report:"     // String prefix: report:{id} -> report JSON
)

// RedisService handles operations with the Redis database
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context // Base context
}

// NewRedisService creates a new RedisService instance
func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

func getBatchInfoKey(batchID string) string {
	return batchInfoPrefix + batchID
}

func getReportKey(reportID string) string {
	return reportPrefix + reportID
}

// --- Batch Operations ---

// AddBatch stores a batch, assigning an ID when it has none. Re-adding an
// existing ID updates its fields but keeps its position.
func (s *RedisService) AddBatch(batch models.Batch) (models.Batch, error) {
	if err := batch.Validate(); err != nil {
		return batch, fmt.Errorf("invalid batch: %w", err)
	}
	if batch.ID == "" {
		batch.ID = uuid.NewString()
	}

	seq, err := s.Client.Incr(s.Ctx, batchSeqKey).Result()
	if err != nil {
		return batch, fmt.Errorf("failed to allocate batch sequence: %w", err)
	}

	pipe := s.Client.TxPipeline()
	pipe.ZAddNX(s.Ctx, batchesKey, &redis.Z{Score: float64(seq), Member: batch.ID})
	pipe.HSet(s.Ctx, getBatchInfoKey(batch.ID), map[string]interface{}{
		"id":        batch.ID,
		"className": batch.ClassName,
		"rollRange": batch.RollRange,
		"absentees": batch.Absentees,
		"isActive":  formatActive(batch.IsActive),
	})
	if _, err := pipe.Exec(s.Ctx); err != nil {
		log.Printf("Error adding batch %s: %v", batch.ID, err)
		return batch, fmt.Errorf("failed to add batch to Redis: %w", err)
	}
	log.Printf("Stored batch: %s (%s)", batch.ClassName, batch.ID)
	return batch, nil
}

// GetBatchByID retrieves a batch, returning nil when it does not exist
func (s *RedisService) GetBatchByID(batchID string) (*models.Batch, error) {
	data, err := s.Client.HGetAll(s.Ctx, getBatchInfoKey(batchID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		log.Printf("Error getting batch %s: %v", batchID, err)
		return nil, fmt.Errorf("failed to get batch from Redis: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return &models.Batch{
		ID:        data["id"],
		ClassName: data["className"],
		RollRange: data["rollRange"],
		Absentees: data["absentees"],
		IsActive:  ParseActive(data["isActive"]),
	}, nil
}

// GetAllBatches retrieves every batch in insertion order
func (s *RedisService) GetAllBatches() ([]models.Batch, error) {
	ids, err := s.Client.ZRange(s.Ctx, batchesKey, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.Batch{}, nil
		}
		log.Printf("Error getting batch IDs: %v", err)
		return nil, fmt.Errorf("failed to get batch IDs from Redis: %w", err)
	}

	batches := make([]models.Batch, 0, len(ids))
	for _, id := range ids {
		batch, err := s.GetBatchByID(id)
		if err != nil {
			log.Printf("Error fetching details for batch %s: %v", id, err)
			continue
		}
		if batch != nil {
			batches = append(batches, *batch)
		}
	}
	return batches, nil
}

// BatchExists checks whether a batch ID is registered
func (s *RedisService) BatchExists(batchID string) (bool, error) {
	_, err := s.Client.ZScore(s.Ctx, batchesKey, batchID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}
	return true, nil
}

// SetBatchActive toggles whether a batch takes part in seating. It reports
// false when the batch does not exist.
func (s *RedisService) SetBatchActive(batchID string, active bool) (bool, error) {
	exists, err := s.BatchExists(batchID)
	if err != nil || !exists {
		return false, err
	}
	if err := s.Client.HSet(s.Ctx, getBatchInfoKey(batchID), "isActive", strconv.FormatBool(active)).Err(); err != nil {
		return false, fmt.Errorf("failed to update batch %s: %w", batchID, err)
	}
	return true, nil
}

// DeleteBatch removes a batch. It reports false when the batch does not exist.
func (s *RedisService) DeleteBatch(batchID string) (bool, error) {
	pipe := s.Client.TxPipeline()
	removed := pipe.ZRem(s.Ctx, batchesKey, batchID)
	pipe.Del(s.Ctx, getBatchInfoKey(batchID))
	if _, err := pipe.Exec(s.Ctx); err != nil {
		return false, fmt.Errorf("failed to delete batch %s: %w", batchID, err)
	}
	return removed.Val() > 0, nil
}

// --- Report Operations ---

// SaveReport stores a generated report as JSON and returns its ID
func (s *RedisService) SaveReport(report *models.Report) (string, error) {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	if err := s.Client.Set(s.Ctx, getReportKey(report.ID), payload, 0).Err(); err != nil {
		log.Printf("Error saving report %s: %v", report.ID, err)
		return "", fmt.Errorf("failed to save report to Redis: %w", err)
	}
	return report.ID, nil
}

// GetReport loads a stored report, returning nil when it does not exist
func (s *RedisService) GetReport(reportID string) (*models.Report, error) {
	payload, err := s.Client.Get(s.Ctx, getReportKey(reportID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get report from Redis: %w", err)
	}
	var report models.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", reportID, err)
	}
	return &report, nil
}

// --- Excel Import ---

// ImportBatchesFromExcel reads batches from the first sheet of a workbook.
// Columns: class name, roll range, absentees, active flag. Row 1 is a header.
func (s *RedisService) ImportBatchesFromExcel(file io.Reader) (int, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		log.Printf("Error opening Excel reader: %v", err)
		return 0, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing excel file: %v", err)
		}
	}()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return 0, errors.New("excel file does not contain any sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Printf("Error getting rows from sheet '%s': %v", sheetName, err)
		return 0, fmt.Errorf("failed to get rows from sheet %s: %w", sheetName, err)
	}

	var batches []models.Batch
	for i, row := range rows {
		if i == 0 {
			continue
		}
		batch := models.Batch{
			ClassName: cell(row, 0),
			RollRange: cell(row, 1),
			Absentees: cell(row, 2),
			IsActive:  ParseActive(cell(row, 3)),
		}
		if batch.ClassName == "" || batch.RollRange == "" {
			log.Printf("Skipping row %d due to missing class name or roll range (class: '%s', range: '%s')", i+1, batch.ClassName, batch.RollRange)
			continue
		}
		batches = append(batches, batch)
	}

	importedCount := 0
	for _, batch := range batches {
		if _, err := s.AddBatch(batch); err != nil {
			log.Printf("Error adding batch %s during import: %v", batch.ClassName, err)
			continue
		}
		importedCount++
	}

	log.Printf("Successfully imported %d batches", importedCount)
	return importedCount, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// ParseActive reads an active flag. Blank or unknown values give nil, which
// counts as active.
func ParseActive(raw string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "y", "1":
		v = true
	case "false", "no", "n", "0":
		v = false
	default:
		return nil
	}
	return &v
}

func formatActive(active *bool) string {
	if active == nil {
		return ""
	}
	return strconv.FormatBool(*active)
}

// --- Utility ---

// InitializeRedisClient creates and tests a Redis client connection
func InitializeRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Successfully connected to Redis DB %d", cfg.RedisDB)
	return rdb, nil
}
