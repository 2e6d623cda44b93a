package db

import (
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"exam-seating-go/models"
)

func newTestService(t *testing.T) *RedisService {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisService(client)
}

func TestAddBatch_InsertionOrder(t *testing.T) {
	s := newTestService(t)

	first, err := s.AddBatch(models.Batch{ClassName: "9th A", RollRange: "1-40"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	_, err = s.AddBatch(models.Batch{ID: "b2", ClassName: "10th A", RollRange: "1-30", Absentees: "4"})
	require.NoError(t, err)

	// updating keeps the original position
	first.Absentees = "7"
	_, err = s.AddBatch(first)
	require.NoError(t, err)

	batches, err := s.GetAllBatches()
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, first.ID, batches[0].ID)
	assert.Equal(t, "7", batches[0].Absentees)
	assert.Nil(t, batches[0].IsActive)
	assert.Equal(t, "b2", batches[1].ID)
	assert.Equal(t, "4", batches[1].Absentees)
}

func TestAddBatch_Invalid(t *testing.T) {
	s := newTestService(t)
	_, err := s.AddBatch(models.Batch{RollRange: "1-5"})
	assert.Error(t, err)
}

func TestGetBatchByID_NotFound(t *testing.T) {
	s := newTestService(t)
	batch, err := s.GetBatchByID("missing")
	assert.NoError(t, err)
	assert.Nil(t, batch)
}

func TestSetBatchActiveAndDelete(t *testing.T) {
	s := newTestService(t)
	batch, err := s.AddBatch(models.Batch{ClassName: "8th A", RollRange: "1-10"})
	require.NoError(t, err)

	found, err := s.SetBatchActive(batch.ID, false)
	require.NoError(t, err)
	assert.True(t, found)
	stored, err := s.GetBatchByID(batch.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Active())

	found, err = s.SetBatchActive("missing", true)
	assert.NoError(t, err)
	assert.False(t, found)

	deleted, err := s.DeleteBatch(batch.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	exists, err := s.BatchExists(batch.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err = s.DeleteBatch(batch.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSaveAndGetReport(t *testing.T) {
	s := newTestService(t)
	report := &models.Report{ExamName: "Annual", MaxBenches: 25, Totals: map[string]int{"10th": 3}, GrandTotal: 3}

	id, err := s.SaveReport(report)
	require.NoError(t, err)
	assert.Equal(t, report.ID, id)

	loaded, err := s.GetReport(id)
	require.NoError(t, err)
	assert.Equal(t, report, loaded)

	missing, err := s.GetReport("nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestImportBatchesFromExcel(t *testing.T) {
	s := newTestService(t)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Class", "Rolls", "Absentees", "Active"},
		{"10th A", "1-40", "3, 9", "yes"},
		{"", "1-5", "", ""},
		{"9th B", "41-70", "", "no"},
		{"8th C", "", "", ""},
		{"7th A", "1-30"},
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	count, err := s.ImportBatchesFromExcel(buf)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	batches, err := s.GetAllBatches()
	require.NoError(t, err)
	require.Len(t, batches, 3)
	assert.Equal(t, "10th A", batches[0].ClassName)
	assert.Equal(t, "3, 9", batches[0].Absentees)
	assert.True(t, batches[0].Active())
	assert.False(t, batches[1].Active())
	assert.Nil(t, batches[2].IsActive)
}

func TestImportBatchesFromExcel_NotAWorkbook(t *testing.T) {
	s := newTestService(t)
	_, err := s.ImportBatchesFromExcel(strings.NewReader("plain text"))
	assert.Error(t, err)
}

func TestParseActive(t *testing.T) {
	assert.Nil(t, ParseActive(""))
	assert.Nil(t, ParseActive("maybe"))
	require.NotNil(t, ParseActive("YES"))
	assert.True(t, *ParseActive("YES"))
	assert.False(t, *ParseActive("0"))
}
