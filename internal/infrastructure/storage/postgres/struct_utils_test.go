package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Clawwo/IasProductama-sub000/internal/core/id"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/inbound"
	"github.com/Clawwo/IasProductama-sub000/internal/domain/documents/rawissue"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[inbound.Inbound]()

	expected := []string{"id", "code", "vendor", "date", "note", "created_by_id", "created_at"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	// Lines carry db:"-" and must not leak into the column list.
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "lines")
}

func TestExtractDBColumnsEmbedded(t *testing.T) {
	cols := ExtractDBColumns[rawissue.Line]()

	// Embedded documents.Line columns come first, own columns after.
	for _, col := range []string{"id", "code", "name", "qty", "batch_code", "status", "received_at", "received_by"} {
		assert.Contains(t, cols, col)
	}
}

func TestStructToMap(t *testing.T) {
	note := "urgent"
	doc := inbound.Inbound{
		ID:        id.New(),
		Code:      "IN-20240301-0001",
		Vendor:    "PT Sumber",
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Note:      &note,
		CreatedAt: time.Now().UTC(),
	}

	m := StructToMap(doc)

	assert.Equal(t, doc.ID, m["id"])
	assert.Equal(t, "IN-20240301-0001", m["code"])
	assert.Equal(t, "PT Sumber", m["vendor"])
	assert.Equal(t, &note, m["note"])
	assert.NotContains(t, m, "lines")
}

func TestStructToMapEmbedded(t *testing.T) {
	batch := "B-7"
	line := rawissue.Line{
		Line: documents.Line{
			ID:   id.New(),
			Code: "BB-001",
			Qty:  12,
		},
		BatchCode: &batch,
		Status:    rawissue.StatusOut,
	}

	m := StructToMap(line)

	assert.Equal(t, line.ID, m["id"])
	assert.Equal(t, "BB-001", m["code"])
	assert.Equal(t, 12, m["qty"])
	assert.Equal(t, &batch, m["batch_code"])
	assert.Equal(t, rawissue.StatusOut, m["status"])
}
