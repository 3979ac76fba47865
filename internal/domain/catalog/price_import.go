package catalog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/scentlab/crm-backend/internal/domain/shared"
)

// PriceImportStatus is the lifecycle state of a price-list import
type PriceImportStatus string

const (
	ImportProcessing PriceImportStatus = "PROCESSING"
	ImportCompleted  PriceImportStatus = "COMPLETED"
	ImportFailed     PriceImportStatus = "FAILED"
)

// PriceImportFailure records one rejected row of an import
type PriceImportFailure struct {
	ExternalArticle string `json:"external_article"`
	Reason          string `json:"reason"`
}

// PriceImport is the audit record of one price-list import batch.
// Every import attempt leaves a record, including fully rejected ones.
type PriceImport struct {
	shared.BaseAggregateRoot
	Source      string
	TotalRows   int
	CreatedRows int
	UpdatedRows int
	Status      PriceImportStatus
	Failures    []PriceImportFailure
	ImportedBy  uuid.UUID
	CompletedAt *time.Time
}

// NewPriceImport starts an import audit record
func NewPriceImport(source string, totalRows int, importedBy uuid.UUID) (*PriceImport, error) {
	if totalRows <= 0 {
		return nil, shared.NewDomainError("INVALID_IMPORT", "Import must contain at least one row")
	}
	if source == "" {
		source = "api"
	}
	return &PriceImport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Source:            source,
		TotalRows:         totalRows,
		Status:            ImportProcessing,
		ImportedBy:        importedBy,
	}, nil
}

// Complete records the outcome of the batch. An import where no row
// survived is marked failed.
func (p *PriceImport) Complete(created, updated int, failures []PriceImportFailure) error {
	if p.Status != ImportProcessing {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete import in state %s", p.Status))
	}
	if created < 0 || updated < 0 {
		return shared.NewDomainError("INVALID_IMPORT", "Row counts cannot be negative")
	}

	p.CreatedRows = created
	p.UpdatedRows = updated
	p.Failures = failures
	p.Status = ImportCompleted
	if created+updated == 0 && len(failures) > 0 {
		p.Status = ImportFailed
	}

	now := time.Now()
	p.CompletedAt = &now
	p.Touch()
	p.IncrementVersion()
	return nil
}

// FailedRows returns the number of rejected rows
func (p *PriceImport) FailedRows() int {
	return len(p.Failures)
}

// SuccessRate returns the share of accepted rows, 0 to 1
func (p *PriceImport) SuccessRate() float64 {
	if p.TotalRows == 0 {
		return 0
	}
	return float64(p.CreatedRows+p.UpdatedRows) / float64(p.TotalRows)
}

// Duration returns how long the import ran, or zero while processing
func (p *PriceImport) Duration() time.Duration {
	if p.CompletedAt == nil {
		return 0
	}
	return p.CompletedAt.Sub(p.CreatedAt)
}

// FailuresJSON serializes the failure list for storage
func (p *PriceImport) FailuresJSON() (string, error) {
	if len(p.Failures) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(p.Failures)
	if err != nil {
		return "", fmt.Errorf("failed to marshal import failures: %w", err)
	}
	return string(data), nil
}

// SetFailuresJSON restores the failure list from storage
func (p *PriceImport) SetFailuresJSON(raw string) error {
	if raw == "" || raw == "[]" {
		p.Failures = nil
		return nil
	}
	var failures []PriceImportFailure
	if err := json.Unmarshal([]byte(raw), &failures); err != nil {
		return fmt.Errorf("failed to unmarshal import failures: %w", err)
	}
	p.Failures = failures
	return nil
}
