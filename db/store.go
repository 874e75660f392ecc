package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/model"
)

var (
	// ErrReportNotFound indicates no stored report has the requested ID.
	ErrReportNotFound = errors.New("db: report not found")
	// ErrUnknownStore indicates an unsupported store kind.
	ErrUnknownStore = errors.New("db: unknown store kind")
)

// Store persists evaluation reports.
type Store interface {
	SaveReport(ctx context.Context, r model.StoredReport) error
	GetReport(ctx context.Context, id string) (model.StoredReport, error)
	ListReports(ctx context.Context) ([]model.StoredReport, error)
	Close() error
}

const (
	StoreNone   = "none"
	StoreSQLite = "sqlite"
	StoreDynamo = "dynamo"
)

// NewStore opens the store of the given kind using the environment's
// configuration. StoreNone yields a nil Store.
func NewStore(kind string) (Store, error) {
	switch kind {
	case "", StoreNone:
		return nil, nil
	case StoreSQLite:
		return NewSQLiteStore(constants.GetDBPath())
	case StoreDynamo:
		return NewDynamoStore(constants.GetDynamoEndpoint(), constants.GetDynamoRegion(), constants.GetDynamoTable())
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStore, kind)
}

// NewRecord stamps a report with a fresh ID and creation time.
func NewRecord(piecePath, patternsPath string, report model.Report) model.StoredReport {
	return model.StoredReport{
		ID:           uuid.New().String(),
		PiecePath:    piecePath,
		PatternsPath: patternsPath,
		CreatedAt:    time.Now().UTC(),
		Report:       report,
	}
}
