package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() model.Report {
	return model.Report{
		PieceLength:         5,
		NumPatterns:         1,
		Coverage:            0.8,
		UncoveredNotes:      1,
		EncodingCost:        4,
		LosslessCompression: 1.25,
		Patterns: []model.PatternReport{{
			Index:       0,
			Occurrences: 2,
			MotifLength: 2,
			Vectors:     []model.Vector{{Onset: 20, Pitch: 0}},
			Cost:        3,
		}},
	}
}

func assertSameRecord(t *testing.T, want, got model.StoredReport) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.PiecePath, got.PiecePath)
	assert.Equal(t, want.PatternsPath, got.PatternsPath)
	assert.WithinDuration(t, want.CreatedAt, got.CreatedAt, time.Millisecond)
	assert.Equal(t, want.Report, got.Report)
}

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "reports.sqlite3"))
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func TestNewRecord(t *testing.T) {
	a := NewRecord("piece.csv", "patterns.txt", sampleReport())
	b := NewRecord("piece.csv", "patterns.txt", sampleReport())

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestNewStore(t *testing.T) {
	store, err := NewStore(StoreNone)
	require.NoError(t, err)
	assert.Nil(t, store)

	_, err = NewStore("postgres")
	assert.ErrorIs(t, err, ErrUnknownStore)

	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "env.sqlite3"))
	store, err = NewStore(StoreSQLite)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestSQLiteSaveAndGet(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	rec := NewRecord("piece.csv", "patterns.txt", sampleReport())

	require.NoError(t, store.SaveReport(ctx, rec))

	got, err := store.GetReport(ctx, rec.ID)
	require.NoError(t, err)
	assertSameRecord(t, rec, got)
}

func TestSQLiteGetMissing(t *testing.T) {
	store := setupSQLite(t)
	_, err := store.GetReport(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestSQLiteListNewestFirst(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	older := NewRecord("a.csv", "a.txt", sampleReport())
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := NewRecord("b.csv", "b.txt", sampleReport())

	require.NoError(t, store.SaveReport(ctx, older))
	require.NoError(t, store.SaveReport(ctx, newer))

	list, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestSQLiteDuplicateID(t *testing.T) {
	store := setupSQLite(t)
	ctx := context.Background()
	rec := NewRecord("piece.csv", "patterns.txt", sampleReport())

	require.NoError(t, store.SaveReport(ctx, rec))
	assert.Error(t, store.SaveReport(ctx, rec))
}

type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
	table string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.table = aws.StringValue(in.TableName)
	f.items[aws.StringValue(in.Item["PK"].S)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[aws.StringValue(in.Key["PK"].S)]}, nil
}

func (f *fakeDynamo) ScanPagesWithContext(ctx aws.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, opts ...request.Option) error {
	var items []map[string]*dynamodb.AttributeValue
	for _, it := range f.items {
		items = append(items, it)
	}
	fn(&dynamodb.ScanOutput{Items: items}, true)
	return nil
}

func TestDynamoSaveGetList(t *testing.T) {
	fake := newFakeDynamo()
	store := NewDynamoStoreWithClient(fake, "reports")
	ctx := context.Background()
	rec := NewRecord("piece.csv", "patterns.txt", sampleReport())

	require.NoError(t, store.SaveReport(ctx, rec))
	assert.Equal(t, "reports", fake.table)
	assert.Equal(t, rec.ID, aws.StringValue(fake.items[rec.ID]["PK"].S))

	got, err := store.GetReport(ctx, rec.ID)
	require.NoError(t, err)
	assertSameRecord(t, rec, got)

	list, err := store.ListReports(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rec.ID, list[0].ID)
}

func TestDynamoGetMissing(t *testing.T) {
	store := NewDynamoStoreWithClient(newFakeDynamo(), "reports")
	_, err := store.GetReport(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
