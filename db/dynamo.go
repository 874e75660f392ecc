package db

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/patternmetrics/model"
)

// dynamoItem is the table layout; PK holds the report ID.
type dynamoItem struct {
	PK           string       `dynamodbav:"PK"`
	PiecePath    string       `dynamodbav:"PiecePath"`
	PatternsPath string       `dynamodbav:"PatternsPath"`
	CreatedAt    string       `dynamodbav:"CreatedAt"`
	Report       model.Report `dynamodbav:"Report"`
}

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

func NewDynamoStore(endpoint, region, table string) (*DynamoStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create a new DynamoDB session: %w", err)
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), table), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func (s *DynamoStore) Close() error {
	return nil
}

func (s *DynamoStore) SaveReport(ctx context.Context, r model.StoredReport) error {
	item, err := dynamodbattribute.MarshalMap(dynamoItem{
		PK:           r.ID,
		PiecePath:    r.PiecePath,
		PatternsPath: r.PatternsPath,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339Nano),
		Report:       r.Report,
	})
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	_, err = s.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("error from DynamoDB: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetReport(ctx context.Context, id string) (model.StoredReport, error) {
	out, err := s.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return model.StoredReport{}, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if len(out.Item) == 0 {
		return model.StoredReport{}, fmt.Errorf("%w: %v", ErrReportNotFound, id)
	}
	return decodeItem(out.Item)
}

// ListReports scans the whole table. Order is whatever DynamoDB returns.
func (s *DynamoStore) ListReports(ctx context.Context) ([]model.StoredReport, error) {
	var res []model.StoredReport
	var decodeErr error
	err := s.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, item := range page.Items {
			r, err := decodeItem(item)
			if err != nil {
				decodeErr = err
				return false
			}
			res = append(res, r)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return res, nil
}

func decodeItem(item map[string]*dynamodb.AttributeValue) (model.StoredReport, error) {
	var it dynamoItem
	if err := dynamodbattribute.UnmarshalMap(item, &it); err != nil {
		return model.StoredReport{}, fmt.Errorf("unmarshaling report: %w", err)
	}
	r := model.StoredReport{
		ID:           it.PK,
		PiecePath:    it.PiecePath,
		PatternsPath: it.PatternsPath,
		Report:       it.Report,
	}
	if it.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, it.CreatedAt)
		if err != nil {
			return model.StoredReport{}, fmt.Errorf("parsing CreatedAt of %v: %w", it.PK, err)
		}
		r.CreatedAt = createdAt
	}
	return r, nil
}
