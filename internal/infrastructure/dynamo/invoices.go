package dynamo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pacpro-api/internal/domain"
)

// InvoiceRepo provides typed DynamoDB operations for the invoices table.
type InvoiceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewInvoiceRepo(client *dynamodb.Client, tableName string) *InvoiceRepo {
	return &InvoiceRepo{client: client, tableName: tableName}
}

func (r *InvoiceRepo) Put(ctx context.Context, inv *domain.Invoice) error {
	item, err := attributevalue.MarshalMap(inv)
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *InvoiceRepo) Get(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("invoice_id", invoiceID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound)
	}
	var inv domain.Invoice
	if err := attributevalue.UnmarshalMap(out.Item, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvoiceRepo) HardDelete(ctx context.Context, invoiceID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("invoice_id", invoiceID),
	})
	return err
}

// ListByStoreMonth queries the storeID GSI and filters to one target month.
func (r *InvoiceRepo) ListByStoreMonth(ctx context.Context, storeID string, month, year int) ([]domain.Invoice, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("storeID-index"),
		KeyConditionExpression: aws.String("storeID = :sid"),
		FilterExpression:       aws.String("targetMonth = :m AND targetYear = :y"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
			":m":   &types.AttributeValueMemberN{Value: strconv.Itoa(month)},
			":y":   &types.AttributeValueMemberN{Value: strconv.Itoa(year)},
		},
	})
	if err != nil {
		return nil, err
	}
	var invoices []domain.Invoice
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// StoreMonth identifies one store/month combination that has invoices.
type StoreMonth struct {
	StoreID     string `dynamodbav:"storeID"`
	TargetMonth int    `dynamodbav:"targetMonth"`
	TargetYear  int    `dynamodbav:"targetYear"`
}

// ScanStoreMonths walks the table and returns the distinct store/month keys,
// optionally limited to one store. Used by the totals backfill.
func (r *InvoiceRepo) ScanStoreMonths(ctx context.Context, storeID string) ([]StoreMonth, error) {
	input := &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		ProjectionExpression: aws.String("storeID, targetMonth, targetYear"),
	}
	if storeID != "" {
		input.FilterExpression = aws.String("storeID = :sid")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":sid": &types.AttributeValueMemberS{Value: storeID},
		}
	}

	seen := make(map[string]bool)
	var result []StoreMonth
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []StoreMonth
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		for _, sm := range page {
			if sm.StoreID == "" || sm.TargetMonth == 0 || sm.TargetYear == 0 {
				continue
			}
			key := domain.StoreMonthKey(sm.StoreID, sm.TargetMonth, sm.TargetYear)
			if !seen[key] {
				seen[key] = true
				result = append(result, sm)
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return result, nil
}
