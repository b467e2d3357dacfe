package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pacpro-api/internal/domain"
)

// TotalsRepo provides typed DynamoDB operations for the invoice_log_totals table.
type TotalsRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewTotalsRepo(client *dynamodb.Client, tableName string) *TotalsRepo {
	return &TotalsRepo{client: client, tableName: tableName}
}

func (r *TotalsRepo) Put(ctx context.Context, t *domain.MonthlyTotals) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("marshal monthly totals: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *TotalsRepo) Get(ctx context.Context, storeMonth string) (*domain.MonthlyTotals, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("store_month", storeMonth),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("totals %s: %w", storeMonth, domain.ErrNotFound)
	}
	var t domain.MonthlyTotals
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
