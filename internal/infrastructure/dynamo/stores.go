package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pacpro-api/internal/domain"
)

// StoreRepo provides typed DynamoDB operations for the stores table and its
// deleted-store tombstones.
type StoreRepo struct {
	client       *dynamodb.Client
	tableName    string
	deletedTable string
}

func NewStoreRepo(client *dynamodb.Client, tableName, deletedTable string) *StoreRepo {
	return &StoreRepo{client: client, tableName: tableName, deletedTable: deletedTable}
}

func (r *StoreRepo) Put(ctx context.Context, s *domain.Store) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *StoreRepo) Get(ctx context.Context, storeID string) (*domain.Store, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("store_id", storeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("store %s: %w", storeID, domain.ErrNotFound)
	}
	var s domain.Store
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]domain.Store, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var stores []domain.Store
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *StoreRepo) Update(ctx context.Context, storeID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("store_id", storeID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *StoreRepo) HardDelete(ctx context.Context, storeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("store_id", storeID),
	})
	return err
}

// PutTombstone records a deleted store for the restore window.
func (r *StoreRepo) PutTombstone(ctx context.Context, d *domain.DeletedStore) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal deleted store: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.deletedTable),
		Item:      item,
	})
	return err
}

func (r *StoreRepo) GetTombstone(ctx context.Context, deletedID string) (*domain.DeletedStore, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.deletedTable),
		Key:       strKey("deleted_id", deletedID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("deleted store %s: %w", deletedID, domain.ErrNotFound)
	}
	var d domain.DeletedStore
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListTombstones returns tombstones whose restore window has not expired.
func (r *StoreRepo) ListTombstones(ctx context.Context) ([]domain.DeletedStore, error) {
	now := time.Now().Unix()
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:        aws.String(r.deletedTable),
		FilterExpression: aws.String("expire_at > :now"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": &types.AttributeValueMemberN{Value: strconv.FormatInt(now, 10)},
		},
	})
	if err != nil {
		return nil, err
	}
	var deleted []domain.DeletedStore
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &deleted); err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *StoreRepo) DeleteTombstone(ctx context.Context, deletedID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.deletedTable),
		Key:       strKey("deleted_id", deletedID),
	})
	return err
}
