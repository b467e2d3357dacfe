package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pacpro-api/internal/domain"
)

// DeadlineRepo provides typed DynamoDB operations for the deadlines table.
type DeadlineRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDeadlineRepo(client *dynamodb.Client, tableName string) *DeadlineRepo {
	return &DeadlineRepo{client: client, tableName: tableName}
}

func (r *DeadlineRepo) Put(ctx context.Context, d *domain.Deadline) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal deadline: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DeadlineRepo) Get(ctx context.Context, deadlineID string) (*domain.Deadline, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("deadline_id", deadlineID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("deadline %s: %w", deadlineID, domain.ErrNotFound)
	}
	var d domain.Deadline
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all deadlines; ordering by due date happens in the service
// since a scan has no sort key.
func (r *DeadlineRepo) List(ctx context.Context) ([]domain.Deadline, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var deadlines []domain.Deadline
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &deadlines); err != nil {
		return nil, err
	}
	return deadlines, nil
}

func (r *DeadlineRepo) Update(ctx context.Context, deadlineID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	expr, names, values, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("deadline_id", deadlineID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

func (r *DeadlineRepo) HardDelete(ctx context.Context, deadlineID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("deadline_id", deadlineID),
	})
	return err
}
