package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pacpro-api/internal/domain"
)

// NotificationRepo provides typed DynamoDB operations for the notifications table.
type NotificationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewNotificationRepo(client *dynamodb.Client, tableName string) *NotificationRepo {
	return &NotificationRepo{client: client, tableName: tableName}
}

// PutIfAbsent writes one notification unless an item with the same id already
// exists. A conditional failure means a redelivered event already produced
// this notification and is not an error.
func (r *NotificationRepo) PutIfAbsent(ctx context.Context, n *domain.Notification) error {
	item, err := attributevalue.MarshalMap(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(notification_id)"),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return nil
	}
	return err
}

// BatchPutIfAbsent commits the whole fan-out as one transaction: either every
// recipient's notification is written or none is. Each item carries an
// insert-if-absent condition, so redelivery of an already-committed event
// cancels the transaction on the condition checks and is treated as success.
// TransactWriteItems caps at 100 items; the recipient set is the supervisor
// list of a single store group, far below that.
func (r *NotificationRepo) BatchPutIfAbsent(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	items := make([]types.TransactWriteItem, 0, len(notifications))
	for i := range notifications {
		item, err := attributevalue.MarshalMap(&notifications[i])
		if err != nil {
			return fmt.Errorf("marshal notification: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                item,
				ConditionExpression: aws.String("attribute_not_exists(notification_id)"),
			},
		})
	}
	_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if isAllConditionalCancel(err) {
		return nil
	}
	return err
}

// isAllConditionalCancel reports whether a transaction was cancelled solely by
// conditional checks, i.e. every item already existed.
func isAllConditionalCancel(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	sawConditional := false
	for _, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code == "None" {
			continue
		}
		if *reason.Code != "ConditionalCheckFailed" {
			return false
		}
		sawConditional = true
	}
	return sawConditional
}

func (r *NotificationRepo) Get(ctx context.Context, notificationID string) (*domain.Notification, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("notification_id", notificationID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	var n domain.Notification
	if err := attributevalue.UnmarshalMap(out.Item, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListByEmail queries the toEmail-created_at GSI, newest first.
func (r *NotificationRepo) ListByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("toEmail-created_at-index"),
		KeyConditionExpression: aws.String("toEmail = :e"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: toEmail},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListUnreadByEmail returns the unread subset, newest first.
func (r *NotificationRepo) ListUnreadByEmail(ctx context.Context, toEmail string) ([]domain.Notification, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("toEmail-created_at-index"),
		KeyConditionExpression:   aws.String("toEmail = :e"),
		FilterExpression:         aws.String("#r = :f"),
		ExpressionAttributeNames: map[string]string{"#r": fieldRead},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":e": &types.AttributeValueMemberS{Value: toEmail},
			":f": &types.AttributeValueMemberBOOL{Value: false},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var notifications []domain.Notification
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepo) MarkAsRead(ctx context.Context, notificationID string) error {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		fieldRead:   true,
		fieldReadAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("notification_id", notificationID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}

// ListCreatedSince scans for notifications created after the given time.
// Used by the daily digest; runs once a day over a day's worth of items.
func (r *NotificationRepo) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Notification, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("created_at > :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":since": &types.AttributeValueMemberS{Value: since.UTC().Format(time.RFC3339)},
		},
	}
	var notifications []domain.Notification
	for {
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return nil, err
		}
		var page []domain.Notification
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		notifications = append(notifications, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
	return notifications, nil
}
