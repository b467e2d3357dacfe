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

// SettingsRepo provides typed DynamoDB operations for notification settings
// and invoice category settings.
type SettingsRepo struct {
	client          *dynamodb.Client
	settingsTable   string
	categoriesTable string
}

func NewSettingsRepo(client *dynamodb.Client, settingsTable, categoriesTable string) *SettingsRepo {
	return &SettingsRepo{client: client, settingsTable: settingsTable, categoriesTable: categoriesTable}
}

// ListNotificationSettings returns every per-type setting item.
func (r *SettingsRepo) ListNotificationSettings(ctx context.Context) ([]domain.NotificationSetting, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.settingsTable),
	})
	if err != nil {
		return nil, err
	}
	var settings []domain.NotificationSetting
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// PutNotificationSettings replaces the per-type setting items. The table is
// three items; individual puts keep the repo simple.
func (r *SettingsRepo) PutNotificationSettings(ctx context.Context, settings []domain.NotificationSetting) error {
	for i := range settings {
		item, err := attributevalue.MarshalMap(&settings[i])
		if err != nil {
			return fmt.Errorf("marshal notification setting: %w", err)
		}
		if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.settingsTable),
			Item:      item,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *SettingsRepo) GetCategory(ctx context.Context, categoryID string) (*domain.InvoiceCategory, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.categoriesTable),
		Key:       strKey("category_id", categoryID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
	}
	var c domain.InvoiceCategory
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *SettingsRepo) PutCategory(ctx context.Context, c *domain.InvoiceCategory) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal category: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.categoriesTable),
		Item:      item,
	})
	return err
}

func (r *SettingsRepo) UpdateCategoryBankAccount(ctx context.Context, categoryID, bankAccount string) error {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		fieldBankAccount: bankAccount,
		fieldUpdatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.categoriesTable),
		Key:                       strKey("category_id", categoryID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
