package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/detailing-api/internal/domain"
)

// BroadcastRepo provides typed DynamoDB operations for the broadcasts table.
// Broadcast records are append-only dispatch history: put, scan, delete.
type BroadcastRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBroadcastRepo(client *dynamodb.Client, tableName string) *BroadcastRepo {
	return &BroadcastRepo{client: client, tableName: tableName}
}

func (r *BroadcastRepo) Put(ctx context.Context, b *domain.Broadcast) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal broadcast: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BroadcastRepo) Scan(ctx context.Context) ([]domain.Broadcast, error) {
	var broadcasts []domain.Broadcast
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Broadcast
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		broadcasts = append(broadcasts, page...)
		if out.LastEvaluatedKey == nil {
			return broadcasts, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// HardDelete removes one history record. Deleting history never touches
// the notifications it once produced.
func (r *BroadcastRepo) HardDelete(ctx context.Context, broadcastID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("broadcast_id", broadcastID),
	})
	return err
}
