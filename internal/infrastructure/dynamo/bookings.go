package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/detailing-api/internal/domain"
)

// BookingRepo provides typed DynamoDB operations for the bookings table.
type BookingRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewBookingRepo(client *dynamodb.Client, tableName string) *BookingRepo {
	return &BookingRepo{client: client, tableName: tableName}
}

func (r *BookingRepo) Put(ctx context.Context, b *domain.Booking) error {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *BookingRepo) Get(ctx context.Context, bookingID string) (*domain.Booking, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("booking_id", bookingID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, domain.ErrNotFound)
	}
	var b domain.Booking
	if err := attributevalue.UnmarshalMap(out.Item, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Scan returns every booking. Projections filter and sort in memory; the
// table is small enough (one shop's appointment book) that a full scan is
// the simplest consistent snapshot.
func (r *BookingRepo) Scan(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Booking
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		bookings = append(bookings, page...)
		if out.LastEvaluatedKey == nil {
			return bookings, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// ListByStatus queries the status-date GSI, newest date first.
func (r *BookingRepo) ListByStatus(ctx context.Context, status domain.BookingStatus) ([]domain.Booking, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("status-date-index"),
		KeyConditionExpression: aws.String("#s = :status"),
		ExpressionAttributeNames: map[string]string{
			"#s": fieldStatus,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var bookings []domain.Booking
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus applies the given field updates to one booking, guarded on
// the booking currently being in one of the allowedFrom states. The guard
// makes every transition an optimistic single-record write: a concurrent
// transition that moved the booking first fails the condition and surfaces
// as domain.ErrConflict, never as a silently overwritten status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, bookingID string, updates map[string]interface{}, allowedFrom ...domain.BookingStatus) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}

	ue.Names["#cur"] = fieldStatus
	placeholders := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		p := fmt.Sprintf(":from%d", i)
		placeholders[i] = p
		ue.Values[p] = &types.AttributeValueMemberS{Value: string(s)}
	}
	cond := fmt.Sprintf("attribute_exists(booking_id) AND #cur IN (%s)", strings.Join(placeholders, ", "))

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("booking_id", bookingID),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String(cond),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("booking %s changed state concurrently: %w", bookingID, domain.ErrConflict)
		}
		return err
	}
	return nil
}

// HardDelete removes the booking record permanently. Callers are expected
// to have verified the booking is in a terminal state.
func (r *BookingRepo) HardDelete(ctx context.Context, bookingID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("booking_id", bookingID),
	})
	return err
}
