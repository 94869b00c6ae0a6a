// Package db persists scored batches to DynamoDB. Storage is a
// collaborator concern: every operation here is best effort and a failed
// write never fails the batch that produced it.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/avelines/newspulse/internal/models"
)

const (
	DefaultTableName = "ScoredArticles"

	maxBatchSize   = 25
	storedItemTTL  = 24 * time.Hour
	maxWriteRetry  = 3
	initialBackoff = 500 * time.Millisecond
)

type Store struct {
	client *dynamodb.Client
	table  string
}

func NewStore(client *dynamodb.Client, table string) *Store {
	if table == "" {
		table = DefaultTableName
	}
	return &Store{client: client, table: table}
}

// StoreScoredArticles writes a scored batch with an expires_at TTL
// attribute, retrying unprocessed items with backoff.
func (s *Store) StoreScoredArticles(ctx context.Context, articles []models.ScoredArticle) error {
	expirationTime := time.Now().Add(storedItemTTL).Unix()

	for i := 0; i < len(articles); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		end := i + maxBatchSize
		if end > len(articles) {
			end = len(articles)
		}

		writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
		for _, article := range articles[i:end] {
			item, err := attributevalue.MarshalMap(article)
			if err != nil {
				slog.Error("[DynamoDB] Failed to marshal article, skipping",
					slog.String("content_id", article.ContentID),
					slog.String("error", err.Error()))
				continue
			}
			item["expires_at"] = &types.AttributeValueMemberN{
				Value: fmt.Sprintf("%d", expirationTime),
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}
		if len(writeRequests) == 0 {
			continue
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.table: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] failed to batch write articles: %w", err)
		}

		// Retry writing unprocessed items
		retryCount := 0
		backoffDuration := initialBackoff
		for len(out.UnprocessedItems) > 0 && retryCount < maxWriteRetry {
			time.Sleep(backoffDuration)
			backoffDuration *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.Int("retry_attempt", retryCount+1),
				slog.Int("remaining_items", len(out.UnprocessedItems[s.table])))

			out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some items were not written even after retries",
				slog.Int("remaining_items", len(out.UnprocessedItems[s.table])))
		}
	}

	slog.Info("[DynamoDB] Successfully stored scored batch",
		slog.Int("items", len(articles)))
	return nil
}
