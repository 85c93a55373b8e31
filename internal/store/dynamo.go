package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacksonkontny/goodvibes/internal/models"
)

const (
	postsTableName = "Posts"
	usersTableName = "UnsubscribedUsers"
)

// DynamoConfig locates the backing DynamoDB tables.
type DynamoConfig struct {
	Region   string
	Endpoint string
}

// DynamoStore persists records in DynamoDB. Transient failures trigger one
// client reconnect and one retry of the failed call before the error is
// propagated wrapped in ErrTransient.
type DynamoStore struct {
	cfg    DynamoConfig
	mu     sync.Mutex
	client *dynamodb.Client
}

func NewDynamoStore(ctx context.Context, cfg DynamoConfig) (*DynamoStore, error) {
	client, err := newDynamoClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DynamoStore{cfg: cfg, client: client}, nil
}

func newDynamoClient(ctx context.Context, cfg DynamoConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("[DynamoStore] failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

func (s *DynamoStore) reconnect(ctx context.Context) {
	slog.Warn("[DynamoStore] Reconnecting DynamoDB client...")
	client, err := newDynamoClient(ctx, s.cfg)
	if err != nil {
		slog.Error("[DynamoStore] Reconnect failed", slog.String("error", err.Error()))
		return
	}
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
}

func (s *DynamoStore) db() *dynamodb.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// do runs op, reconnecting and retrying exactly once on failure. Condition
// failures are terminal, never retried.
func (s *DynamoStore) do(ctx context.Context, op func(client *dynamodb.Client) error) error {
	err := op(s.db())
	if err == nil || isConditionFailure(err) {
		return err
	}
	slog.Warn("[DynamoStore] Call failed, retrying after reconnect",
		slog.String("error", err.Error()))
	s.reconnect(ctx)
	if err = op(s.db()); err != nil {
		if isConditionFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}
	return nil
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

func (s *DynamoStore) Insert(ctx context.Context, record models.StoredPostRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("[DynamoStore] failed to marshal record: %w", err)
	}

	err = s.do(ctx, func(client *dynamodb.Client) error {
		_, putErr := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(postsTableName),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(post_id)"),
		})
		return putErr
	})
	if isConditionFailure(err) {
		return fmt.Errorf("%w: %s", ErrDuplicatePost, record.PostID)
	}
	return err
}

func (s *DynamoStore) Update(ctx context.Context, postID string, fields Fields) error {
	var sets []string
	values := map[string]types.AttributeValue{}
	if fields.InRoundup != nil {
		sets = append(sets, "is_in_positive_article_post = :ir")
		values[":ir"] = &types.AttributeValueMemberBOOL{Value: *fields.InRoundup}
	}
	if fields.VerifiedPositive != nil {
		sets = append(sets, "verified_positive = :vp")
		values[":vp"] = &types.AttributeValueMemberBOOL{Value: *fields.VerifiedPositive}
	}
	if fields.NetVotes != nil {
		sets = append(sets, "net_votes = :nv")
		values[":nv"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *fields.NetVotes)}
	}
	if len(sets) == 0 {
		return nil
	}

	return s.do(ctx, func(client *dynamodb.Client) error {
		_, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: aws.String(postsTableName),
			Key: map[string]types.AttributeValue{
				"post_id": &types.AttributeValueMemberS{Value: postID},
			},
			UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
			ExpressionAttributeValues: values,
		})
		return err
	})
}

func (s *DynamoStore) Find(ctx context.Context, filter Filter) ([]models.StoredPostRecord, error) {
	var exprs []string
	values := map[string]types.AttributeValue{}
	if filter.PosOutliersOnly {
		exprs = append(exprs, "is_pos_outlier = :pos")
		values[":pos"] = &types.AttributeValueMemberBOOL{Value: true}
	}
	if !filter.CreatedAfter.IsZero() {
		exprs = append(exprs, "created >= :after")
		values[":after"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", filter.CreatedAfter.Unix())}
	}
	if filter.ExcludeInRoundup {
		exprs = append(exprs, "is_in_positive_article_post = :ir")
		values[":ir"] = &types.AttributeValueMemberBOOL{Value: false}
	}

	input := &dynamodb.ScanInput{TableName: aws.String(postsTableName)}
	if len(exprs) > 0 {
		input.FilterExpression = aws.String(strings.Join(exprs, " AND "))
		input.ExpressionAttributeValues = values
	}

	var records []models.StoredPostRecord
	err := s.do(ctx, func(client *dynamodb.Client) error {
		records = records[:0]
		paginator := dynamodb.NewScanPaginator(client, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("[DynamoStore] scan failed: %w", err)
			}
			var page []models.StoredPostRecord
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
				return fmt.Errorf("[DynamoStore] failed to unmarshal scan page: %w", err)
			}
			records = append(records, page...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slog.Info("[DynamoStore] Retrieved records", slog.Int("count", len(records)))
	return records, nil
}

func (s *DynamoStore) Exists(ctx context.Context, postID string) (bool, error) {
	var found bool
	err := s.do(ctx, func(client *dynamodb.Client) error {
		out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(postsTableName),
			Key: map[string]types.AttributeValue{
				"post_id": &types.AttributeValueMemberS{Value: postID},
			},
			ProjectionExpression: aws.String("post_id"),
		})
		if err != nil {
			return err
		}
		found = len(out.Item) > 0
		return nil
	})
	return found, err
}

func (s *DynamoStore) SetUnsubscribed(ctx context.Context, author string, unsubscribed bool) error {
	return s.do(ctx, func(client *dynamodb.Client) error {
		_, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(usersTableName),
			Item: map[string]types.AttributeValue{
				"author":       &types.AttributeValueMemberS{Value: author},
				"unsubscribed": &types.AttributeValueMemberBOOL{Value: unsubscribed},
			},
		})
		return err
	})
}

func (s *DynamoStore) IsUnsubscribed(ctx context.Context, author string) (bool, error) {
	var unsubscribed bool
	err := s.do(ctx, func(client *dynamodb.Client) error {
		out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(usersTableName),
			Key: map[string]types.AttributeValue{
				"author": &types.AttributeValueMemberS{Value: author},
			},
		})
		if err != nil {
			return err
		}
		if len(out.Item) == 0 {
			unsubscribed = false
			return nil
		}
		var flag struct {
			Unsubscribed bool `dynamodbav:"unsubscribed"`
		}
		if err := attributevalue.UnmarshalMap(out.Item, &flag); err != nil {
			return err
		}
		unsubscribed = flag.Unsubscribed
		return nil
	})
	return unsubscribed, err
}
