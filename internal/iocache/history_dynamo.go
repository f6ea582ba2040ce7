package iocache

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/huangsam/commentiq/internal/contract"
	"github.com/huangsam/commentiq/schema"
)

const (
	dynamoSetupTimeout   = 2 * time.Minute
	dynamoRequestTimeout = 30 * time.Second
	dynamoMaxBatchSize   = 25
	dynamoMaxRetries     = 3
)

// dynamoAPI is the subset of the DynamoDB client used by the history store.
type dynamoAPI interface {
	dynamodb.DescribeTableAPIClient
	dynamodb.ScanAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// dynamoHistoryItem is the DynamoDB shape of a CommentAnalysis.
type dynamoHistoryItem struct {
	ID               string   `dynamodbav:"id"`
	Seq              int64    `dynamodbav:"seq"`
	OriginalText     string   `dynamodbav:"original_text"`
	Source           string   `dynamodbav:"source"`
	APIURL           string   `dynamodbav:"api_url,omitempty"`
	CreatedAt        int64    `dynamodbav:"created_at"`
	SentimentScore   float64  `dynamodbav:"sentiment_score"`
	SentimentLabel   string   `dynamodbav:"sentiment_label"`
	Confidence       float64  `dynamodbav:"confidence"`
	SummaryText      string   `dynamodbav:"summary_text"`
	CompressionRatio int      `dynamodbav:"compression_ratio"`
	SummaryWordCount int      `dynamodbav:"summary_word_count"`
	WordCount        int      `dynamodbav:"word_count"`
	SentenceCount    int      `dynamodbav:"sentence_count"`
	AvgWordLength    float64  `dynamodbav:"avg_word_length"`
	ReadabilityScore int      `dynamodbav:"readability_score"`
	KeyPhrases       []string `dynamodbav:"key_phrases"`
}

// DynamoHistoryStore persists analyzed comments in a DynamoDB table keyed by id.
type DynamoHistoryStore struct {
	client    dynamoAPI
	tableName string
	region    string
	now       func() time.Time
}

var _ contract.HistoryStore = &DynamoHistoryStore{} // Compile-time check

// newDynamoClient loads the default AWS config for region. A non-empty endpoint
// overrides the service URL, which is how DynamoDB Local is reached.
func newDynamoClient(region, endpoint string) (*dynamodb.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), dynamoRequestTimeout)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// NewDynamoHistoryStore connects to DynamoDB and creates the history table when missing.
func NewDynamoHistoryStore(tableName, region, endpoint string) (*DynamoHistoryStore, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}
	if region == "" {
		region = contract.DefaultAWSRegion
	}
	client, err := newDynamoClient(region, endpoint)
	if err != nil {
		return nil, err
	}
	return newDynamoHistoryStore(client, tableName, region)
}

func newDynamoHistoryStore(client dynamoAPI, tableName, region string) (*DynamoHistoryStore, error) {
	store := &DynamoHistoryStore{client: client, tableName: tableName, region: region, now: time.Now}

	ctx, cancel := context.WithTimeout(context.Background(), dynamoSetupTimeout)
	defer cancel()
	if err := store.ensureTable(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// ensureTable creates the table on demand and waits for it to become active.
func (ds *DynamoHistoryStore) ensureTable(ctx context.Context) error {
	_, err := ds.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(ds.tableName)})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to describe DynamoDB table %s: %w", ds.tableName, err)
	}

	slog.Info("Creating DynamoDB history table", "table", ds.tableName, "region", ds.region)
	_, err = ds.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(ds.tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return fmt.Errorf("failed to create DynamoDB table %s: %w", ds.tableName, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(ds.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(ds.tableName)}, dynamoSetupTimeout); err != nil {
		return fmt.Errorf("timed out waiting for DynamoDB table %s: %w", ds.tableName, err)
	}
	return nil
}

// deleteDynamoTable drops the table, treating a missing table as already cleared.
func deleteDynamoTable(ctx context.Context, client dynamoAPI, tableName string) error {
	_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{TableName: aws.String(tableName)})
	var notFound *types.ResourceNotFoundException
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("failed to delete DynamoDB table %s: %w", tableName, err)
	}
	return nil
}

// Save writes records in batches of 25. The first record of the call gets the
// highest seq so that it lists first.
func (ds *DynamoHistoryStore) Save(ctx context.Context, records ...schema.CommentAnalysis) error {
	if len(records) == 0 {
		return nil
	}

	base := ds.now().UnixNano()
	requests := make([]types.WriteRequest, 0, len(records))
	for i, r := range records {
		item, err := attributevalue.MarshalMap(toDynamoItem(r, base+int64(len(records)-i)))
		if err != nil {
			return fmt.Errorf("failed to marshal history record %s: %w", r.ID, err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	for start := 0; start < len(requests); start += dynamoMaxBatchSize {
		end := min(start+dynamoMaxBatchSize, len(requests))
		if err := ds.writeBatch(ctx, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// writeBatch sends one BatchWriteItem call and retries unprocessed items with backoff.
func (ds *DynamoHistoryStore) writeBatch(ctx context.Context, batch []types.WriteRequest) error {
	out, err := ds.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{ds.tableName: batch},
	})
	if err != nil {
		return fmt.Errorf("failed to batch write history records: %w", err)
	}

	backoff := 500 * time.Millisecond
	for retry := 0; len(out.UnprocessedItems) > 0 && retry < dynamoMaxRetries; retry++ {
		slog.Warn("Retrying unprocessed history items",
			"attempt", retry+1,
			"remaining", len(out.UnprocessedItems[ds.tableName]))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2

		out, err = ds.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: out.UnprocessedItems})
		if err != nil {
			return fmt.Errorf("failed to retry batch write: %w", err)
		}
	}

	if remaining := len(out.UnprocessedItems[ds.tableName]); remaining > 0 {
		return fmt.Errorf("%d history records were not written after %d retries", remaining, dynamoMaxRetries)
	}
	return nil
}

// scanAll reads every item, skipping the ones that cannot be decoded.
func (ds *DynamoHistoryStore) scanAll(ctx context.Context) ([]dynamoHistoryItem, error) {
	paginator := dynamodb.NewScanPaginator(ds.client, &dynamodb.ScanInput{TableName: aws.String(ds.tableName)})

	var items []dynamoHistoryItem
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history table: %w", err)
		}
		for _, raw := range page.Items {
			var item dynamoHistoryItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				contract.LogWarn("Skipping unreadable history record", err)
				continue
			}
			items = append(items, item)
		}
	}

	slices.SortStableFunc(items, func(a, b dynamoHistoryItem) int {
		return cmp.Compare(b.Seq, a.Seq)
	})
	return items, nil
}

// List returns records newest first, narrowed by filter.
func (ds *DynamoHistoryStore) List(ctx context.Context, filter schema.HistoryFilter) ([]schema.CommentAnalysis, error) {
	items, err := ds.scanAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]schema.CommentAnalysis, 0, len(items))
	for _, item := range items {
		record, err := item.decode()
		if err != nil {
			contract.LogWarn("Skipping unreadable history record", err)
			continue
		}
		records = append(records, record)
	}
	return filter.Apply(records), nil
}

// Get returns the record with the given id.
func (ds *DynamoHistoryStore) Get(ctx context.Context, id string) (schema.CommentAnalysis, error) {
	out, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return schema.CommentAnalysis{}, fmt.Errorf("failed to get history record %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return schema.CommentAnalysis{}, fmt.Errorf("%w: %s", contract.ErrRecordNotFound, id)
	}

	var item dynamoHistoryItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return schema.CommentAnalysis{}, fmt.Errorf("failed to decode history record %s: %w", id, err)
	}
	return item.decode()
}

// Delete removes the record with the given id.
func (ds *DynamoHistoryStore) Delete(ctx context.Context, id string) error {
	_, err := ds.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.tableName),
		Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
	})
	if err != nil {
		return fmt.Errorf("failed to delete history record %s: %w", id, err)
	}
	return nil
}

// GetStatus returns status information about the history table.
func (ds *DynamoHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(schema.DynamoDBBackend),
		Connected: ds.client != nil,
		BySource:  make(map[schema.Source]int),
	}

	ctx, cancel := context.WithTimeout(context.Background(), dynamoRequestTimeout)
	defer cancel()

	items, err := ds.scanAll(ctx)
	if err != nil {
		return status, err
	}

	status.TotalRecords = len(items)
	for _, item := range items {
		status.BySource[schema.Source(item.Source)]++
		created := time.UnixMilli(item.CreatedAt)
		if status.LastRecordTime.IsZero() || created.After(status.LastRecordTime) {
			status.LastRecordTime = created
		}
		if status.OldestRecordTime.IsZero() || created.Before(status.OldestRecordTime) {
			status.OldestRecordTime = created
		}
	}
	return status, nil
}

// Close is a no-op; the SDK client holds no long-lived connections.
func (ds *DynamoHistoryStore) Close() error {
	return nil
}

func toDynamoItem(r schema.CommentAnalysis, seq int64) dynamoHistoryItem {
	phrases := r.KeyPhrases
	if phrases == nil {
		phrases = []string{}
	}
	return dynamoHistoryItem{
		ID:               r.ID,
		Seq:              seq,
		OriginalText:     r.OriginalText,
		Source:           string(r.Source),
		APIURL:           r.APIURL,
		CreatedAt:        r.Timestamp.UnixMilli(),
		SentimentScore:   r.Sentiment.Score,
		SentimentLabel:   string(r.Sentiment.Label),
		Confidence:       r.Sentiment.Confidence,
		SummaryText:      r.Summary.Text,
		CompressionRatio: r.Summary.CompressionRatio,
		SummaryWordCount: r.Summary.WordCount,
		WordCount:        r.Statistics.OriginalWordCount,
		SentenceCount:    r.Statistics.SentenceCount,
		AvgWordLength:    r.Statistics.AvgWordLength,
		ReadabilityScore: r.Statistics.ReadabilityScore,
		KeyPhrases:       phrases,
	}
}

func (item dynamoHistoryItem) decode() (schema.CommentAnalysis, error) {
	row := historyRow{
		ID:               item.ID,
		OriginalText:     item.OriginalText,
		Source:           item.Source,
		APIURL:           item.APIURL,
		CreatedAt:        item.CreatedAt,
		SentimentScore:   item.SentimentScore,
		SentimentLabel:   item.SentimentLabel,
		Confidence:       item.Confidence,
		SummaryText:      item.SummaryText,
		CompressionRatio: item.CompressionRatio,
		SummaryWordCount: item.SummaryWordCount,
		WordCount:        item.WordCount,
		SentenceCount:    item.SentenceCount,
		AvgWordLength:    item.AvgWordLength,
		ReadabilityScore: item.ReadabilityScore,
		KeyPhrases:       "[]",
	}
	record, err := row.decode()
	if err != nil {
		return record, err
	}
	if len(item.KeyPhrases) > 0 {
		record.KeyPhrases = item.KeyPhrases
	}
	if strings.TrimSpace(item.ID) == "" {
		return record, errors.New("history record without id")
	}
	return record, nil
}
