package s3

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/pointbsp/blobstore"
)

// ErrConcurrentCommit is returned when another writer published a snapshot
// pointer concurrently.
var ErrConcurrentCommit = errors.New("concurrent commit detected")

// DDBClient is the subset of the DynamoDB client the commit store uses.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// CommitStore tracks which snapshot blob is current. S3 has no atomic
// compare-and-swap, so the pointer lives in a DynamoDB table and is advanced
// with conditional writes; concurrent publishers lose cleanly instead of
// overwriting each other.
//
// Table schema:
//   - Partition key: index_name (string)
//   - Sort key: version (number), monotonically increasing
//
// Create the table with:
//
//	aws dynamodb create-table \
//	  --table-name pointbsp-commits \
//	  --attribute-definitions AttributeName=index_name,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=index_name,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type CommitStore struct {
	ddb       DDBClient
	tableName string
	indexName string
}

// NewCommitStore creates a commit store over the given DynamoDB table.
// indexName is the partition key identifying one logical index.
func NewCommitStore(ddb DDBClient, tableName, indexName string) *CommitStore {
	return &CommitStore{
		ddb:       ddb,
		tableName: tableName,
		indexName: indexName,
	}
}

// Publish makes the named snapshot blob the current one. It returns the new
// version, or ErrConcurrentCommit if another writer advanced the pointer first.
func (c *CommitStore) Publish(ctx context.Context, snapshotName string) (uint64, error) {
	version, _, err := c.latest(ctx)
	if err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return 0, err
	}
	next := version + 1

	_, err = c.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.tableName),
		Item: map[string]types.AttributeValue{
			"index_name": &types.AttributeValueMemberS{Value: c.indexName},
			"version":    &types.AttributeValueMemberN{Value: strconv.FormatUint(next, 10)},
			"snapshot":   &types.AttributeValueMemberS{Value: snapshotName},
		},
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return 0, ErrConcurrentCommit
		}
		return 0, err
	}

	return next, nil
}

// Current returns the name of the current snapshot blob.
func (c *CommitStore) Current(ctx context.Context) (string, error) {
	_, name, err := c.latest(ctx)
	return name, err
}

// latest queries the highest committed version.
func (c *CommitStore) latest(ctx context.Context) (uint64, string, error) {
	resp, err := c.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.tableName),
		KeyConditionExpression: aws.String("index_name = :n"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":n": &types.AttributeValueMemberS{Value: c.indexName},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return 0, "", err
	}
	if len(resp.Items) == 0 {
		return 0, "", blobstore.ErrNotFound
	}

	item := resp.Items[0]

	vattr, ok := item["version"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, "", fmt.Errorf("commit item missing version attribute")
	}
	version, err := strconv.ParseUint(vattr.Value, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("parse commit version: %w", err)
	}

	sattr, ok := item["snapshot"].(*types.AttributeValueMemberS)
	if !ok {
		return 0, "", fmt.Errorf("commit item missing snapshot attribute")
	}

	return version, sattr.Value, nil
}
