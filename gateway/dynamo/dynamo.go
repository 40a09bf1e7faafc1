// Package dynamo provides a Gateway backed by DynamoDB, one table per
// entity type, for multi-user deployments.
package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/windfab/towerdesk/gateway"
	"github.com/windfab/towerdesk/internal/fields"
	"github.com/windfab/towerdesk/record"
)

// Config holds configuration for the DynamoDB gateway.
type Config struct {
	// TablePrefix is prepended to every logical table name.
	// Default: "towerdesk_"
	TablePrefix string
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.TablePrefix == "" {
		c.TablePrefix = "towerdesk_"
	}
}

// Gateway is a DynamoDB implementation of gateway.Gateway.
type Gateway struct {
	client *dynamodb.Client
	config Config
}

// New creates a Gateway over an existing DynamoDB client.
func New(client *dynamodb.Client, config Config) *Gateway {
	config.validate()
	return &Gateway{
		client: client,
		config: config,
	}
}

// OpenDefault creates a Gateway using the ambient AWS configuration
// (environment, shared config files, instance role).
func OpenDefault(ctx context.Context, config Config) (*Gateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return New(dynamodb.NewFromConfig(awsCfg), config), nil
}

func (g *Gateway) tableName(table string) string {
	return g.config.TablePrefix + table
}

// List scans the table in full and narrows client-side, so search and
// array-membership filters behave identically to the other gateways.
func (g *Gateway) List(ctx context.Context, table string, params gateway.ListParams) (gateway.Page, error) {
	var matched []record.Record

	paginator := dynamodb.NewScanPaginator(g.client, &dynamodb.ScanInput{
		TableName: aws.String(g.tableName(table)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return gateway.Page{}, fmt.Errorf("scan %s: %w", table, err)
		}
		for _, raw := range page.Items {
			var rec record.Record
			if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
				return gateway.Page{}, fmt.Errorf("unmarshal item: %w", err)
			}
			if !matches(rec, params) {
				continue
			}
			matched = append(matched, rec)
		}
	}

	out := gateway.Page{Records: matched, Total: len(matched)}
	if params.Limit > 0 {
		start := params.Page * params.Limit
		if start >= len(matched) {
			out.Records = nil
			return out, nil
		}
		end := start + params.Limit
		if end > len(matched) {
			end = len(matched)
		}
		out.Records = matched[start:end]
	}
	return out, nil
}

func matches(rec record.Record, params gateway.ListParams) bool {
	for field, want := range params.Filters {
		if !fields.Matches(rec[field], want) {
			return false
		}
	}
	query := strings.ToLower(strings.TrimSpace(params.Search))
	if query == "" {
		return true
	}
	for _, v := range rec {
		if strings.Contains(strings.ToLower(fields.String(v)), query) {
			return true
		}
	}
	return false
}

// Create puts the record with an identifier-uniqueness condition, assigning
// an identifier and timestamps when absent.
func (g *Gateway) Create(ctx context.Context, table string, fld record.Record) (record.Record, error) {
	rec := fld.Clone()
	if rec == nil {
		rec = record.Record{}
	}
	if rec.ID() == "" {
		rec[record.IDField] = uuid.NewString()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	rec["created_at"] = now
	rec["updated_at"] = now

	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(g.tableName(table)),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, gateway.ErrAlreadyExists
		}
		return nil, fmt.Errorf("put record: %w", err)
	}
	return rec, nil
}

// Update builds a SET expression over the given fields, requiring the record
// to exist, and returns the updated form.
func (g *Gateway) Update(ctx context.Context, table string, id string, fld record.Record) (record.Record, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	setClauses := []string{"#updated_at = :updated_at"}
	exprNames := map[string]string{"#updated_at": "updated_at"}
	exprValues := map[string]types.AttributeValue{}

	updatedAt, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("marshal updated_at: %w", err)
	}
	exprValues[":updated_at"] = updatedAt

	i := 0
	for k, v := range fld {
		// Skip managed fields
		if k == record.IDField || k == "created_at" || k == "updated_at" {
			continue
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		nameKey := fmt.Sprintf("#attr%d", i)
		valueKey := fmt.Sprintf(":val%d", i)
		exprNames[nameKey] = k
		exprValues[valueKey] = av
		setClauses = append(setClauses, fmt.Sprintf("%s = %s", nameKey, valueKey))
		i++
	}

	out, err := g.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(g.tableName(table)),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String("SET " + strings.Join(setClauses, ", ")),
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ExpressionAttributeNames:  exprNames,
		ExpressionAttributeValues: exprValues,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return nil, gateway.ErrNotFound
		}
		return nil, fmt.Errorf("update record: %w", err)
	}

	var rec record.Record
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal updated record: %w", err)
	}
	return rec, nil
}

// Delete removes the record, requiring it to exist.
func (g *Gateway) Delete(ctx context.Context, table string, id string) error {
	_, err := g.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(g.tableName(table)),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return gateway.ErrNotFound
		}
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}
