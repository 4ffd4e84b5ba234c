package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/cost-reporter/pkg/models/domain"
)

type PutObjectAPI interface {
	PutObject(
		ctx context.Context,
		params *s3.PutObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)
}

// StateStore persists the single-slot execution marker. The marker is
// overwritten every run and never read back by the job, so a plain
// PutObject is all the durability the contract needs.
type StateStore struct {
	client PutObjectAPI
	bucket string
	key    string
}

func NewStateStore(cfg aws.Config, bucket, key string) *StateStore {
	return &StateStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
	}
}

func NewStateStoreWithClient(client PutObjectAPI, bucket, key string) *StateStore {
	return &StateStore{client: client, bucket: bucket, key: key}
}

func (s *StateStore) PutMarker(ctx context.Context, marker domain.ExecutionMarker) error {
	body, err := json.MarshalIndent(marker, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode execution marker: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to store execution marker s3://%s/%s: %w", s.bucket, s.key, err)
	}
	return nil
}
