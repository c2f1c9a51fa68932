package track

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArtifactStore keeps the raw prompt and response text of each
// interaction as two plain-text objects in S3, keyed by record ID and
// endpoint name.
type ArtifactStore struct {
	client *s3.Client
	bucket string
}

func NewArtifactStore(client *s3.Client, bucket string) *ArtifactStore {
	return &ArtifactStore{client: client, bucket: bucket}
}

func (a *ArtifactStore) Put(ctx context.Context, rec Record) error {
	if a == nil || a.client == nil || a.bucket == "" {
		return nil
	}

	prefix := fmt.Sprintf("interactions/%s", rec.ID)
	objects := map[string]string{
		fmt.Sprintf("%s/prompt_%s.txt", prefix, rec.Endpoint):   rec.Prompt,
		fmt.Sprintf("%s/response_%s.txt", prefix, rec.Endpoint): rec.Response,
	}

	for key, body := range objects {
		_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(a.bucket),
			Key:         aws.String(key),
			Body:        strings.NewReader(body),
			ContentType: aws.String("text/plain; charset=utf-8"),
		})
		if err != nil {
			return fmt.Errorf("put artifact %s: %w", key, err)
		}
	}
	return nil
}
