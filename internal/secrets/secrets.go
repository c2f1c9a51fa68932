package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/careerkit/companion/internal/config"
)

var ErrNotFound = errors.New("secret not found")

// Store is an opaque key-value secret lookup.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
}

// NewStore picks the backend from configuration.
func NewStore(cfg config.SecretsConfig) Store {
	if cfg.Backend == "aws" {
		return NewManager(cfg.AWSRegion)
	}
	return Env{}
}

// Env resolves secrets from environment variables: "gemini-api-key"
// reads GEMINI_API_KEY.
type Env struct{}

func (Env) Get(_ context.Context, name string) (string, error) {
	key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// Manager fetches secrets from AWS Secrets Manager. The client is
// built once per process and values are memoized for the process
// lifetime; both are safe for concurrent readers.
type Manager struct {
	region string

	once    sync.Once
	client  *secretsmanager.Client
	initErr error

	values sync.Map // name -> string
}

func NewManager(region string) *Manager {
	return &Manager{region: region}
}

func (m *Manager) Get(ctx context.Context, name string) (string, error) {
	if v, ok := m.values.Load(name); ok {
		return v.(string), nil
	}

	m.once.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(m.region))
		if err != nil {
			m.initErr = fmt.Errorf("load aws config: %w", err)
			return
		}
		m.client = secretsmanager.NewFromConfig(cfg)
	})
	if m.initErr != nil {
		return "", m.initErr
	}

	out, err := m.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var nf *smtypes.ResourceNotFoundException
		if errors.As(err, &nf) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("get secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	m.values.Store(name, *out.SecretString)
	return *out.SecretString, nil
}
