package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"

	"github.com/nsight-itsm/assistant/internal/config"
	"github.com/nsight-itsm/assistant/internal/observability"
)

// LambdaInvoker executes remote functions as synchronous AWS Lambda
// invocations.
type LambdaInvoker struct {
	client  *lambda.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewLambdaInvoker builds an invoker from the default AWS credential
// chain. An endpoint override supports local stacks.
func NewLambdaInvoker(ctx context.Context, cfg config.RemoteConfig, logger *zap.Logger, metrics *observability.Metrics) (*LambdaInvoker, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var opts []func(*lambda.Options)
	if cfg.EndpointURL != "" {
		opts = append(opts, func(o *lambda.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		})
	}

	return &LambdaInvoker{
		client:  lambda.NewFromConfig(awsCfg, opts...),
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Invoke performs a RequestResponse invocation and decodes the top-level
// JSON payload.
func (l *LambdaInvoker) Invoke(ctx context.Context, function string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", function, err)
	}

	start := time.Now()
	out, err := l.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(function),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        body,
	})
	l.metrics.RecordRemoteCall(function, err != nil, time.Since(start))
	if err != nil {
		l.logger.Warn("remote invocation failed", zap.String("function", function), zap.Error(err))
		return nil, fmt.Errorf("invoke %s: %w", function, err)
	}
	if out.FunctionError != nil {
		l.logger.Warn("remote function errored",
			zap.String("function", function),
			zap.String("function_error", *out.FunctionError),
		)
		return nil, fmt.Errorf("invoke %s: function error %s", function, *out.FunctionError)
	}

	var parsed map[string]any
	if err := json.Unmarshal(out.Payload, &parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", function, err)
	}
	return parsed, nil
}
