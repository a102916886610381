package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

const (
	// warmupSource identifies warm-up events for the translator function.
	warmupSource = "warmup"

	defaultWarmupAttempts = 3
	defaultWarmupBackoff  = 2 * time.Second
)

var _ output.Engine = (*LambdaEngine)(nil)

// invoker is the subset of the Lambda client used by the engine.
type invoker interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaConfig configures the Lambda-backed engine.
type LambdaConfig struct {
	FunctionName   string
	WarmupAttempts int
	WarmupBackoff  time.Duration
}

// translatorRequest is the payload sent to the translator function (chunked mode).
type translatorRequest struct {
	Chunks     [][]string `json:"chunks"`
	SourceLang string     `json:"source_lang"`
	TargetLang string     `json:"target_lang"`
}

// translatorResponse is the translator function's reply.
type translatorResponse struct {
	Translations [][]string `json:"translations"`
	Error        string     `json:"error,omitempty"`
}

type warmupEvent struct {
	Source     string `json:"source"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// LambdaEngine translates through an AWS Lambda translator function. A session
// is handed out once a warm-up call for its language pair has succeeded.
type LambdaEngine struct {
	client invoker
	config LambdaConfig
}

// NewLambdaEngine loads the default AWS configuration and builds the engine.
func NewLambdaEngine(ctx context.Context, cfg LambdaConfig) (*LambdaEngine, error) {
	if cfg.FunctionName == "" {
		return nil, fmt.Errorf("lambda engine: function name is required")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newLambdaEngine(lambda.NewFromConfig(awsCfg), cfg), nil
}

func newLambdaEngine(client invoker, cfg LambdaConfig) *LambdaEngine {
	if cfg.WarmupAttempts <= 0 {
		cfg.WarmupAttempts = defaultWarmupAttempts
	}
	if cfg.WarmupBackoff <= 0 {
		cfg.WarmupBackoff = defaultWarmupBackoff
	}
	return &LambdaEngine{client: client, config: cfg}
}

// RequestSession warms the function up in the background and delivers the
// session once it answers. Nothing is delivered if every attempt fails or ctx
// is cancelled.
func (e *LambdaEngine) RequestSession(ctx context.Context, pair entities.LanguagePair, ready output.SessionListener) error {
	go func() {
		if err := e.warmup(ctx, pair); err != nil {
			log.Printf("❌ lambda warm-up failed (pair=%s): %v", pair, err)
			return
		}
		ready(&lambdaSession{engine: e, pair: pair})
	}()
	return nil
}

func (e *LambdaEngine) warmup(ctx context.Context, pair entities.LanguagePair) error {
	payload, err := json.Marshal(warmupEvent{
		Source:     warmupSource,
		SourceLang: pair.Source.String(),
		TargetLang: pair.Target.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal warm-up event: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= e.config.WarmupAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(e.config.WarmupBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		_, lastErr = e.invoke(ctx, payload)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("⚠️ lambda warm-up attempt %d/%d failed (pair=%s): %v", attempt, e.config.WarmupAttempts, pair, lastErr)
	}
	return lastErr
}

// invoke calls the function synchronously and returns its payload.
func (e *LambdaEngine) invoke(ctx context.Context, payload []byte) ([]byte, error) {
	result, err := e.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(e.config.FunctionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke %s: %w", e.config.FunctionName, err)
	}
	if result.FunctionError != nil {
		return nil, fmt.Errorf("lambda error: %s", *result.FunctionError)
	}
	return result.Payload, nil
}

type lambdaSession struct {
	engine *LambdaEngine
	pair   entities.LanguagePair
}

func (s *lambdaSession) Pair() entities.LanguagePair { return s.pair }

func (s *lambdaSession) Translate(ctx context.Context, text string) (entities.TranslationResponse, error) {
	payload, err := json.Marshal(translatorRequest{
		Chunks:     [][]string{{text}},
		SourceLang: s.pair.Source.String(),
		TargetLang: s.pair.Target.String(),
	})
	if err != nil {
		return entities.TranslationResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	raw, err := s.engine.invoke(ctx, payload)
	if err != nil {
		return entities.TranslationResponse{}, err
	}

	var resp translatorResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.TranslationResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Error != "" {
		return entities.TranslationResponse{}, fmt.Errorf("translator error: %s", resp.Error)
	}
	if len(resp.Translations) == 0 || len(resp.Translations[0]) == 0 {
		return entities.TranslationResponse{}, fmt.Errorf("translator returned no translation")
	}

	return entities.TranslationResponse{
		SourceText: text,
		TargetText: resp.Translations[0][0],
	}, nil
}
