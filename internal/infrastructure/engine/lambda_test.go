package engine

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"golang.org/x/text/language"

	"transbot/internal/domain/entities"
	"transbot/internal/ports/output"
)

type fakeInvoker struct {
	mu      sync.Mutex
	inputs  []*lambda.InvokeInput
	respond func(payload []byte) (*lambda.InvokeOutput, error)
}

func (f *fakeInvoker) Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, params)
	f.mu.Unlock()
	return f.respond(params.Payload)
}

func (f *fakeInvoker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inputs)
}

func isWarmup(payload []byte) bool {
	var ev warmupEvent
	return json.Unmarshal(payload, &ev) == nil && ev.Source == warmupSource
}

func TestLambdaEngine_SessionAndTranslate(t *testing.T) {
	t.Parallel()

	client := &fakeInvoker{
		respond: func(payload []byte) (*lambda.InvokeOutput, error) {
			if isWarmup(payload) {
				return &lambda.InvokeOutput{StatusCode: 200, Payload: []byte(`{"status":"warm"}`)}, nil
			}
			var req translatorRequest
			if err := json.Unmarshal(payload, &req); err != nil {
				return nil, err
			}
			if req.SourceLang != "zh-Hant" || req.TargetLang != "ja" || req.Chunks[0][0] != "你好" {
				return &lambda.InvokeOutput{Payload: []byte(`{"error":"bad request"}`)}, nil
			}
			return &lambda.InvokeOutput{StatusCode: 200, Payload: []byte(`{"translations":[["こんにちは"]]}`)}, nil
		},
	}
	e := newLambdaEngine(client, LambdaConfig{FunctionName: "translator"})
	session := requestSession(t, context.Background(), e, language.Japanese)

	resp, err := session.Translate(context.Background(), "你好")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if resp.TargetText != "こんにちは" {
		t.Errorf("expected 'こんにちは', got %q", resp.TargetText)
	}
	if client.count() != 2 {
		t.Errorf("expected warm-up + translate calls, got %d", client.count())
	}
	if got := aws.ToString(client.inputs[0].FunctionName); got != "translator" {
		t.Errorf("unexpected function name %q", got)
	}
}

func TestLambdaEngine_TranslateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		output  *lambda.InvokeOutput
		err     error
		wantErr string
	}{
		{name: "invoke error", err: errors.New("network unavailable"), wantErr: "network unavailable"},
		{name: "function error", output: &lambda.InvokeOutput{FunctionError: aws.String("Unhandled")}, wantErr: "lambda error: Unhandled"},
		{name: "translator error", output: &lambda.InvokeOutput{Payload: []byte(`{"error":"unsupported pair"}`)}, wantErr: "translator error: unsupported pair"},
		{name: "bad payload", output: &lambda.InvokeOutput{Payload: []byte(`not json`)}, wantErr: "failed to parse response"},
		{name: "empty translations", output: &lambda.InvokeOutput{Payload: []byte(`{"translations":[]}`)}, wantErr: "no translation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeInvoker{
				respond: func(payload []byte) (*lambda.InvokeOutput, error) {
					return tt.output, tt.err
				},
			}
			e := newLambdaEngine(client, LambdaConfig{FunctionName: "translator"})
			session := &lambdaSession{engine: e, pair: entities.LanguagePair{Source: entities.SourceLanguage, Target: language.English}}

			_, err := session.Translate(context.Background(), "你好")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLambdaEngine_WarmupRetries(t *testing.T) {
	t.Parallel()

	calls := 0
	client := &fakeInvoker{
		respond: func(payload []byte) (*lambda.InvokeOutput, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("cold start")
			}
			return &lambda.InvokeOutput{StatusCode: 200}, nil
		},
	}
	e := newLambdaEngine(client, LambdaConfig{FunctionName: "translator", WarmupAttempts: 3, WarmupBackoff: time.Millisecond})
	session := requestSession(t, context.Background(), e, language.Korean)

	if session.Pair().Target != language.Korean {
		t.Errorf("unexpected pair %s", session.Pair())
	}
	if client.count() != 3 {
		t.Errorf("expected 3 warm-up attempts, got %d", client.count())
	}
}

func TestLambdaEngine_WarmupGivesUp(t *testing.T) {
	t.Parallel()

	client := &fakeInvoker{
		respond: func(payload []byte) (*lambda.InvokeOutput, error) {
			return nil, errors.New("unavailable")
		},
	}
	e := newLambdaEngine(client, LambdaConfig{FunctionName: "translator", WarmupAttempts: 2, WarmupBackoff: time.Millisecond})

	delivered := make(chan struct{}, 1)
	pair := entities.LanguagePair{Source: entities.SourceLanguage, Target: language.English}
	if err := e.RequestSession(context.Background(), pair, func(output.Session) { delivered <- struct{}{} }); err != nil {
		t.Fatalf("RequestSession failed: %v", err)
	}

	select {
	case <-delivered:
		t.Error("no session expected when warm-up keeps failing")
	case <-time.After(200 * time.Millisecond):
	}
	if client.count() != 2 {
		t.Errorf("expected 2 attempts, got %d", client.count())
	}
}

func TestNewLambdaEngine_RequiresFunction(t *testing.T) {
	t.Parallel()

	if _, err := NewLambdaEngine(context.Background(), LambdaConfig{}); err == nil {
		t.Error("expected error without function name")
	}
}
