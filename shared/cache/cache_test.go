package cache_test

import (
	"context"
	"errors"
	"tasklist/infras/otel"
	"tasklist/infras/otel/mocks"
	"tasklist/shared/cache"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordingOtel starts real spans and keeps them in a recorder.
type recordingOtel struct {
	provider *sdktrace.TracerProvider
}

func (o recordingOtel) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, otel.NewScope(span)
}

func (o recordingOtel) Shutdown(ctx context.Context) error {
	return o.provider.Shutdown(ctx)
}

func TestNew_WithoutClientAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil, mocks.NewOtel())

	assert.NoError(t, c.Save(ctx, "todos:list", []string{"a"}, 60))

	var value []string
	err := c.Get(ctx, "todos:list", &value)

	assert.True(t, errors.Is(err, cache.Nil))
	assert.Empty(t, value)
	assert.NoError(t, c.Delete(ctx, "todos:list"))
	assert.NoError(t, c.Close())
}

func TestDelete_FailureIsRecordedOnSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	ot := recordingOtel{provider: sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))}

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := cache.New(client, ot)

	t.Cleanup(func() { _ = c.Close() })

	err := c.Delete(context.Background(), "todos:list")
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "cache.Delete", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}
