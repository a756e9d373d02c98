package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/coil/internal/adapters/telemetry"
	"go.trai.ch/coil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_RecordsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := telemetry.NewOTelTracer(provider)

	_, span := tracer.Start(context.Background(), "loader.load")
	span.SetAttribute("coil.path", "main.ts")
	span.SetAttribute("count", 3)
	span.SetAttribute("hit", true)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("exts", []string{".ts", ".coffee"})
	span.SetAttribute("other", time.Second)
	span.RecordError(errors.New("boom"))
	span.RecordError(nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	got := ended[0]

	assert.Equal(t, "loader.load", got.Name())
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "boom", got.Status().Description)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("coil.path", "main.ts"),
		attribute.Int("count", 3),
		attribute.Bool("hit", true),
		attribute.Float64("ratio", 0.5),
		attribute.StringSlice("exts", []string{".ts", ".coffee"}),
		attribute.String("other", "1s"),
	}, got.Attributes())
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}

func TestFormatSpan(t *testing.T) {
	line := telemetry.FormatSpan("loader.compile", 1500*time.Microsecond, map[string]string{
		"coil.path":     "a.ts",
		"coil.compiler": "esbuild",
	}, false)
	assert.Equal(t, "trace loader.compile 1.5ms coil.compiler=esbuild coil.path=a.ts", line)

	failed := telemetry.FormatSpan("loader.load", 0, nil, true)
	assert.Equal(t, "trace loader.load 0s status=error", failed)
}

func TestSwitch_FollowsTraceSetting(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := mocks.NewMockSettings(ctrl)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		lines = append(lines, msg)
	}).AnyTimes()

	sw := telemetry.NewSwitch(settings, log)

	settings.EXPECT().Trace().Return(false)
	_, span := sw.Start(context.Background(), "quiet")
	span.End()
	assert.Empty(t, lines)

	settings.EXPECT().Trace().Return(true)
	_, span = sw.Start(context.Background(), "loud")
	span.SetAttribute("coil.cache", "hit")
	span.End()

	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "trace loud "))
	assert.True(t, strings.HasSuffix(lines[0], " coil.cache=hit"))

	require.NoError(t, sw.Shutdown(context.Background()))
}

func TestSwitch_ShutdownWithoutTracing(t *testing.T) {
	ctrl := gomock.NewController(t)
	sw := telemetry.NewSwitch(mocks.NewMockSettings(ctrl), mocks.NewMockLogger(ctrl))
	require.NoError(t, sw.Shutdown(context.Background()))
}
