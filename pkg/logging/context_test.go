package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestFromContextDefaults(t *testing.T) {
	if FromContext(nil) == nil { //nolint:staticcheck // nil context is part of the contract
		t.Fatal("FromContext(nil) should return the default logger")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext on empty context should return the default logger")
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), &logger)
	Ctx(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestContextFieldHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ctx := WithLogger(context.Background(), &logger)

	ctx = WithSite(ctx, "MEL01")
	ctx = WithScenario(ctx, 42)
	ctx = WithEndpoint(ctx, "/segments")
	Ctx(ctx).Info().Msg("fetch")

	out := buf.String()
	for _, want := range []string{`"site":"MEL01"`, `"scenario_id":42`, `"endpoint":"/segments"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got %q", want, out)
		}
	}
}
