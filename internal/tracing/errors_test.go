package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestRecordError_NilSafe(t *testing.T) {
	span := trace.SpanFromContext(context.Background())

	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("x"), ErrorTypeInternal)
		RecordError(span, nil, ErrorTypeInternal)
		RecordError(span, errors.New("x"), ErrorTypeExternal)
	})
}

func TestRecordErrorWithInfo_NilSafe(t *testing.T) {
	span := trace.SpanFromContext(context.Background())

	assert.NotPanics(t, func() {
		RecordErrorWithInfo(nil, errors.New("x"), ErrorTypeTimeout)
		RecordErrorWithInfo(span, nil, ErrorTypeValidation)
		RecordErrorWithInfo(span, errors.New("x"), ErrorTypeValidation,
			attribute.String("stage", "extract_entities"))
	})
}
