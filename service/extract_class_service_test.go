package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ludo-technologies/godscn/domain"
	"github.com/ludo-technologies/godscn/internal/source"
	"github.com/ludo-technologies/godscn/internal/telemetry"
)

func newExtractRequest(class string, paths ...string) domain.ExtractClassRequest {
	req := *domain.DefaultExtractClassRequest()
	req.Analysis = newTestRequest(paths...)
	req.ClassName = class
	return req
}

func TestExtractClassService_Apply(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})

	resp, err := NewExtractClassService(nil, nil).Apply(context.Background(), newExtractRequest("Test", paths...))
	require.NoError(t, err)

	assert.Equal(t, "Test", resp.SourceClass)
	assert.Equal(t, "TestProduct", resp.TargetClass)
	assert.Equal(t, "testProduct", resp.DelegateField)
	assert.Equal(t, []string{"f3", "f4"}, resp.MovedFields)
	assert.Equal(t, []string{"mB1", "mB2", "mB3"}, resp.MovedMethods)
	assert.NotEmpty(t, resp.TransactionID)
	assert.GreaterOrEqual(t, resp.Score, 0.5)

	classes, ok := resp.Classes.([]*source.Class)
	require.True(t, ok)
	require.Len(t, classes, 3)
	assert.Equal(t, []string{"Test", "Tiny", "TestProduct"}, []string{classes[0].Name, classes[1].Name, classes[2].Name})
	assert.NotNil(t, classes[0].Member("testProduct"))
	assert.Nil(t, classes[0].Member("mB1"))
	assert.NotNil(t, classes[2].Member("mB1"))
}

func TestExtractClassService_TargetNameAndRank(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})
	req := newExtractRequest("Test", paths...)
	req.TargetName = "Coordinates"

	resp, err := NewExtractClassService(nil, nil).Apply(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Coordinates", resp.TargetClass)
	assert.Equal(t, "coordinates", resp.DelegateField)
}

func TestExtractClassService_InvalidSelections(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})

	tests := []struct {
		name      string
		class     string
		candidate int
		message   string
	}{
		{"missing class name", "", 1, "class name is required"},
		{"unknown class", "Nope", 1, "class Nope not found"},
		{"class without candidates", "Tiny", 1, "no Extract Class candidates"},
		{"rank out of range", "Test", 99, "candidate 99 not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newExtractRequest(tt.class, paths...)
			req.Candidate = tt.candidate

			resp, err := NewExtractClassService(nil, nil).Apply(context.Background(), req)
			assert.Nil(t, resp)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.DomainError{Code: domain.ErrCodeInvalidInput})
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestExtractClassService_NamingConflict(t *testing.T) {
	_, paths := writeProject(t, map[string]string{
		"model.yaml": twoGroupModel,
		"taken.yaml": "classes:\n  - name: TestProduct\n    members: []\n",
	})
	req := newExtractRequest("Test", paths...)
	req.Analysis.MaxNameAttempts = 1

	resp, err := NewExtractClassService(nil, nil).Apply(context.Background(), req)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrNamingConflict)

	req.Analysis.MaxNameAttempts = 5
	resp, err = NewExtractClassService(nil, nil).Apply(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "TestProduct2", resp.TargetClass)
}

func TestExtractClassService_Cancelled(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractClassService(nil, nil).Apply(ctx, newExtractRequest("Test", paths...))
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestExtractClassService_ReportsApplied(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})
	core, logs := observer.New(zap.InfoLevel)
	collector := telemetry.NewCollector(&telemetry.Options{Enabled: true, InitialDelay: time.Hour, Interval: time.Hour}, zap.New(core))

	detector := NewGodClassService()
	detector.SetCollector(collector)

	_, err := NewExtractClassService(detector, nil).Apply(context.Background(), newExtractRequest("Test", paths...))
	require.NoError(t, err)

	applied := logs.FilterField(zap.String("event", telemetry.EventExtractClassApplied))
	require.Equal(t, 1, applied.Len())
	assert.Equal(t, 2.0, applied.All()[0].ContextMap()["extracted_fields"])
	assert.Equal(t, 3.0, applied.All()[0].ContextMap()["extracted_methods"])
}

func TestWriteModel(t *testing.T) {
	_, paths := writeProject(t, map[string]string{"model.yaml": twoGroupModel})
	resp, err := NewExtractClassService(nil, nil).Apply(context.Background(), newExtractRequest("Test", paths...))
	require.NoError(t, err)

	for _, format := range []domain.OutputFormat{domain.OutputFormatYAML, domain.OutputFormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteModel(&buf, resp, format))

			model, err := source.DecodeModel("out."+string(format), buf.Bytes())
			require.NoError(t, err)
			require.Len(t, model.Classes, 3)
			assert.Equal(t, "TestProduct", model.Classes[2].Name)
		})
	}

	var buf bytes.Buffer
	err = WriteModel(&buf, resp, domain.OutputFormatCSV)
	assert.ErrorIs(t, err, domain.DomainError{Code: domain.ErrCodeUnsupportedFormat})

	err = WriteModel(&buf, &domain.ExtractClassResponse{}, domain.OutputFormatYAML)
	assert.Error(t, err)
}
