package service

import (
	"context"
	"errors"
	"testing"

	"device-support-be/internal/dto"
	"device-support-be/internal/pkg/apperrors"
)

func TestSpeechServiceUnconfigured(t *testing.T) {
	svc := NewSpeechService(nil, nil)

	_, err := svc.Synthesize(context.Background(), &dto.SynthesizeSpeechRequest{Text: "hello"})
	if !errors.Is(err, &apperrors.ConfigurationError{}) {
		t.Fatalf("got %v, want configuration error", err)
	}

	_, err = svc.Transcribe(context.Background(), &dto.TranscribeSpeechRequest{AudioBase64: "aGVsbG8="})
	if !errors.Is(err, &apperrors.ConfigurationError{}) {
		t.Fatalf("got %v, want configuration error", err)
	}
}
