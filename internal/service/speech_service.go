package service

import (
	"context"
	"encoding/base64"

	"device-support-be/internal/dto"
	"device-support-be/internal/pkg/apperrors"
	"device-support-be/pkg/speech"
)

type ISpeechService interface {
	Synthesize(ctx context.Context, request *dto.SynthesizeSpeechRequest) (*dto.SynthesizeSpeechResponse, error)
	Transcribe(ctx context.Context, request *dto.TranscribeSpeechRequest) (*dto.TranscribeSpeechResponse, error)
}

type speechService struct {
	synthesizer *speech.Synthesizer
	transcriber *speech.Transcriber
}

func NewSpeechService(synthesizer *speech.Synthesizer, transcriber *speech.Transcriber) ISpeechService {
	return &speechService{
		synthesizer: synthesizer,
		transcriber: transcriber,
	}
}

func (s *speechService) Synthesize(ctx context.Context, request *dto.SynthesizeSpeechRequest) (*dto.SynthesizeSpeechResponse, error) {
	if s.synthesizer == nil {
		return nil, apperrors.NewConfigurationError("speech synthesis is not configured")
	}

	audio, err := s.synthesizer.Synthesize(ctx, request.Text)
	if err != nil {
		return nil, apperrors.NewUpstreamServiceError("text-to-speech", err.Error())
	}

	return &dto.SynthesizeSpeechResponse{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		MimeType:    "audio/mpeg",
	}, nil
}

func (s *speechService) Transcribe(ctx context.Context, request *dto.TranscribeSpeechRequest) (*dto.TranscribeSpeechResponse, error) {
	if s.transcriber == nil {
		return nil, apperrors.NewConfigurationError("speech transcription is not configured")
	}

	audio, err := base64.StdEncoding.DecodeString(request.AudioBase64)
	if err != nil || len(audio) == 0 {
		return nil, apperrors.NewValidationError("audio_base64", "invalid base64 audio data")
	}

	transcript, err := s.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return nil, apperrors.NewUpstreamServiceError("speech-to-text", err.Error())
	}

	return &dto.TranscribeSpeechResponse{Transcript: transcript}, nil
}
