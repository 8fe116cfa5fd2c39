package dto

type SynthesizeSpeechRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type SynthesizeSpeechResponse struct {
	AudioBase64 string `json:"audio_base64"`
	MimeType    string `json:"mime_type"`
}

type TranscribeSpeechRequest struct {
	AudioBase64 string `json:"audio_base64" validate:"required"`
}

type TranscribeSpeechResponse struct {
	Transcript string `json:"transcript"`
}
