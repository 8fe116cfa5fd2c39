package embedding

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		input   []float32
		dims    int
		wantErr bool
	}{
		{
			name:  "exact length unchanged",
			input: []float32{0.1, 0.2, 0.3},
			dims:  3,
		},
		{
			name:  "short input padded with zeros",
			input: []float32{0.5},
			dims:  4,
		},
		{
			name:  "long input truncated",
			input: []float32{1, 2, 3, 4, 5},
			dims:  2,
		},
		{
			name:    "NaN rejected",
			input:   []float32{0.1, float32(math.NaN())},
			dims:    3,
			wantErr: true,
		},
		{
			name:    "Inf rejected",
			input:   []float32{float32(math.Inf(1))},
			dims:    3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input, tt.dims)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.dims {
				t.Fatalf("got length %d, want %d", len(got), tt.dims)
			}
			for i, v := range got {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("element %d is not finite: %v", i, v)
				}
			}
		})
	}
}

func TestNormalizePreservesPrefix(t *testing.T) {
	input := []float32{0.1, 0.2}
	got, err := Normalize(input, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 0.1 || got[1] != 0.2 {
		t.Fatalf("prefix changed: %v", got[:2])
	}
	if got[2] != 0 || got[3] != 0 {
		t.Fatalf("padding is not zero: %v", got[2:])
	}
}
