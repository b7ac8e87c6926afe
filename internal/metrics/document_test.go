package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Sample(t *testing.T) {
	loadTime, _ := Lookup("full_load_time")
	score, _ := Lookup(PageSpeedScore)

	tests := []struct {
		name    string
		doc     Document
		metric  Descriptor
		want    float64
		wantNaN bool
		wantErr error
	}{
		{name: "float", doc: Document{"full_load_time": 1234.5}, metric: loadTime, want: 1234.5},
		{name: "int", doc: Document{"full_load_time": 1200}, metric: loadTime, want: 1200},
		{name: "int64", doc: Document{"full_load_time": int64(99)}, metric: loadTime, want: 99},
		{name: "json number", doc: Document{"full_load_time": json.Number("42")}, metric: loadTime, want: 42},
		{name: "string is non-numeric", doc: Document{"full_load_time": "n/a"}, metric: loadTime, wantNaN: true},
		{name: "nil is non-numeric", doc: Document{"full_load_time": nil}, metric: loadTime, wantNaN: true},
		{name: "missing field", doc: Document{"requests": 3}, metric: loadTime, wantErr: ErrMissingField},
		{
			name:   "page speed total score",
			doc:    Document{PageSpeedScore: map[string]any{"Total Score": 87.0, "Minify CSS": 100.0}},
			metric: score,
			want:   87,
		},
		{
			name:    "page speed without total",
			doc:     Document{PageSpeedScore: map[string]any{"Minify CSS": 100.0}},
			metric:  score,
			wantErr: ErrMissingField,
		},
		{
			name:    "page speed not an object",
			doc:     Document{PageSpeedScore: 87.0},
			metric:  score,
			wantErr: ErrMalformedField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.doc.Sample(tt.metric)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantNaN {
				assert.True(t, math.IsNaN(got), "got %v, want NaN", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
