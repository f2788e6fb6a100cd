package remote

import (
	"reflect"
	"testing"
)

func TestUnwrapBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		response map[string]any
		want     map[string]any
	}{
		{
			name:     "nil response",
			response: nil,
			want:     map[string]any{},
		},
		{
			name:     "missing body",
			response: map[string]any{"statusCode": float64(200)},
			want:     map[string]any{},
		},
		{
			name:     "body already a mapping",
			response: map[string]any{"body": map[string]any{"ticket_id": "T-1"}},
			want:     map[string]any{"ticket_id": "T-1"},
		},
		{
			name:     "body as encoded string",
			response: map[string]any{"body": `{"category":"technical"}`},
			want:     map[string]any{"category": "technical"},
		},
		{
			name:     "malformed encoded body",
			response: map[string]any{"body": `{"category":`},
			want:     map[string]any{},
		},
		{
			name:     "encoded null body",
			response: map[string]any{"body": `null`},
			want:     map[string]any{},
		},
		{
			name:     "body of unexpected type",
			response: map[string]any{"body": []any{"not", "a", "map"}},
			want:     map[string]any{},
		},
		{
			name:     "numeric body",
			response: map[string]any{"body": float64(42)},
			want:     map[string]any{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := UnwrapBody(tt.response)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("UnwrapBody() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
