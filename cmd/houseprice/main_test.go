package main

import "testing"

func TestParsePredictSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    map[string]string
		wantErr bool
	}{
		{
			name: "three pairs",
			spec: "GrLivArea=1800,BedroomAbvGr=3,FullBath=2",
			want: map[string]string{
				"GrLivArea":    "1800",
				"BedroomAbvGr": "3",
				"FullBath":     "2",
			},
		},
		{
			name: "spaces around pairs",
			spec: " GrLivArea = 1800 , FullBath = 2 ",
			want: map[string]string{
				"GrLivArea": "1800",
				"FullBath":  "2",
			},
		},
		{
			name:    "missing equals",
			spec:    "GrLivArea",
			wantErr: true,
		},
		{
			name:    "empty spec",
			spec:    " , ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePredictSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePredictSpec failed: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("got %d pairs, expected %d", len(got), len(tt.want))
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("got[%q] = %q, expected %q", k, got[k], v)
				}
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.891, "1,234,567.89"},
		{-45000, "-45,000.00"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.value); got != tt.expected {
			t.Errorf("formatPrice(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}
