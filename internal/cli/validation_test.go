package cli

import "testing"

func TestParseServiceID(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1", want: 1},
		{in: " 42 ", want: 42},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "SVC-001", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseServiceID(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseServiceID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseServiceID(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	got, err := parseMetadata([]string{"team=web", "env=prod", "note=a=b"})
	if err != nil {
		t.Fatalf("parseMetadata failed: %v", err)
	}
	if got["team"] != "web" || got["env"] != "prod" || got["note"] != "a=b" {
		t.Errorf("got %v", got)
	}

	if got, err := parseMetadata(nil); err != nil || got != nil {
		t.Errorf("parseMetadata(nil) = %v, %v", got, err)
	}

	if _, err := parseMetadata([]string{"novalue"}); err == nil {
		t.Error("expected error for pair without '='")
	}
}
