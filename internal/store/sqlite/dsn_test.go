package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		dsn     string
		want    string
		wantErr bool
	}{
		{dsn: "sqlite://:memory:", want: ":memory:"},
		{dsn: "sqlite:///var/lib/comicstudio.db", want: "/var/lib/comicstudio.db"},
		{dsn: "sqlite://./studio.db", want: "./studio.db"},
		{dsn: "sqlite://studio.db", want: "./studio.db"},
		{dsn: "sqlite://my%20studio.db", want: "./my studio.db"},
		{dsn: "sqlite://studio.db?_pragma=foo", want: "./studio.db?_pragma=foo"},
		{dsn: "postgres://localhost/db", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
