package archive

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

func TestObjectName(t *testing.T) {
	from := civil.Date{Year: 2024, Month: time.January, Day: 1}
	to := civil.Date{Year: 2024, Month: time.January, Day: 31}

	got := ObjectName("2900000000", from, to, "run-1")
	want := "statements/2900000000/2024-01-01_2024-01-31_run-1.json"
	if got != want {
		t.Errorf("ObjectName = %q, want %q", got, want)
	}
}

func TestSplitURI(t *testing.T) {
	tests := []struct {
		uri        string
		wantBucket string
		wantObject string
		wantErr    bool
	}{
		{"gs://bucket/statements/a/b.json", "bucket", "statements/a/b.json", false},
		{"gs://bucket/", "", "", true},
		{"gs://bucket", "", "", true},
		{"https://bucket/object", "", "", true},
		{"", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			bucket, object, err := splitURI(tt.uri)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if bucket != tt.wantBucket || object != tt.wantObject {
				t.Errorf("got (%q, %q), want (%q, %q)", bucket, object, tt.wantBucket, tt.wantObject)
			}
		})
	}
}
