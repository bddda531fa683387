package record

import (
	"errors"
	"reflect"
	"testing"

	"github.com/julianstephens/daybook/internal/dates"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr error
	}{
		{
			name: "done task",
			line: "05.03.2024 + Buy milk\n",
			want: Record{Date: dates.Date{Day: 5, Month: 3, Year: 2024}, Done: true, Subject: "Buy milk"},
		},
		{
			name: "undone task without newline",
			line: "05.03.2024 - Call mom",
			want: Record{Date: dates.Date{Day: 5, Month: 3, Year: 2024}, Subject: "Call mom"},
		},
		{
			name: "crlf line ending",
			line: "05.03.2024 - Call mom\r\n",
			want: Record{Date: dates.Date{Day: 5, Month: 3, Year: 2024}, Subject: "Call mom"},
		},
		{
			name: "subject keeps inner spacing",
			line: "05.03.2024 -  indented  text",
			want: Record{Date: dates.Date{Day: 5, Month: 3, Year: 2024}, Subject: " indented  text"},
		},
		{name: "bad status", line: "05.03.2024 * Buy milk", wantErr: ErrBadStatus},
		{name: "missing subject", line: "05.03.2024 + ", wantErr: ErrMalformedLine},
		{name: "too short", line: "05.03.2024", wantErr: ErrMalformedLine},
		{name: "bad separator", line: "05.03.2024_+_Buy milk", wantErr: ErrMalformedLine},
		{name: "invalid date", line: "32.03.2024 + Buy milk", wantErr: dates.ErrInvalidDate},
		{name: "unpadded date breaks columns", line: "5.3.2024 + Buy milk", wantErr: ErrMalformedLine},
		{name: "signed day", line: "+5.03.2024 + Buy milk", wantErr: dates.ErrInvalidDate},
		{name: "space padded day", line: " 5.03.2024 + Buy milk", wantErr: dates.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode(%q) error = %v, want %v", tt.line, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q) unexpected error: %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	r := Record{Date: dates.Date{Day: 5, Month: 3, Year: 2024}, Done: true, Subject: "Buy milk"}
	if got := Encode(r); got != "05.03.2024 + Buy milk\n" {
		t.Errorf("Encode() = %q", got)
	}
	r.Done = false
	if got := Encode(r); got != "05.03.2024 - Buy milk\n" {
		t.Errorf("Encode() = %q", got)
	}
}

func TestDecodeAllReportsLineNumber(t *testing.T) {
	lines := []string{
		"05.03.2024 + Buy milk\n",
		"05.03.2024 ? Broken\n",
	}
	_, err := DecodeAll(lines)
	if !errors.Is(err, ErrBadStatus) {
		t.Fatalf("DecodeAll error = %v, want ErrBadStatus", err)
	}
	if got := err.Error(); got[:7] != "line 2:" {
		t.Errorf("error %q does not name line 2", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	lines := []string{
		"05.03.2024 + Buy milk\n",
		"05.03.2024 - Write report\n",
	}
	recs, err := DecodeAll(lines)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, r := range recs {
		got = append(got, Encode(r))
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("Encode(DecodeAll(lines)) = %q, want %q", got, lines)
	}
}

func TestLeadingDate(t *testing.T) {
	d, err := LeadingDate("05.03.2024 garbage after the date")
	if err != nil {
		t.Fatalf("LeadingDate failed: %v", err)
	}
	if d.String() != "05.03.2024" {
		t.Errorf("LeadingDate = %s", d)
	}
	if _, err := LeadingDate("05.03"); !errors.Is(err, ErrMalformedLine) {
		t.Errorf("short line error = %v", err)
	}
	if _, err := LeadingDate("99.99.9999 + x"); !errors.Is(err, dates.ErrInvalidDate) {
		t.Errorf("invalid date error = %v", err)
	}
}
