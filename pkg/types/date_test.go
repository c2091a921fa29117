package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	var payload struct {
		ReleaseDate Date `json:"release_date"`
	}
	if err := json.Unmarshal([]byte(`{"release_date":"1895-12-28"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)
	if !payload.ReleaseDate.Equal(want) {
		t.Fatalf("expected %v got %v", want, payload.ReleaseDate.Time)
	}

	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"release_date":"1895-12-28"}` {
		t.Fatalf("unexpected encoding %s", out)
	}
}

func TestDateRejectsOtherLayouts(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"28.12.1895"`), &d); err == nil {
		t.Fatalf("expected layout error")
	}
	if err := json.Unmarshal([]byte(`18951228`), &d); err == nil {
		t.Fatalf("expected type error for numbers")
	}
}

func TestDateNullAndZero(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("null should decode: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date")
	}
	out, _ := json.Marshal(d)
	if string(out) != "null" {
		t.Fatalf("zero date should encode as null, got %s", out)
	}
}

func TestNewDateTruncates(t *testing.T) {
	d := NewDate(time.Date(2001, time.March, 4, 23, 59, 0, 0, time.UTC))
	if d.String() != "2001-03-04" {
		t.Fatalf("unexpected date %s", d)
	}
}
