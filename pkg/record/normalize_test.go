package record

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	want := UserRecord{ID: "1", FullName: "Ana", Email: "a@x.com", Phone: "+1"}

	tests := []struct {
		name string
		body string
		want UserRecord
	}{
		{
			name: "enveloped",
			body: `{"data":{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"},"success":true}`,
			want: want,
		},
		{
			name: "bare",
			body: `{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"}`,
			want: want,
		},
		{
			name: "integer id",
			body: `{"data":{"id":1,"fullName":"Ana","email":"a@x.com","phone":"+1"}}`,
			want: want,
		},
		{
			name: "null data falls back to body",
			body: `{"data":null,"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"}`,
			want: want,
		},
		{
			name: "large integer id keeps its digits",
			body: `{"id":9007199254740993,"fullName":"Ana","email":"a@x.com","phone":"+1"}`,
			want: UserRecord{ID: "9007199254740993", FullName: "Ana", Email: "a@x.com", Phone: "+1"},
		},
		{
			name: "integral float id is canonical",
			body: `{"data":{"id":1.0,"fullName":"Ana","email":"a@x.com","phone":"+1"}}`,
			want: want,
		},
		{
			name: "exponent id is canonical",
			body: `{"id":1e2,"fullName":"Ana","email":"a@x.com","phone":"+1"}`,
			want: UserRecord{ID: "100", FullName: "Ana", Email: "a@x.com", Phone: "+1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize([]byte(tt.body))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	bare := `{"id":"7","fullName":"Luis","email":"l@x.com","phone":"+52"}`

	wrapped, err := Normalize([]byte(`{"data":` + bare + `}`))
	if err != nil {
		t.Fatalf("Normalize(wrapped) error = %v", err)
	}
	plain, err := Normalize([]byte(bare))
	if err != nil {
		t.Fatalf("Normalize(bare) error = %v", err)
	}
	if wrapped != plain {
		t.Errorf("Normalize(wrapped) = %+v, Normalize(bare) = %+v", wrapped, plain)
	}
	if plain.ID != "7" || plain.FullName != "Luis" {
		t.Errorf("unexpected record %+v", plain)
	}
}

func TestNormalize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"empty object", `{}`},
		{"missing id", `{"fullName":"Ana","email":"a@x.com","phone":"+1"}`},
		{"missing phone in envelope", `{"data":{"id":"1","fullName":"Ana","email":"a@x.com"}}`},
		{"empty full name", `{"id":"1","fullName":"","email":"a@x.com","phone":"+1"}`},
		{"empty string id", `{"id":"","fullName":"Ana","email":"a@x.com","phone":"+1"}`},
		{"fractional id", `{"id":1.5,"fullName":"Ana","email":"a@x.com","phone":"+1"}`},
		{"boolean id", `{"id":true,"fullName":"Ana","email":"a@x.com","phone":"+1"}`},
		{"array", `[{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"}]`},
		{"null data and nothing else", `{"data":null,"success":false}`},
		{"double envelope", `{"data":{"data":{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.body))
			var mErr *MalformedResponseError
			if !errors.As(err, &mErr) {
				t.Fatalf("Normalize() error = %v, want *MalformedResponseError", err)
			}
			if mErr.Index != -1 {
				t.Errorf("Index = %d, want -1", mErr.Index)
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	body := `{"data":[
		{"id":1,"fullName":"Ana","email":"a@x.com","phone":"+1"},
		{"id":"b","fullName":"Beto","email":"b@x.com","phone":"+2"}
	],"status":"OK","success":true,"message":"Users retrieved successfully"}`

	got, err := NormalizeList([]byte(body))
	if err != nil {
		t.Fatalf("NormalizeList() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "b" {
		t.Errorf("ids = %q, %q", got[0].ID, got[1].ID)
	}
}

func TestNormalizeList_EmptyAndBare(t *testing.T) {
	got, err := NormalizeList([]byte(`{"data":[]}`))
	if err != nil {
		t.Fatalf("NormalizeList(empty) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}

	got, err = NormalizeList([]byte(`[{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"}]`))
	if err != nil {
		t.Fatalf("NormalizeList(bare) error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestNormalizeList_Malformed(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIndex int
	}{
		{"missing data", `{"success":true}`, -1},
		{"null data", `{"data":null}`, -1},
		{"object data", `{"data":{"id":"1"}}`, -1},
		{"scalar", `42`, -1},
		{"bad second item", `{"data":[{"id":"1","fullName":"Ana","email":"a@x.com","phone":"+1"},{"id":"2"}]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeList([]byte(tt.body))
			var mErr *MalformedResponseError
			if !errors.As(err, &mErr) {
				t.Fatalf("NormalizeList() error = %v, want *MalformedResponseError", err)
			}
			if mErr.Index != tt.wantIndex {
				t.Errorf("Index = %d, want %d", mErr.Index, tt.wantIndex)
			}
		})
	}
}
