package store

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		name    string
		in      interface{}
		want    os.FileMode
		wantErr bool
	}{
		{name: "octal string", in: "0750", want: 0750},
		{name: "octal string with prefix", in: "0o640", want: 0640},
		{name: "decimal string", in: "438", want: 0666},
		{name: "float", in: float64(511), want: 0777},
		{name: "json number", in: json.Number("448"), want: 0700},
		{name: "int", in: 0644, want: 0644},
		{name: "nil", in: nil, wantErr: true},
		{name: "garbage string", in: "pony", wantErr: true},
		{name: "negative string", in: "-1", wantErr: true},
		{name: "fractional", in: float64(1.5), wantErr: true},
		{name: "out of range", in: 010000, wantErr: true},
		{name: "wrong type", in: true, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMode(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("got mode %#o, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %#o, want %#o", got, tc.want)
			}
		})
	}
}

func TestInts(t *testing.T) {
	got, err := Ints([]interface{}{float64(8), json.Number("256")})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{8, 256}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err = Ints("8,256"); err == nil {
		t.Error("got no error for a non-list value")
	}
	if _, err = Ints([]interface{}{float64(2.5)}); err == nil {
		t.Error("got no error for a fractional element")
	}
}
