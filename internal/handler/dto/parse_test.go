package dto

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"single", "5", []int64{5}, false},
		{"multiple", "1,2,3", []int64{1, 2, 3}, false},
		{"spaces", " 1 , 2 ", []int64{1, 2}, false},
		{"trailing_comma", "1,2,", nil, true},
		{"non_numeric", "1,abc", nil, true},
		{"negative", "-1", nil, true},
		{"zero", "0", nil, true},
		{"float", "1.5", nil, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseIDList(test.input)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidIDList) {
					t.Fatalf("ParseIDList(%q) error = %v, want ErrInvalidIDList", test.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseIDList(%q) unexpected error: %v", test.input, err)
			}
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("ParseIDList(%q) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestParseBoolFlag(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"0", false},
		{"false", false},
		{"", false},
		{"yes", false},
	}

	for _, test := range tests {
		if got := ParseBoolFlag(test.input); got != test.want {
			t.Errorf("ParseBoolFlag(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}
