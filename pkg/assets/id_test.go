package assets

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ID
		wantErr bool
	}{
		{"zero", "000-000", ID{0, 0}, false},
		{"typical", "000-015", ID{0, 15}, false},
		{"large", "123-999", ID{123, 999}, false},
		{"missing hyphen", "000015", ID{}, true},
		{"short component", "00-015", ID{}, true},
		{"long component", "0000-015", ID{}, true},
		{"letters", "abc-def", ID{}, true},
		{"empty", "", ID{}, true},
		{"trailing garbage", "000-0155", ID{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIDString(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{ID{0, 0}, "000-000"},
		{ID{0, 15}, "000-015"},
		{ID{12, 345}, "012-345"},
		{ID{999, 999}, "999-999"},
	}

	for _, tt := range tests {
		if got := tt.id.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestIDRoundTrip(t *testing.T) {
	for _, s := range []string{"000-000", "001-000", "042-780", "999-999"} {
		id, err := ParseID(s)
		if err != nil {
			t.Fatalf("ParseID(%q) failed: %v", s, err)
		}
		if id.String() != s {
			t.Errorf("round trip %q -> %q", s, id.String())
		}
	}
}

func TestIDCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want int
	}{
		{"equal", ID{1, 2}, ID{1, 2}, 0},
		{"minor less", ID{0, 1}, ID{0, 2}, -1},
		{"minor greater", ID{0, 2}, ID{0, 1}, 1},
		{"major wins over minor", ID{1, 0}, ID{0, 999}, 1},
		{"major less", ID{0, 999}, ID{1, 0}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestIDNext(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want ID
	}{
		{"simple", ID{0, 0}, ID{0, 1}},
		{"carry", ID{0, 999}, ID{1, 0}},
		{"after carry", ID{1, 0}, ID{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.Next(); got != tt.want {
				t.Errorf("%v.Next() = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}
