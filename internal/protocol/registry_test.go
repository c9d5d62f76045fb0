package protocol

import "testing"

func TestName_WellKnown(t *testing.T) {
	r := NewRegistry(nil)

	cases := []struct {
		num  int
		want string
	}{
		{1, "icmp"},
		{6, "tcp"},
		{17, "udp"},
	}
	for _, c := range cases {
		if got := r.Name(c.num); got != c.want {
			t.Errorf("Name(%d) = %q, want %q", c.num, got, c.want)
		}
	}
}

func TestName_UnknownNumberIsDecimalString(t *testing.T) {
	r := NewRegistry(nil)

	if got := r.Name(99); got != "99" {
		t.Errorf("Name(99) = %q, want \"99\"", got)
	}
	if got := r.Name(0); got != "0" {
		t.Errorf("Name(0) = %q, want \"0\"", got)
	}
}

func TestName_ExtraEntriesMergedAndNormalized(t *testing.T) {
	r := NewRegistry(map[int]string{47: " GRE ", 6: "tcp"})

	if got := r.Name(47); got != "gre" {
		t.Errorf("Name(47) = %q, want \"gre\"", got)
	}
	if got := r.Name(17); got != "udp" {
		t.Errorf("Name(17) = %q, want \"udp\" (defaults must survive the merge)", got)
	}
}
