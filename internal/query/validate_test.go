package query

import "testing"

func validParams() Params {
	return Params{
		Date:     "2026-05-01",
		StartLat: "42.9647",
		StartLon: "-81.2897",
		EndLat:   "43.0556",
		EndLon:   "-81.0823",
	}
}

func TestValidateAccepts(t *testing.T) {
	v, err := Validate(validParams())
	if err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}
	if v.StartLat != 42.9647 || v.EndLon != -81.0823 {
		t.Errorf("parsed coordinates wrong: %+v", v)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"empty date", func(p *Params) { p.Date = "" }},
		{"whitespace date", func(p *Params) { p.Date = "   " }},
		{"non-numeric lat", func(p *Params) { p.StartLat = "forty-two" }},
		{"empty lon", func(p *Params) { p.EndLon = "" }},
		{"NaN", func(p *Params) { p.EndLat = "NaN" }},
		{"infinity", func(p *Params) { p.StartLon = "+Inf" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			if _, err := Validate(p); err == nil {
				t.Errorf("expected rejection")
			}
		})
	}
}
