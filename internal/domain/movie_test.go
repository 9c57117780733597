package domain

import (
	"reflect"
	"testing"
)

func TestCoerceGenreID(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   int
		wantOK bool
	}{
		{"int", 28, 28, true},
		{"int64", int64(12), 12, true},
		{"float", float64(16), 16, true},
		{"numeric string", "878", 878, true},
		{"padded string", " 35 ", 35, true},
		{"garbage string", "drama", 0, false},
		{"nil-ish", struct{}{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceGenreID(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CoerceGenreID(%v) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCoerceGenreIDs_DropsUnparseable(t *testing.T) {
	ids, dropped := CoerceGenreIDs([]any{28, "12", float64(16), "oops", nil})
	if !reflect.DeepEqual(ids, []int{28, 12, 16}) {
		t.Errorf("ids = %v, want [28 12 16]", ids)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
}

func TestCoerceID(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   string
		wantOK bool
	}{
		{"string", "tt0137523", "tt0137523", true},
		{"number", float64(550), "550", true},
		{"int", 550, "550", true},
		{"empty string", "", "", false},
		{"unsupported", true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceID(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CoerceID(%v) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestProject_BuildsPosterURL(t *testing.T) {
	p := Projector{PosterBaseURL: "https://image.tmdb.org/t/p/w500"}

	s := p.Project(Movie{ID: "550", Title: "Fight Club", PosterPath: "/poster.jpg"})
	if s.PosterURL == nil {
		t.Fatal("expected poster URL, got nil")
	}
	if *s.PosterURL != "https://image.tmdb.org/t/p/w500/poster.jpg" {
		t.Errorf("poster URL = %q", *s.PosterURL)
	}
}

func TestProject_NoPosterPath(t *testing.T) {
	p := Projector{PosterBaseURL: "https://image.tmdb.org/t/p/w500"}

	s := p.Project(Movie{ID: "550"})
	if s.PosterURL != nil {
		t.Errorf("expected nil poster URL, got %q", *s.PosterURL)
	}
}

func TestProject_DedupesGenreIDs(t *testing.T) {
	p := Projector{}

	s := p.Project(Movie{ID: "1", GenreIDs: []int{28, 12, 28, 12, 16}})
	if !reflect.DeepEqual(s.GenreIDs, []int{28, 12, 16}) {
		t.Errorf("genre ids = %v, want [28 12 16]", s.GenreIDs)
	}
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	p := Projector{}

	out := p.ProjectAll([]Movie{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	if len(out) != 3 || out[0].MovieID != "a" || out[2].MovieID != "c" {
		t.Errorf("unexpected projection order: %+v", out)
	}
}

func TestIsAnimation(t *testing.T) {
	if !(Movie{GenreIDs: []int{16, 35}}).IsAnimation() {
		t.Error("expected animation")
	}
	if (Movie{GenreIDs: []int{35}}).IsAnimation() {
		t.Error("expected not animation")
	}
}

func TestIsRestrictedCertification(t *testing.T) {
	for _, cert := range []string{"18", "19", "19+", "청소년관람불가"} {
		if !IsRestrictedCertification(cert) {
			t.Errorf("expected %q restricted", cert)
		}
	}
	if IsRestrictedCertification("12") {
		t.Error("expected 12 not restricted")
	}
}

func TestGenreOptions_ReturnsCopy(t *testing.T) {
	a := GenreOptions()
	a[0].Name = "mutated"
	b := GenreOptions()
	if b[0].Name == "mutated" {
		t.Error("GenreOptions leaked internal slice")
	}
	if len(b) != 19 {
		t.Errorf("taxonomy size = %d, want 19", len(b))
	}
}
