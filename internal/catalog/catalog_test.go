package catalog

import "testing"

func TestLookup(t *testing.T) {
	p, ok := Lookup("term-life")
	if !ok {
		t.Fatal("term-life should exist")
	}
	if p.Category != CategoryLife {
		t.Errorf("term-life category = %q, want life", p.Category)
	}
	if p.FlyerCount != 30 {
		t.Errorf("flyer count = %d, want 30", p.FlyerCount)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("boat-insurance"); ok {
		t.Error("unknown product should not resolve")
	}
	if Exists("") {
		t.Error("empty id should not resolve")
	}
}

func TestByCategory(t *testing.T) {
	health := ByCategory(CategoryHealth)
	life := ByCategory(CategoryLife)
	if len(health) != 12 {
		t.Errorf("health products = %d, want 12", len(health))
	}
	if len(life) != 8 {
		t.Errorf("life products = %d, want 8", len(life))
	}
	if len(health)+len(life) != len(All()) {
		t.Error("categories should partition the catalog")
	}
}

func TestAllIsCopy(t *testing.T) {
	a := All()
	a[0].Name = "mutated"
	b := All()
	if b[0].Name == "mutated" {
		t.Error("All must return a copy")
	}
}
