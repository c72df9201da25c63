package domain

import "testing"

func TestClassifyRoomTypeFixedClasses(t *testing.T) {
	cases := []struct {
		label    string
		class    RoomTypeClass
		adults   int
		children int
	}{
		{"1 persoana + camera dubla", RoomSinglePersonDouble, 1, 0},
		{"2 adulti + 1 copil", RoomFamily, 2, 1},
		{"Camera tripla (3 persoane)", RoomTripleFixed, 3, 0},
		{"Camera tripla - trei persoane", RoomTripleFixed, 3, 0},
		{"Camera single", RoomSingle, 1, 0},
		{"Camera singulara", RoomSingle, 1, 0},
	}

	for _, tc := range cases {
		occ := ClassifyRoomType(tc.label)
		if occ.Class != tc.class {
			t.Errorf("%q: class = %s, want %s", tc.label, occ.Class, tc.class)
		}
		if occ.Flexible {
			t.Errorf("%q: should be a fixed class", tc.label)
		}
		if occ.Adults != tc.adults || occ.Children != tc.children {
			t.Errorf("%q: split = %d/%d, want %d/%d", tc.label, occ.Adults, occ.Children, tc.adults, tc.children)
		}
		if occ.Adults+occ.Children != occ.Total {
			t.Errorf("%q: split does not add up to total %d", tc.label, occ.Total)
		}
		if !occ.Matches(tc.adults, tc.children) {
			t.Errorf("%q: canonical split rejected", tc.label)
		}
		if occ.Matches(tc.adults+1, tc.children) {
			t.Errorf("%q: wrong total accepted", tc.label)
		}
	}
}

func TestClassifyRoomTypeFlexibleClasses(t *testing.T) {
	dbl := ClassifyRoomType("Camera dubla")
	if dbl.Class != RoomDoubleFlexible || !dbl.Flexible || dbl.Total != 2 {
		t.Fatalf("camera dubla: got %+v", dbl)
	}
	if !dbl.Matches(2, 0) || !dbl.Matches(1, 1) {
		t.Fatalf("camera dubla should accept 2+0 and 1+1")
	}
	if dbl.Matches(1, 0) {
		t.Fatalf("camera dubla must not accept a single occupant")
	}

	tri := ClassifyRoomType("Camera tripla")
	if tri.Class != RoomTripleFlexible || !tri.Flexible || tri.Total != 3 {
		t.Fatalf("camera tripla: got %+v", tri)
	}
	if tri.Adults != 2 || tri.Children != 1 {
		t.Fatalf("camera tripla default split = %d/%d, want 2/1", tri.Adults, tri.Children)
	}
	if !tri.Matches(3, 0) || !tri.Matches(1, 2) {
		t.Fatalf("camera tripla should accept any split summing to 3")
	}
}

func TestClassifyRoomTypeDiacritics(t *testing.T) {
	occ := ClassifyRoomType("Cameră dublă")
	if occ.Class != RoomDoubleFlexible {
		t.Fatalf("diacritics not folded: got %s", occ.Class)
	}
}

func TestClassifyRoomTypeFallback(t *testing.T) {
	occ := ClassifyRoomType("apartament de lux")
	if occ.Class != RoomUnknown {
		t.Fatalf("expected unknown class, got %s", occ.Class)
	}
	if occ.Total != 1 || occ.Adults != 1 || occ.Flexible {
		t.Fatalf("fallback must be exactly one adult, got %+v", occ)
	}
}

func TestClassifyRoomTypePersoanaBeatsGenericDouble(t *testing.T) {
	occ := ClassifyRoomType("persoana in camera dubla")
	if occ.Class != RoomSinglePersonDouble || occ.Total != 1 {
		t.Fatalf("persoana + dubla must price one adult, got %+v", occ)
	}
}
