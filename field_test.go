/*
Copyright © 2026 the FieldMeta authors.
This file is part of FieldMeta.

FieldMeta is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldMeta is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldMeta.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldmeta

import (
	"errors"
	"reflect"
	"testing"
)

func TestFieldCreateDuplicate(t *testing.T) {
	reg := newTestRegistry()
	fields := reg.Fields

	m1, err := fields.Create("Temperature")
	if err != nil {
		t.Fatal(err)
	}
	m1.AddEntry(AttrUnits, StringValue("deg C"))

	if _, err := fields.Create("Temperature"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("have %v, want ErrDuplicate", err)
	}

	// The first record must remain retrievable unchanged.
	m2, err := fields.Get("Temperature")
	if err != nil {
		t.Fatal(err)
	}
	if m2 != m1 {
		t.Error("Get should return the original record")
	}
	if v, err := m2.Entry(AttrUnits); err != nil || v != StringValue("deg C") {
		t.Errorf("have (%v, %v), want (deg C, nil)", v, err)
	}
}

func TestFieldAttributeUniqueness(t *testing.T) {
	reg := newTestRegistry()
	m, _ := reg.Fields.Create("SSH")

	if err := m.AddEntry("Index", Int32Value(1)); err != nil {
		t.Fatal(err)
	}
	if err := m.AddEntry("Index", Int32Value(2)); !errors.Is(err, ErrDuplicate) {
		t.Errorf("have %v, want ErrDuplicate", err)
	}
	v, err := m.Entry("Index")
	if err != nil {
		t.Fatal(err)
	}
	if i, err := v.AsInt32(); err != nil || i != 1 {
		t.Errorf("have (%v, %v), want (1, nil): duplicate add must not overwrite", i, err)
	}
}

func TestFieldEntryTypedRetrieval(t *testing.T) {
	reg := newTestRegistry()
	m, _ := reg.Fields.Create("Salinity")
	m.AddEntry("MaxValue", Float64Value(38.5))

	v, err := m.Entry("MaxValue")
	if err != nil {
		t.Fatal(err)
	}
	if f, err := v.AsFloat64(); err != nil || f != 38.5 {
		t.Errorf("have (%v, %v), want (38.5, nil)", f, err)
	}
	if _, err := v.AsInt32(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("have %v, want ErrTypeMismatch", err)
	}
	if _, err := m.Entry("NoSuchEntry"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}
}

func TestFieldRemoveEntry(t *testing.T) {
	reg := newTestRegistry()
	m, _ := reg.Fields.Create("Vorticity")
	m.AddEntry(AttrUnits, StringValue("s-1"))

	if err := m.RemoveEntry(AttrUnits); err != nil {
		t.Fatal(err)
	}
	if m.HasEntry(AttrUnits) {
		t.Error("removed entry should not exist")
	}
	if err := m.RemoveEntry(AttrUnits); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}
}

func TestFieldCreateFull(t *testing.T) {
	reg := newTestRegistry()
	m, err := reg.Fields.CreateFull("Temperature",
		"potential temperature", "deg C", "sea_water_potential_temperature",
		Float64Value(-2), Float64Value(40), Float64Value(-9.99e30),
		2, []string{"NCells", "NVertLevels"})
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]Value{
		AttrDescription: StringValue("potential temperature"),
		AttrUnits:       StringValue("deg C"),
		AttrStdName:     StringValue("sea_water_potential_temperature"),
		AttrValidMin:    Float64Value(-2),
		AttrValidMax:    Float64Value(40),
		AttrFillValue:   Float64Value(-9.99e30),
	}
	if !reflect.DeepEqual(m.Entries(), want) {
		t.Errorf("have %v, want %v", m.Entries(), want)
	}
	if m.NumDims() != 2 {
		t.Errorf("have %d dims, want 2", m.NumDims())
	}
	wantDims := []string{"NCells", "NVertLevels"}
	if !reflect.DeepEqual(m.DimNames(), wantDims) {
		t.Errorf("have %v, want %v", m.DimNames(), wantDims)
	}

	// The returned list is a copy.
	m.DimNames()[0] = "Mangled"
	if !reflect.DeepEqual(m.DimNames(), wantDims) {
		t.Error("mutating the DimNames result should not affect the record")
	}

	if _, err := reg.Fields.CreateFull("Temperature", "", "", "",
		Absent, Absent, Absent, 0, nil); !errors.Is(err, ErrDuplicate) {
		t.Errorf("have %v, want ErrDuplicate", err)
	}
}

func TestFieldCreateFullAbsentMarkers(t *testing.T) {
	reg := newTestRegistry()
	m, err := reg.Fields.CreateFull("LandMask",
		"land-sea mask", "unitless", "",
		Absent, Absent, Absent, 1, []string{"NCells"})
	if err != nil {
		t.Fatal(err)
	}
	// The canonical attributes are still inserted, holding the marker.
	for _, name := range []string{AttrValidMin, AttrValidMax, AttrFillValue} {
		v, err := m.Entry(name)
		if err != nil {
			t.Fatal(err)
		}
		if !v.IsAbsent() {
			t.Errorf("%s: have %v, want the absent marker", name, v)
		}
	}
}

func TestFieldCreateScalar(t *testing.T) {
	reg := newTestRegistry()
	m, err := reg.Fields.CreateScalar(CodeMeta, map[string]Value{
		"CodeName":    StringValue("shelfmodel"),
		"CodeVersion": StringValue(Version),
		"Tiling":      BoolValue(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.NumDims() != 0 {
		t.Errorf("have %d dims, want 0", m.NumDims())
	}
	if len(m.DimNames()) != 0 {
		t.Errorf("have %v, want an empty dimension list", m.DimNames())
	}
	if v, _ := m.Entry("CodeName"); v != StringValue("shelfmodel") {
		t.Errorf("have %v, want shelfmodel", v)
	}
}

func TestFieldScalarIgnoresDimNames(t *testing.T) {
	reg := newTestRegistry()
	m, err := reg.Fields.CreateFull("GlobalMean", "", "", "",
		Absent, Absent, Absent, 0, []string{"NCells"})
	if err != nil {
		t.Fatal(err)
	}
	if m.NumDims() != 0 || len(m.DimNames()) != 0 {
		t.Errorf("numDims 0 should yield an empty dimension list, have %d %v",
			m.NumDims(), m.DimNames())
	}
}

func TestFieldDestroy(t *testing.T) {
	reg := newTestRegistry()
	m, _ := reg.Fields.Create("Density")

	if err := reg.Fields.Destroy("Density"); err != nil {
		t.Fatal(err)
	}
	if reg.Fields.Has("Density") {
		t.Error("destroyed field should not exist")
	}
	if err := reg.Fields.Destroy("Density"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}

	// An orphaned record stays usable.
	if err := m.AddEntry(AttrUnits, StringValue("kg m-3")); err != nil {
		t.Error(err)
	}
}

func TestFieldClear(t *testing.T) {
	reg := newTestRegistry()
	reg.Fields.Create("A")
	reg.Fields.Create("B")
	reg.Dims.Create("NCells", 100)

	reg.Fields.Clear()
	if reg.Fields.Has("A") || reg.Fields.Has("B") {
		t.Error("cleared fields should not be discoverable")
	}
	if !reg.Dims.Has("NCells") {
		t.Error("clearing fields should not affect dimensions")
	}
}

func TestFieldEntriesView(t *testing.T) {
	reg := newTestRegistry()
	m, _ := reg.Fields.Create("SSH")
	m.AddEntry(AttrUnits, StringValue("m"))

	// Entries exposes the record's own storage for bulk consumption.
	view := m.Entries()
	view["extra"] = Int32Value(7)
	if !m.HasEntry("extra") {
		t.Error("writes through the Entries view should be visible on the record")
	}
}
