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

func TestGroupLifecycle(t *testing.T) {
	reg := newTestRegistry()
	groups := reg.Groups

	if groups.Has("tracers") {
		t.Error("tracers should not exist before creation")
	}
	g, err := groups.Create("tracers")
	if err != nil {
		t.Fatal(err)
	}
	if g.Name() != "tracers" {
		t.Errorf("have %s, want tracers", g.Name())
	}
	if !groups.Has("tracers") {
		t.Error("tracers should exist after creation")
	}
	if _, err := groups.Create("tracers"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("have %v, want ErrDuplicate", err)
	}

	have, err := groups.Get("tracers")
	if err != nil {
		t.Fatal(err)
	}
	if have != g {
		t.Error("Get should return the registered instance")
	}

	if err := groups.Destroy("tracers"); err != nil {
		t.Fatal(err)
	}
	if groups.Has("tracers") {
		t.Error("tracers should not exist after destroy")
	}
	if err := groups.Destroy("tracers"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}
	if _, err := groups.Get("tracers"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}
}

// A field may be grouped before its metadata is defined: AddField reports
// ErrFieldNotDefined but inserts the name anyway.
func TestGroupAddUndefinedField(t *testing.T) {
	reg := newTestRegistry()
	g, _ := reg.Groups.Create("restart")

	err := g.AddField("Salinity")
	if !errors.Is(err, ErrFieldNotDefined) {
		t.Errorf("have %v, want ErrFieldNotDefined", err)
	}
	if !g.HasField("Salinity") {
		t.Error("the field name should be a member despite the error")
	}

	// Once the metadata exists, retrieval through the group succeeds.
	want, _ := reg.Fields.Create("Salinity")
	m, err := g.GetField("Salinity")
	if err != nil {
		t.Fatal(err)
	}
	if m != want {
		t.Error("GetField should indirect to the field registry")
	}
}

func TestGroupAddAndGetField(t *testing.T) {
	reg := newTestRegistry()
	reg.Fields.CreateFull("Temperature", "potential temperature", "deg C", "",
		Absent, Absent, Absent, 1, []string{"NCells"})
	g, _ := reg.Groups.Create("prognostic")

	if err := g.AddField("Temperature"); err != nil {
		t.Fatal(err)
	}
	// Duplicate adds are no-ops.
	if err := g.AddField("Temperature"); err != nil {
		t.Fatal(err)
	}
	if got := g.Fields(); !reflect.DeepEqual(got, []string{"Temperature"}) {
		t.Errorf("have %v, want [Temperature]", got)
	}

	m, err := g.GetField("Temperature")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := m.Entry(AttrUnits); v != StringValue("deg C") {
		t.Errorf("have %v, want deg C", v)
	}

	if _, err := g.GetField("Salinity"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound for a non-member", err)
	}
}

func TestGroupRemoveField(t *testing.T) {
	reg := newTestRegistry()
	reg.Fields.Create("SSH")
	g, _ := reg.Groups.Create("output")
	g.AddField("SSH")

	if err := g.RemoveField("SSH"); err != nil {
		t.Fatal(err)
	}
	if g.HasField("SSH") {
		t.Error("removed field should not be a member")
	}
	if err := g.RemoveField("SSH"); !errors.Is(err, ErrNotFound) {
		t.Errorf("have %v, want ErrNotFound", err)
	}
}

func TestGroupFieldsCopy(t *testing.T) {
	reg := newTestRegistry()
	reg.Fields.Create("A")
	reg.Fields.Create("B")
	g, _ := reg.Groups.Create("pair")
	g.AddField("B")
	g.AddField("A")

	want := []string{"A", "B"}
	have := g.Fields()
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
	have[0] = "Mangled"
	if !reflect.DeepEqual(g.Fields(), want) {
		t.Error("mutating the Fields result should not affect the group")
	}
}

func TestGroupClearIsolation(t *testing.T) {
	reg := newTestRegistry()
	reg.Dims.Create("NCells", 100)
	reg.Fields.Create("SSH")
	g, _ := reg.Groups.Create("output")
	g.AddField("SSH")

	reg.Groups.Clear()
	if reg.Groups.Has("output") {
		t.Error("cleared group should not be discoverable")
	}
	if !reg.Fields.Has("SSH") || !reg.Dims.Has("NCells") {
		t.Error("clearing groups should not affect the other registries")
	}
}
