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

// Package ncmeta converts between registered field metadata and NetCDF
// (classic format) file headers. It writes template files whose headers
// describe the registered fields, and loads the dimensions, variables and
// attributes of an existing file back into a registry.
package ncmeta

import (
	"fmt"
	"sort"

	"github.com/ctessum/cdf"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/fieldmeta"
)

// GlobalField is the name of the scalar metadata record that Load creates
// to hold a file's global attributes.
const GlobalField = "global"

// Template builds a NetCDF header describing the named fields.
//
// Array fields become variables: their dimensions are resolved through the
// dimension registry (a referenced but unregistered dimension is an
// error), their element type is inferred from the kind of the FillValue
// attribute (then ValidMin, then DOUBLE), and their attributes are
// attached in sorted order. Scalar fields contribute their attributes as
// global attributes. Absent values are skipped.
//
// Classic NetCDF has no 64-bit integer or boolean types: an Int64
// attribute is narrowed to INT when it fits and widened to DOUBLE
// otherwise, and a Bool becomes a BYTE holding 0 or 1.
func Template(reg *fieldmeta.Registry, fieldNames []string) (*cdf.Header, error) {
	log := reg.Logger()

	recs := make([]*fieldmeta.Metadata, len(fieldNames))
	for i, name := range fieldNames {
		m, err := reg.Fields.Get(name)
		if err != nil {
			return nil, err
		}
		recs[i] = m
	}

	// Collect the referenced dimensions in order of first appearance.
	var dimNames []string
	var dimLengths []int
	seen := make(map[string]struct{})
	for _, m := range recs {
		for i, dn := range m.DimNames() {
			d, err := reg.Dims.Get(dn)
			if err != nil {
				return nil, fmt.Errorf("ncmeta: dimension %s of field %s: %w", dn, m.Name(), err)
			}
			if d.Length() < 0 {
				return nil, fmt.Errorf("ncmeta: dimension %s has negative length %d", dn, d.Length())
			}
			if d.Length() == 0 && i != 0 {
				return nil, fmt.Errorf("ncmeta: field %s: unlimited dimension %s must be outermost",
					m.Name(), dn)
			}
			if _, ok := seen[dn]; ok {
				continue
			}
			seen[dn] = struct{}{}
			dimNames = append(dimNames, dn)
			dimLengths = append(dimLengths, int(d.Length()))
		}
	}
	nUnlimited := 0
	for i := range dimLengths {
		if dimLengths[i] == 0 {
			nUnlimited++
		}
	}
	if nUnlimited > 1 {
		return nil, fmt.Errorf("ncmeta: %d unlimited dimensions referenced; NetCDF allows at most one", nUnlimited)
	}

	h := cdf.NewHeader(dimNames, dimLengths)

	globals := make(map[string]struct{})
	for _, m := range recs {
		if m.NumDims() == 0 {
			// Scalar records describe global metadata.
			for _, a := range sortKeys(m.Entries()) {
				val, ok := attrValue(m.Entries()[a])
				if !ok {
					log.WithFields(logrus.Fields{
						"field":     m.Name(),
						"attribute": a,
					}).Debug("skipping absent attribute value")
					continue
				}
				if _, dup := globals[a]; dup {
					log.WithFields(logrus.Fields{
						"field":     m.Name(),
						"attribute": a,
					}).Warn("skipping duplicate global attribute")
					continue
				}
				globals[a] = struct{}{}
				h.AddAttribute("", a, val)
			}
			continue
		}

		h.AddVariable(m.Name(), m.DimNames(), varZero(m))
		for _, a := range sortKeys(m.Entries()) {
			val, ok := attrValue(m.Entries()[a])
			if !ok {
				log.WithFields(logrus.Fields{
					"field":     m.Name(),
					"attribute": a,
				}).Debug("skipping absent attribute value")
				continue
			}
			h.AddAttribute(m.Name(), a, val)
		}
	}

	h.Define()
	for _, err := range h.Check() {
		return nil, fmt.Errorf("ncmeta: building header: %v", err)
	}
	return h, nil
}

// WriteTemplate builds the header for the named fields and writes it to
// rw as a new NetCDF file containing no data.
func WriteTemplate(rw cdf.ReaderWriterAt, reg *fieldmeta.Registry, fieldNames []string) error {
	h, err := Template(reg, fieldNames)
	if err != nil {
		return err
	}
	if _, err := cdf.Create(rw, h); err != nil {
		return fmt.Errorf("ncmeta: creating template file: %v", err)
	}
	return nil
}

// WriteGroupTemplate writes a template file describing the members of the
// named group. A grouped field that has no metadata record causes an
// error.
func WriteGroupTemplate(rw cdf.ReaderWriterAt, reg *fieldmeta.Registry, groupName string) error {
	g, err := reg.Groups.Get(groupName)
	if err != nil {
		return err
	}
	return WriteTemplate(rw, reg, g.Fields())
}

// Load reads the header of an existing NetCDF file and registers its
// contents: every dimension (name and length), every variable as a field
// whose dimension names preserve file order, and each variable attribute
// as a typed entry. Global attributes are collected into a scalar record
// named GlobalField. Name collisions surface the registry's own errors.
// The returned list holds the registered field names in file order.
//
// Attribute types follow the file: CHAR becomes String, INT, SHORT and
// BYTE become Int32, FLOAT becomes Float32 and DOUBLE becomes Float64.
// Multi-valued attributes have no scalar representation and are skipped
// with a warning.
func Load(rw cdf.ReaderWriterAt, reg *fieldmeta.Registry) ([]string, error) {
	f, err := cdf.Open(rw)
	if err != nil {
		return nil, fmt.Errorf("ncmeta: opening file: %v", err)
	}
	h := f.Header
	log := reg.Logger()

	names := h.Dimensions("")
	lengths := h.Lengths("")
	for i, name := range names {
		if _, err := reg.Dims.Create(name, int32(lengths[i])); err != nil {
			return nil, err
		}
	}

	var loaded []string
	if attrs := h.Attributes(""); len(attrs) > 0 {
		m, err := reg.Fields.Create(GlobalField)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, GlobalField)
		loadAttrs(log, h, m, "", attrs)
	}

	for _, v := range h.Variables() {
		vdims := h.Dimensions(v)
		m, err := reg.Fields.CreateArray(v, len(vdims), vdims)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, v)
		loadAttrs(log, h, m, v, h.Attributes(v))
	}
	return loaded, nil
}

func loadAttrs(log logrus.FieldLogger, h *cdf.Header, m *fieldmeta.Metadata, v string, attrs []string) {
	for _, a := range attrs {
		val, ok := valueFromAttr(h.GetAttribute(v, a))
		if !ok {
			log.WithFields(logrus.Fields{
				"field":     m.Name(),
				"attribute": a,
			}).Warn("skipping attribute with no scalar representation")
			continue
		}
		m.AddEntry(a, val)
	}
}

// attrValue converts a metadata value to the corresponding NetCDF
// attribute value, reporting false for the Absent marker.
func attrValue(v fieldmeta.Value) (interface{}, bool) {
	switch v.Kind() {
	case fieldmeta.KindInt32:
		i, _ := v.AsInt32()
		return []int32{i}, true
	case fieldmeta.KindInt64:
		i, _ := v.AsInt64()
		if int64(int32(i)) == i {
			return []int32{int32(i)}, true
		}
		return []float64{float64(i)}, true
	case fieldmeta.KindFloat32:
		f, _ := v.AsFloat32()
		return []float32{f}, true
	case fieldmeta.KindFloat64:
		f, _ := v.AsFloat64()
		return []float64{f}, true
	case fieldmeta.KindBool:
		b, _ := v.AsBool()
		if b {
			return []uint8{1}, true
		}
		return []uint8{0}, true
	case fieldmeta.KindString:
		s, _ := v.AsString()
		return s, true
	}
	return nil, false
}

// valueFromAttr converts a NetCDF attribute value to a metadata value,
// reporting false when there is no scalar representation.
func valueFromAttr(attr interface{}) (fieldmeta.Value, bool) {
	switch a := attr.(type) {
	case string:
		return fieldmeta.StringValue(a), true
	case []uint8:
		if len(a) == 1 {
			return fieldmeta.Int32Value(int32(a[0])), true
		}
	case []int16:
		if len(a) == 1 {
			return fieldmeta.Int32Value(int32(a[0])), true
		}
	case []int32:
		if len(a) == 1 {
			return fieldmeta.Int32Value(a[0]), true
		}
	case []float32:
		if len(a) == 1 {
			return fieldmeta.Float32Value(a[0]), true
		}
	case []float64:
		if len(a) == 1 {
			return fieldmeta.Float64Value(a[0]), true
		}
	}
	return fieldmeta.Absent, false
}

// varZero returns the zero element slice determining the NetCDF type of
// the variable for m, inferred from its fill-value or valid-range kind.
func varZero(m *fieldmeta.Metadata) interface{} {
	kind := fieldmeta.KindFloat64
	for _, name := range []string{fieldmeta.AttrFillValue, fieldmeta.AttrValidMin} {
		if v, ok := m.Entries()[name]; ok && !v.IsAbsent() {
			kind = v.Kind()
			break
		}
	}
	switch kind {
	case fieldmeta.KindInt32, fieldmeta.KindInt64:
		return []int32{0}
	case fieldmeta.KindFloat32:
		return []float32{0}
	case fieldmeta.KindBool:
		return []uint8{0}
	default:
		return []float64{0}
	}
}

// sortKeys returns the keys of m in sorted order.
func sortKeys(m map[string]fieldmeta.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
