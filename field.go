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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Names of the canonical attributes inserted by CreateFull.
const (
	AttrDescription = "Description"
	AttrUnits       = "Units"
	AttrStdName     = "StdName"
	AttrValidMin    = "ValidMin"
	AttrValidMax    = "ValidMax"
	AttrFillValue   = "FillValue"
)

// Metadata holds the descriptive attributes for one named field, plus the
// ordered dimension names for array fields. A scalar field (or a
// container for global metadata) has zero dimensions. Records are created
// and owned by a FieldRegistry; a fetched record is a shared view that
// stays usable if the registry entry is later removed.
type Metadata struct {
	log      logrus.FieldLogger
	name     string
	entries  map[string]Value
	ndims    int
	dimNames []string
}

// Name returns the name of the field this record describes.
func (m *Metadata) Name() string { return m.name }

// HasEntry reports whether the record has an attribute with the given name.
func (m *Metadata) HasEntry(name string) bool {
	_, ok := m.entries[name]
	return ok
}

// AddEntry adds an attribute with the given name and value. Attribute
// names are unique within a record; adding an existing name fails with
// ErrDuplicate rather than overwriting.
func (m *Metadata) AddEntry(name string, value Value) error {
	if m.HasEntry(name) {
		m.log.WithFields(logrus.Fields{
			"field":     m.name,
			"attribute": name,
		}).Error("cannot add metadata: the field already has an entry with that name")
		return fmt.Errorf("fieldmeta: attribute %s of field %s: %w", name, m.name, ErrDuplicate)
	}
	m.entries[name] = value
	return nil
}

// RemoveEntry removes the attribute with the given name.
func (m *Metadata) RemoveEntry(name string) error {
	if !m.HasEntry(name) {
		m.log.WithFields(logrus.Fields{
			"field":     m.name,
			"attribute": name,
		}).Error("cannot remove metadata: no entry with that name exists")
		return fmt.Errorf("fieldmeta: attribute %s of field %s: %w", name, m.name, ErrNotFound)
	}
	delete(m.entries, name)
	if m.HasEntry(name) {
		m.log.WithFields(logrus.Fields{
			"field":     m.name,
			"attribute": name,
		}).Error("unknown error erasing metadata entry")
		return fmt.Errorf("fieldmeta: erasing attribute %s of field %s: %w", name, m.name, ErrInternal)
	}
	return nil
}

// NumDims returns the number of array dimensions; 0 for scalar fields.
func (m *Metadata) NumDims() int { return m.ndims }

// DimNames returns a copy of the ordered dimension-name list, in the same
// index order as the field's stored data, or nil for a scalar field.
func (m *Metadata) DimNames() []string {
	if m.ndims <= 0 {
		return nil
	}
	names := make([]string, len(m.dimNames))
	copy(names, m.dimNames)
	return names
}

// Entry retrieves the attribute with the given name. Typed retrieval goes
// through the kind-checked Value accessors, which fail with
// ErrTypeMismatch when the requested kind disagrees with the stored kind.
func (m *Metadata) Entry(name string) (Value, error) {
	v, ok := m.entries[name]
	if !ok {
		m.log.WithFields(logrus.Fields{
			"field":     m.name,
			"attribute": name,
		}).Error("metadata entry does not exist for field")
		return Absent, fmt.Errorf("fieldmeta: attribute %s of field %s: %w", name, m.name, ErrNotFound)
	}
	return v, nil
}

// Entries returns the record's full attribute map. The map is the
// record's own storage, not a copy, so it can be used for enumeration or
// bulk consumption by an output writer.
func (m *Metadata) Entries() map[string]Value { return m.entries }

// A FieldRegistry holds the metadata records for all defined fields by
// field name. Dimension names stored in records are expected to be
// registered in the DimRegistry by convention; the registries do not
// reference each other's storage. Not safe for concurrent use.
type FieldRegistry struct {
	log    logrus.FieldLogger
	fields map[string]*Metadata
}

func newFieldRegistry(log logrus.FieldLogger) *FieldRegistry {
	return &FieldRegistry{log: log, fields: make(map[string]*Metadata)}
}

// Has reports whether a field with the given name is registered.
func (r *FieldRegistry) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Create registers an empty metadata record for a scalar field with the
// given name. It fails with ErrDuplicate if the name is already
// registered.
func (r *FieldRegistry) Create(name string) (*Metadata, error) {
	if r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("cannot create field metadata: field already exists")
		return nil, fmt.Errorf("fieldmeta: field %s: %w", name, ErrDuplicate)
	}
	m := &Metadata{
		log:     r.log,
		name:    name,
		entries: make(map[string]Value),
	}
	r.fields[name] = m
	return m, nil
}

// CreateArray registers an empty metadata record for an array field with
// the given dimension names. numDims of 0 (with any dimNames) creates a
// scalar record. The dimension-name list is fixed at creation.
func (r *FieldRegistry) CreateArray(name string, numDims int, dimNames []string) (*Metadata, error) {
	m, err := r.Create(name)
	if err != nil {
		return nil, err
	}
	if numDims > 0 {
		m.ndims = numDims
		m.dimNames = make([]string, len(dimNames))
		copy(m.dimNames, dimNames)
	}
	return m, nil
}

// CreateFull registers metadata for an array field with the required
// attribute set. This is the preferred interface for most fields. Inputs
// that do not exist (e.g. stdName) or do not make sense (e.g. a valid
// range or fill value for a non-numeric field) can be given as empty
// strings or Absent; the attribute is still recorded holding that marker.
// For scalars, numDims can be 0 with an empty dimension list.
func (r *FieldRegistry) CreateFull(name, description, units, stdName string,
	validMin, validMax, fillValue Value, numDims int, dimNames []string) (*Metadata, error) {

	m, err := r.CreateArray(name, numDims, dimNames)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("metadata create failed for field")
		return nil, err
	}

	m.AddEntry(AttrDescription, StringValue(description))
	m.AddEntry(AttrUnits, StringValue(units))
	m.AddEntry(AttrStdName, StringValue(stdName))
	m.AddEntry(AttrValidMin, validMin)
	m.AddEntry(AttrValidMax, validMax)
	m.AddEntry(AttrFillValue, fillValue)

	return m, nil
}

// CreateScalar registers metadata for a scalar field holding the given
// (name, value) attribute pairs.
func (r *FieldRegistry) CreateScalar(name string, entries map[string]Value) (*Metadata, error) {
	m, err := r.Create(name)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("metadata create failed for field")
		return nil, err
	}
	for k, v := range entries {
		m.AddEntry(k, v)
	}
	return m, nil
}

// Get retrieves the metadata record for the named field.
func (r *FieldRegistry) Get(name string) (*Metadata, error) {
	m, ok := r.fields[name]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("cannot retrieve field metadata: no field with that name exists")
		return nil, fmt.Errorf("fieldmeta: field %s: %w", name, ErrNotFound)
	}
	return m, nil
}

// Destroy removes the named field's metadata record. Records fetched
// earlier remain usable but are no longer discoverable by name.
func (r *FieldRegistry) Destroy(name string) error {
	if !r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("cannot destroy field metadata: field does not exist")
		return fmt.Errorf("fieldmeta: field %s: %w", name, ErrNotFound)
	}
	delete(r.fields, name)
	if r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"field": name,
		}).Error("unknown error erasing field metadata")
		return fmt.Errorf("fieldmeta: erasing field %s: %w", name, ErrInternal)
	}
	return nil
}

// Clear removes all registered field metadata.
func (r *FieldRegistry) Clear() {
	r.fields = make(map[string]*Metadata)
}
