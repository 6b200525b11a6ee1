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
	"iter"

	"github.com/sirupsen/logrus"
)

// A Dim describes one named array axis. A length of zero denotes an
// unlimited (record) dimension. Dims are created and owned by a
// DimRegistry; a fetched Dim is a read-only view.
type Dim struct {
	name   string
	length int32
}

// Name returns the dimension name.
func (d *Dim) Name() string { return d.name }

// Length returns the dimension length; 0 means unlimited.
func (d *Dim) Length() int32 { return d.length }

// A DimRegistry holds all defined dimensions by name. Many fields share
// dimensions, so dimensions are registered once here and referenced from
// field metadata by name. The registry is not safe for concurrent use.
type DimRegistry struct {
	log  logrus.FieldLogger
	dims map[string]*Dim
}

func newDimRegistry(log logrus.FieldLogger) *DimRegistry {
	return &DimRegistry{log: log, dims: make(map[string]*Dim)}
}

// Has reports whether a dimension with the given name is registered.
func (r *DimRegistry) Has(name string) bool {
	_, ok := r.dims[name]
	return ok
}

// Create registers a dimension with the given name and length and returns
// it. If a dimension with the same name and length already exists, the
// existing dimension is returned. If the existing dimension has a
// different length, Create fails with ErrConflict and the registered
// length is left unchanged.
func (r *DimRegistry) Create(name string, length int32) (*Dim, error) {
	if d, ok := r.dims[name]; ok {
		if d.length != length {
			r.log.WithFields(logrus.Fields{
				"dimension": name,
				"length":    d.length,
				"requested": length,
			}).Error("cannot create dimension: a dimension with that name already exists with a different length")
			return nil, fmt.Errorf("fieldmeta: dimension %s has length %d, not %d: %w",
				name, d.length, length, ErrConflict)
		}
		return d, nil
	}
	d := &Dim{name: name, length: length}
	r.dims[name] = d
	return d, nil
}

// Get retrieves a dimension by name.
func (r *DimRegistry) Get(name string) (*Dim, error) {
	d, ok := r.dims[name]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"dimension": name,
		}).Error("cannot retrieve dimension: dimension has not been defined")
		return nil, fmt.Errorf("fieldmeta: dimension %s: %w", name, ErrNotFound)
	}
	return d, nil
}

// Length returns the length of the named dimension, or -1 if the
// dimension has not been defined.
func (r *DimRegistry) Length(name string) int32 {
	d, ok := r.dims[name]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"dimension": name,
		}).Error("cannot get dimension length: dimension has not been defined")
		return -1
	}
	return d.length
}

// Destroy removes the named dimension from the registry. Dim handles
// obtained earlier remain usable but are no longer discoverable.
func (r *DimRegistry) Destroy(name string) error {
	if !r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"dimension": name,
		}).Error("cannot destroy dimension: dimension has not been defined")
		return fmt.Errorf("fieldmeta: dimension %s: %w", name, ErrNotFound)
	}
	delete(r.dims, name)
	if r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"dimension": name,
		}).Error("unknown error erasing dimension")
		return fmt.Errorf("fieldmeta: erasing dimension %s: %w", name, ErrInternal)
	}
	return nil
}

// Clear removes all registered dimensions.
func (r *DimRegistry) Clear() {
	r.dims = make(map[string]*Dim)
}

// Len returns the number of currently registered dimensions.
func (r *DimRegistry) Len() int { return len(r.dims) }

// All returns an iterator over all registered dimensions. Each dimension
// is visited exactly once; the visit order is unspecified.
func (r *DimRegistry) All() iter.Seq2[string, *Dim] {
	return func(yield func(string, *Dim) bool) {
		for name, d := range r.dims {
			if !yield(name, d) {
				return
			}
		}
	}
}
