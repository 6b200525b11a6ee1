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

// Package fieldmeta defines and stores the metadata associated with the
// data fields of a simulation model. The metadata is used to produce
// self-describing output files. Fields can also be combined into groups
// to provide a more compact way of referring to sets of fields that are
// commonly used together.
package fieldmeta

import "github.com/sirupsen/logrus"

// Version is the version of this package.
const Version = "0.1.0"

// Conventional names for the scalar records that hold code and simulation
// global metadata.
const (
	CodeMeta = "code"
	SimMeta  = "simulation"
)

// A Registry bundles the three metadata registries for one model run:
// dimensions, field metadata, and field groups. It is meant to be
// constructed once at model setup, passed by handle to the components
// that register or consume metadata, and torn down with Clear. All three
// registries share one logger and are intended for single-threaded
// initialization-time use; callers needing concurrent access must supply
// their own mutual exclusion.
type Registry struct {
	log logrus.FieldLogger

	// Dims registers named dimensions shared between fields.
	Dims *DimRegistry

	// Fields registers the metadata record for each named field.
	Fields *FieldRegistry

	// Groups registers named collections of field names. Group field
	// retrieval indirects through Fields.
	Groups *GroupRegistry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry failure diagnostics. The
// default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Registry) { r.log = log }
}

// Logger returns the logger the registries report failures to.
func (r *Registry) Logger() logrus.FieldLogger { return r.log }

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	r := &Registry{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(r)
	}
	r.Dims = newDimRegistry(r.log)
	r.Fields = newFieldRegistry(r.log)
	r.Groups = newGroupRegistry(r.log, r.Fields)
	return r
}

// Clear removes everything from all three registries.
func (r *Registry) Clear() {
	r.Dims.Clear()
	r.Fields.Clear()
	r.Groups.Clear()
}
