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
	"sort"

	"github.com/sirupsen/logrus"
)

// A Group collects related fields under one name so that sets of fields
// that are commonly used together can be referred to compactly, for
// example in output contents lists. Only field names are stored;
// retrieval indirects through the FieldRegistry.
type Group struct {
	log    logrus.FieldLogger
	name   string
	fields map[string]struct{}
	meta   *FieldRegistry
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// HasField reports whether the named field is a member of the group.
func (g *Group) HasField(fieldName string) bool {
	_, ok := g.fields[fieldName]
	return ok
}

// AddField adds a field to the group by name. If the field has no
// metadata record in the FieldRegistry, AddField returns
// ErrFieldNotDefined — but the name is inserted into the group
// regardless, so that fields may be grouped before they are defined.
// Adding a name that is already a member is a no-op.
func (g *Group) AddField(fieldName string) error {
	var err error
	if !g.meta.Has(fieldName) {
		g.log.WithFields(logrus.Fields{
			"group": g.name,
			"field": fieldName,
		}).Error("cannot add field to group: field not defined")
		err = fmt.Errorf("fieldmeta: adding field %s to group %s: %w",
			fieldName, g.name, ErrFieldNotDefined)
	}

	g.fields[fieldName] = struct{}{}

	return err
}

// GetField retrieves the metadata record for a member field.
func (g *Group) GetField(fieldName string) (*Metadata, error) {
	if !g.HasField(fieldName) {
		g.log.WithFields(logrus.Fields{
			"group": g.name,
			"field": fieldName,
		}).Error("cannot get field from group: field is not a group member")
		return nil, fmt.Errorf("fieldmeta: field %s in group %s: %w", fieldName, g.name, ErrNotFound)
	}
	return g.meta.Get(fieldName)
}

// RemoveField removes a field from the group.
func (g *Group) RemoveField(fieldName string) error {
	if !g.HasField(fieldName) {
		g.log.WithFields(logrus.Fields{
			"group": g.name,
			"field": fieldName,
		}).Error("cannot remove field from group: field is not a group member")
		return fmt.Errorf("fieldmeta: field %s in group %s: %w", fieldName, g.name, ErrNotFound)
	}
	delete(g.fields, fieldName)
	if g.HasField(fieldName) {
		g.log.WithFields(logrus.Fields{
			"group": g.name,
			"field": fieldName,
		}).Error("unknown error erasing field from group")
		return fmt.Errorf("fieldmeta: erasing field %s from group %s: %w", fieldName, g.name, ErrInternal)
	}
	return nil
}

// Fields returns the names of the group members, sorted. The result is a
// copy; mutating it does not affect the group.
func (g *Group) Fields() []string {
	names := make([]string, 0, len(g.fields))
	for name := range g.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A GroupRegistry holds all defined field groups by name. Not safe for
// concurrent use.
type GroupRegistry struct {
	log    logrus.FieldLogger
	meta   *FieldRegistry
	groups map[string]*Group
}

func newGroupRegistry(log logrus.FieldLogger, meta *FieldRegistry) *GroupRegistry {
	return &GroupRegistry{
		log:    log,
		meta:   meta,
		groups: make(map[string]*Group),
	}
}

// Has reports whether a group with the given name is registered.
func (r *GroupRegistry) Has(name string) bool {
	_, ok := r.groups[name]
	return ok
}

// Create registers an empty group with the given name.
func (r *GroupRegistry) Create(name string) (*Group, error) {
	if r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"group": name,
		}).Error("cannot create group: a group with that name already exists")
		return nil, fmt.Errorf("fieldmeta: group %s: %w", name, ErrDuplicate)
	}
	g := &Group{
		log:    r.log,
		name:   name,
		fields: make(map[string]struct{}),
		meta:   r.meta,
	}
	r.groups[name] = g
	return g, nil
}

// Get retrieves a group by name.
func (r *GroupRegistry) Get(name string) (*Group, error) {
	g, ok := r.groups[name]
	if !ok {
		r.log.WithFields(logrus.Fields{
			"group": name,
		}).Error("cannot retrieve group: group does not exist")
		return nil, fmt.Errorf("fieldmeta: group %s: %w", name, ErrNotFound)
	}
	return g, nil
}

// Destroy removes the named group.
func (r *GroupRegistry) Destroy(name string) error {
	if !r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"group": name,
		}).Error("cannot destroy group: group not found")
		return fmt.Errorf("fieldmeta: group %s: %w", name, ErrNotFound)
	}
	delete(r.groups, name)
	if r.Has(name) {
		r.log.WithFields(logrus.Fields{
			"group": name,
		}).Error("unknown error erasing group")
		return fmt.Errorf("fieldmeta: erasing group %s: %w", name, ErrInternal)
	}
	return nil
}

// Clear removes all registered groups.
func (r *GroupRegistry) Clear() {
	r.groups = make(map[string]*Group)
}
