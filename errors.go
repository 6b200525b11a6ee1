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

import "errors"

// Registry failures are reported as wrapped sentinel errors so that callers
// can branch with errors.Is. Every failure is also logged where it is
// detected, but the returned error is the authoritative result.
var (
	// ErrNotFound indicates that the requested name is not registered.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates that creation was requested for a name
	// that is already registered.
	ErrDuplicate = errors.New("already exists")

	// ErrConflict indicates that a dimension was re-created with a
	// length that differs from its registered length.
	ErrConflict = errors.New("conflicting definition")

	// ErrTypeMismatch indicates that a typed metadata read requested a
	// kind that does not match the stored value's kind.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrFieldNotDefined indicates that a group operation referenced a
	// field that has no metadata record.
	ErrFieldNotDefined = errors.New("field not defined")

	// ErrInternal indicates that registry storage failed in a way that
	// should be unreachable under correct single-threaded use.
	ErrInternal = errors.New("internal registry error")
)
