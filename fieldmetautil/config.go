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

package fieldmetautil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/spatialmodel/fieldmeta"
)

// LoadRegistry builds a metadata registry from the configuration keys
// Dimensions, Fields and Groups, each a list of tables. It returns the
// registry and the configured field names in configuration order.
//
// A dimension table has the keys Name and Length (0 for an unlimited
// dimension). A field table has the keys Name, Description, Units,
// StdName, Type (one of int32, int64, float32, float64, bool, string;
// the default is float64), ValidMin, ValidMax, FillValue and Dims; an
// omitted ValidMin, ValidMax or FillValue is recorded as the absent
// marker. A group table has the keys Name and Fields.
//
// Names are configured as table values rather than table keys because
// viper lowercases keys, and dimension, field and group names are
// case-sensitive.
func LoadRegistry(cfg *viper.Viper, log logrus.FieldLogger) (*fieldmeta.Registry, []string, error) {
	reg := fieldmeta.New(fieldmeta.WithLogger(log))

	dimTables, err := configTables(cfg, "Dimensions")
	if err != nil {
		return nil, nil, err
	}
	for _, table := range dimTables {
		name := cast.ToString(table["name"])
		if name == "" {
			return nil, nil, fmt.Errorf("fieldmeta: a configured dimension is missing its Name")
		}
		length, err := cast.ToInt32E(table["length"])
		if err != nil {
			return nil, nil, fmt.Errorf("fieldmeta: dimension %s: invalid length: %v", name, err)
		}
		if _, err := reg.Dims.Create(name, length); err != nil {
			return nil, nil, err
		}
	}

	fieldTables, err := configTables(cfg, "Fields")
	if err != nil {
		return nil, nil, err
	}
	var names []string
	for _, table := range fieldTables {
		name, err := addConfiguredField(reg, table)
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
	}

	groupTables, err := configTables(cfg, "Groups")
	if err != nil {
		return nil, nil, err
	}
	for _, table := range groupTables {
		name := cast.ToString(table["name"])
		if name == "" {
			return nil, nil, fmt.Errorf("fieldmeta: a configured group is missing its Name")
		}
		g, err := reg.Groups.Create(name)
		if err != nil {
			return nil, nil, err
		}
		for _, member := range cast.ToStringSlice(table["fields"]) {
			if err := g.AddField(member); err != nil {
				return nil, nil, err
			}
		}
	}

	return reg, names, nil
}

// configTables returns the list of tables stored under the named
// configuration key, with the table keys lowercased. Viper lowercases
// top-level keys but not necessarily keys nested inside lists.
func configTables(cfg *viper.Viper, key string) ([]map[string]interface{}, error) {
	raw := cfg.Get(key)
	if raw == nil {
		return nil, nil
	}
	list, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("fieldmeta: invalid %s configuration: %v", key, err)
	}
	tables := make([]map[string]interface{}, len(list))
	for i, rawTable := range list {
		t, err := cast.ToStringMapE(rawTable)
		if err != nil {
			return nil, fmt.Errorf("fieldmeta: invalid %s configuration: %v", key, err)
		}
		tables[i] = make(map[string]interface{}, len(t))
		for k, v := range t {
			tables[i][strings.ToLower(k)] = v
		}
	}
	return tables, nil
}

// addConfiguredField registers one field from its configuration table
// and returns the field name.
func addConfiguredField(reg *fieldmeta.Registry, table map[string]interface{}) (string, error) {
	name := cast.ToString(table["name"])
	if name == "" {
		return "", fmt.Errorf("fieldmeta: a configured field is missing its Name")
	}

	kind := strings.ToLower(cast.ToString(table["type"]))
	if kind == "" {
		kind = "float64"
	}
	validMin, err := configValue(kind, table["validmin"])
	if err != nil {
		return "", fmt.Errorf("fieldmeta: field %s: ValidMin: %v", name, err)
	}
	validMax, err := configValue(kind, table["validmax"])
	if err != nil {
		return "", fmt.Errorf("fieldmeta: field %s: ValidMax: %v", name, err)
	}
	fillValue, err := configValue(kind, table["fillvalue"])
	if err != nil {
		return "", fmt.Errorf("fieldmeta: field %s: FillValue: %v", name, err)
	}
	dims := cast.ToStringSlice(table["dims"])

	_, err = reg.Fields.CreateFull(name,
		cast.ToString(table["description"]),
		cast.ToString(table["units"]),
		cast.ToString(table["stdname"]),
		validMin, validMax, fillValue,
		len(dims), dims)
	if err != nil {
		return "", err
	}
	return name, nil
}

// configValue coerces a raw configuration value to a metadata value of
// the given kind. A nil raw value becomes the absent marker.
func configValue(kind string, raw interface{}) (fieldmeta.Value, error) {
	if raw == nil {
		return fieldmeta.Absent, nil
	}
	switch kind {
	case "int32":
		v, err := cast.ToInt32E(raw)
		return fieldmeta.Int32Value(v), err
	case "int64":
		v, err := cast.ToInt64E(raw)
		return fieldmeta.Int64Value(v), err
	case "float32":
		v, err := cast.ToFloat32E(raw)
		return fieldmeta.Float32Value(v), err
	case "float64":
		v, err := cast.ToFloat64E(raw)
		return fieldmeta.Float64Value(v), err
	case "bool":
		v, err := cast.ToBoolE(raw)
		return fieldmeta.BoolValue(v), err
	case "string":
		v, err := cast.ToStringE(raw)
		return fieldmeta.StringValue(v), err
	}
	return fieldmeta.Absent, fmt.Errorf("unknown field type %q", kind)
}

// checkOutputFile makes sure the output file's directory exists and
// expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`fieldmeta: you need to specify an output file (for example: --output="template.nc")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("fieldmeta: the output directory doesn't exist: %v", err)
	}
	return f, nil
}

// describeRegistry prints the dimensions, fields and attributes of reg to
// w, in a layout similar to ncdump -h.
func describeRegistry(w io.Writer, reg *fieldmeta.Registry, fieldNames []string) error {
	fmt.Fprintln(w, "dimensions:")
	for name, d := range reg.Dims.All() {
		if d.Length() == 0 {
			fmt.Fprintf(w, "\t%s = unlimited\n", name)
			continue
		}
		fmt.Fprintf(w, "\t%s = %d\n", name, d.Length())
	}

	fmt.Fprintln(w, "fields:")
	for _, name := range fieldNames {
		m, err := reg.Fields.Get(name)
		if err != nil {
			return err
		}
		if m.NumDims() > 0 {
			fmt.Fprintf(w, "\t%s(%s)\n", name, strings.Join(m.DimNames(), ", "))
		} else {
			fmt.Fprintf(w, "\t%s\n", name)
		}
		entries := m.Entries()
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "\t\t%s = %s\n", k, entries[k])
		}
	}
	return nil
}
