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

// Package fieldmetautil provides the command-line interface for working
// with field metadata registries and NetCDF template files.
package fieldmetautil

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/fieldmeta"
	"github.com/spatialmodel/fieldmeta/ncmeta"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to FieldMeta.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location. The
              configuration file describes the Dimensions, Fields and
              Groups to register.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "output",
			usage: `
              output specifies the location of the NetCDF template file
              to create.`,
			shorthand:  "o",
			defaultVal: "fieldmeta_template.nc",
			flagsets:   []*pflag.FlagSet{templateCmd.Flags()},
		},
		{
			name: "group",
			usage: `
              group restricts the template to the fields in the named
              group. If empty, all configured fields are included.`,
			shorthand:  "g",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{templateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("FIELDMETA")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(templateCmd)
	Root.AddCommand(describeCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("fieldmeta: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "fieldmeta",
	Short: "A field metadata registry for self-describing model output.",
	Long: `FieldMeta registers the dimensions, per-field attributes and field
groups of a simulation model and uses them to create and inspect
self-describing NetCDF files.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'FIELDMETA_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of FieldMeta.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("FieldMeta v%s\n", fieldmeta.Version)
	},
	DisableAutoGenTag: true,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Create a NetCDF template file from the configured metadata",
	Long: `template registers the dimensions, fields and groups in the
configuration file and writes a NetCDF file whose header describes them.
The file contains metadata only; it is meant to be filled with data by
the model's output layer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, fields, err := LoadRegistry(Cfg, logrus.StandardLogger())
		if err != nil {
			return err
		}
		outfile, err := checkOutputFile(Cfg.GetString("output"))
		if err != nil {
			return err
		}
		return writeTemplate(reg, fields, Cfg.GetString("group"), outfile)
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe [netcdf file]",
	Short: "Print the metadata stored in a NetCDF file",
	Long: `describe reads the header of an existing NetCDF file, registers
its dimensions, variables and attributes, and prints them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(os.ExpandEnv(args[0]))
		if err != nil {
			return fmt.Errorf("fieldmeta: opening input file: %v", err)
		}
		defer f.Close()

		reg := fieldmeta.New(fieldmeta.WithLogger(logrus.StandardLogger()))
		fields, err := ncmeta.Load(f, reg)
		if err != nil {
			return err
		}
		return describeRegistry(cmd.OutOrStdout(), reg, fields)
	},
	DisableAutoGenTag: true,
}

// writeTemplate writes the template file for the given fields, or for the
// named group if group is nonempty.
func writeTemplate(reg *fieldmeta.Registry, fields []string, group, outfile string) error {
	f, err := os.Create(outfile)
	if err != nil {
		return fmt.Errorf("fieldmeta: creating template file: %v", err)
	}
	defer f.Close()

	if group != "" {
		return ncmeta.WriteGroupTemplate(f, reg, group)
	}
	return ncmeta.WriteTemplate(f, reg, fields)
}
