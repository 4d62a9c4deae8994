// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/hjson/hjson-go"
	"gopkg.in/yaml.v3"
)

// Load reads an input file. The format is selected by the extension: ".yaml" or ".yml",
// ".hjson" and ".json". Values missing in the file keep their defaults. The result is validated
func Load(path string) (o *Input, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read input file %q:\n%v", path, err)
	}
	o, err = Parse(b, filepath.Ext(path))
	if err != nil {
		return nil, chk.Err("cannot load %q:\n%w", path, err)
	}
	return
}

// Parse decodes and validates input data given in the format of ext; e.g. ".yaml"
func Parse(b []byte, ext string) (o *Input, err error) {
	o = Default()
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, o)
	case ".hjson":
		var m map[string]interface{}
		if err = hjson.Unmarshal(b, &m); err != nil {
			break
		}
		if b, err = json.Marshal(m); err != nil {
			break
		}
		err = json.Unmarshal(b, o)
	case ".json":
		err = json.Unmarshal(b, o)
	default:
		return nil, chk.Err("%w: unknown input format %q", ErrInvalidInput, ext)
	}
	if err != nil {
		return nil, chk.Err("%w: cannot decode data:\n%v", ErrInvalidInput, err)
	}
	if err = o.Validate(); err != nil {
		return nil, err
	}
	return
}

// Save writes the input data to a YAML file
func (o *Input) Save(path string) (err error) {
	b, err := yaml.Marshal(o)
	if err != nil {
		return
	}
	return os.WriteFile(path, b, 0644)
}
