// Copyright 2025 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v2"
)

// configResolver resolves flag defaults from YAML config files, one map
// per file, earlier files winning.
type configResolver []map[string]string

// newConfigResolver reads the given config files. Missing files are
// skipped; unreadable or malformed ones are an error.
func newConfigResolver(files ...string) (configResolver, error) {
	resolver := configResolver{}
	for _, f := range files {
		b, err := os.ReadFile(f)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		var m map[string]string
		if err := yaml.Unmarshal(b, &m); err != nil {
			return nil, err
		}
		resolver = append(resolver, m)
	}

	return resolver, nil
}

func (r configResolver) Resolve(key string, context *kingpin.ParseContext) ([]string, error) {
	for _, c := range r {
		if v, ok := c[key]; ok {
			return []string{v}, nil
		}
	}
	return nil, nil
}
