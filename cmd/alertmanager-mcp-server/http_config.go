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
	"path/filepath"

	promconfig "github.com/prometheus/common/config"
	"gopkg.in/yaml.v2"
)

// loadHTTPConfigFile returns the HTTPClientConfig for the given http_config
// file. Relative paths inside the file are taken relative to the file's
// directory.
func loadHTTPConfigFile(filename string) (*promconfig.HTTPClientConfig, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	httpConfig := &promconfig.HTTPClientConfig{}
	if err := yaml.UnmarshalStrict(b, httpConfig); err != nil {
		return nil, err
	}
	httpConfig.SetDirectory(filepath.Dir(filename))

	return httpConfig, nil
}
