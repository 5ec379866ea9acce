// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/consensys/go-metamath/pkg/prover"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds settings which can be given in a configuration file, and then
// overridden on the command line.
type Config struct {
	// Strategy for deriving type statements, either "classical" or "earley".
	Strategy string `yaml:"strategy"`
	// Verify holds settings for the verify command.
	Verify VerifyConfig `yaml:"verify"`
}

// VerifyConfig holds settings for the verify command.
type VerifyConfig struct {
	// Dists determines whether distinct variable conditions are checked.
	Dists bool `yaml:"dists"`
	// Workers is the number of theorems verified concurrently.
	Workers uint `yaml:"workers"`
}

func defaultConfig() Config {
	return Config{
		Strategy: prover.Classical.String(),
		Verify:   VerifyConfig{Dists: true, Workers: uint(runtime.NumCPU())},
	}
}

// LoadConfig reads a configuration file.  Settings not given in the file take
// their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	//
	return ParseConfig(data, path)
}

// ParseConfig parses configuration file content.  The path is used only for
// error messages.
func ParseConfig(data []byte, path string) (Config, error) {
	cfg := defaultConfig()
	//
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	} else if _, err := prover.ParseStrategy(cfg.Strategy); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	} else if cfg.Verify.Workers == 0 {
		return Config{}, fmt.Errorf("%s: at least one worker required", path)
	}
	//
	return cfg, nil
}

// Determine the configuration of a command, exiting on error.  Flags which
// were set explicitly override the configuration file.
func configure(cmd *cobra.Command) Config {
	cfg := defaultConfig()
	//
	if path := getString(cmd, "config"); path != "" {
		var err error
		//
		if cfg, err = LoadConfig(path); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		//
		log.Debugf("read configuration from %s", path)
	}
	//
	flags := cmd.Flags()
	//
	if flags.Changed("strategy") {
		cfg.Strategy = getString(cmd, "strategy")
	}
	//
	if flags.Changed("dists") {
		cfg.Verify.Dists = getFlag(cmd, "dists")
	}
	//
	if flags.Changed("workers") {
		cfg.Verify.Workers = max(1, getUint(cmd, "workers"))
	}
	//
	return cfg
}
