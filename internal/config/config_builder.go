// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	rest    []string
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flags, rest, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	b.rest = rest
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string

	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}
