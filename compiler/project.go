package compiler

import (
	"context"

	"github.com/syssam/modelgen/compiler/gen"
	_ "github.com/syssam/modelgen/compiler/gen/java" // java target
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/config"
)

// FromConfig returns a Generator configured by a project file. Options are
// applied after the ones derived from the file.
func FromConfig(cfg *config.Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := cfg.Target
	if name == "" {
		name = "go"
	}
	target, err := gen.NewTarget(name)
	if err != nil {
		return nil, err
	}
	policy, err := ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(cfg.Introspection)
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithTarget(target),
		WithGenOptions(cfg.GenOptions()...),
		WithPolicy(policy),
		WithStrategy(strategy),
	}
	if cfg.Connection != "" {
		base = append(base, WithDefaultConnection(cfg.Connection))
	}
	if strategy == StrategySnapshot {
		snap, err := load.ReadSnapshot(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		base = append(base, WithSnapshot(snap))
	}
	return New(append(base, opts...)...)
}

// Entities returns the entities declared in the project file followed by
// the annotated types found in its packages, loaded relative to dir. A
// declared entity hides a discovered one with the same package and name.
func Entities(ctx context.Context, cfg *config.Config, dir string) ([]*load.Entity, error) {
	var (
		entities []*load.Entity
		seen     = make(map[string]bool)
	)
	for _, e := range cfg.Entities {
		if e == nil {
			continue
		}
		seen[e.Package+"."+e.Name] = true
		entities = append(entities, e)
	}
	if len(cfg.Packages) == 0 {
		return entities, nil
	}
	found, err := load.Discover(ctx, dir, cfg.Packages...)
	if err != nil {
		return nil, err
	}
	for _, e := range found {
		if !seen[e.Package+"."+e.Name] {
			entities = append(entities, e)
		}
	}
	return entities, nil
}
