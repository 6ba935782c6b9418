// Package main implements the cmd/graphdb command surface: a thin cobra
// wrapper over internal/catalog, internal/storage, and internal/query,
// one subcommand per file. Every verb here is a direct call into the
// core packages; this file and its siblings hold no engine logic of
// their own.
package main

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/graphdb/internal/catalog"
	"github.com/katalvlaran/graphdb/internal/config"
	"github.com/katalvlaran/graphdb/internal/query"
	"github.com/katalvlaran/graphdb/internal/storage"
)

// App holds the state a running graphdb process needs across commands:
// the catalog, the currently active engine (set by use-db), and the
// default query flags loaded from config.
type App struct {
	cat *catalog.Catalog
	cfg config.Config

	activeName   string
	activeEngine *storage.Engine
	queryOpts    query.Options
}

func newApp(cfg config.Config, cat *catalog.Catalog) *App {
	return &App{
		cat: cat,
		cfg: cfg,
		queryOpts: query.Options{
			CaseSensitive:  cfg.CaseSensitive,
			CastNonStrings: cfg.CastNonStrings,
		},
	}
}

// engine returns the active database's engine, or an error if none is
// selected via use-db yet.
func (a *App) engine() (*storage.Engine, error) {
	if a.activeEngine == nil {
		return nil, fmt.Errorf("no database selected; run use-db <name> first")
	}
	return a.activeEngine, nil
}

func (a *App) useDatabase(name string) error {
	e, err := a.cat.UseDatabase(name)
	if err != nil {
		return err
	}
	a.activeName = name
	a.activeEngine = e
	return nil
}

// parseKeyValues splits the `add`/`update` "key=value ..."
// tokens; values are later typed by types.ParseScalar (bool, then int,
// then float, then string).
func parseKeyValues(tokens []string) map[string]string {
	out := make(map[string]string, len(tokens))
	for _, t := range tokens {
		k, v, ok := strings.Cut(t, "=")
		if !ok {
			continue
		}
		out[k] = v
	}
	return out
}
