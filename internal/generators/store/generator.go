// Package store generates a Firestore-backed store: shared state, a CRUD
// action factory, one action module per collection, an entry point with
// optional auth flows, an optional activity logger and a Markdown guide.
//
// Composition is driven by the descriptor table. Every artifact is composed
// in memory first; Generate returns write operations in dependency order
// (state, factory, collection modules, index, logger, guide) and never
// touches the file system itself.
package store

import (
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/logger"
)

// Generator generates store modules
type Generator struct {
	renderer *generator.Renderer
	log      logger.Logger
}

// New creates a new store generator. A nil log is silent.
func New(log logger.Logger) *Generator {
	if log == nil {
		log = logger.NewSilentLogger()
	}
	return &Generator{
		renderer: generator.NewRenderer(),
		log:      log,
	}
}

// Generate validates opts and composes every artifact. Input problems are
// reported as errors wrapping ErrInput before any composition happens.
func (g *Generator) Generate(opts Options) ([]generator.Operation, error) {
	plan, err := NewPlan(opts)
	if err != nil {
		return nil, err
	}
	return g.Compose(plan)
}

// Compose builds the write operations for an already validated plan.
func (g *Generator) Compose(p *Plan) ([]generator.Operation, error) {
	log := g.log.WithFields(logger.F("store", p.Store))
	if p.HasAuth() {
		primary, _ := p.Primary()
		log.Debug("auth collections detected",
			logger.F("count", len(p.Auth)),
			logger.F("primary", primary.Name))
	}

	var ops []generator.Operation
	add := func(artifact, path string, compose func() (string, error)) error {
		content, err := compose()
		if err != nil {
			return &CompositionError{Artifact: artifact, Err: err}
		}
		log.Debug("composed", logger.F("artifact", artifact), logger.F("bytes", len(content)))
		ops = append(ops, generator.NewWriteFile(path, content))
		return nil
	}

	if err := add("state module", p.Path(p.Module("state")), func() (string, error) {
		return ComposeState(p)
	}); err != nil {
		return nil, err
	}

	if err := add("collection action factory", p.Path(p.Module("useFirestoreCollectionActions")), func() (string, error) {
		return ComposeUtil(p, g.renderer)
	}); err != nil {
		return nil, err
	}

	for _, c := range p.Collections {
		if err := add("actions for "+c.Name, p.Path("actions", p.Module(c.Name)), func() (string, error) {
			return ComposeCollection(c)
		}); err != nil {
			return nil, err
		}
	}

	if err := add("index module", p.Path(p.Module("index")), func() (string, error) {
		return ComposeIndex(p, g.renderer)
	}); err != nil {
		return nil, err
	}

	if p.Logging {
		if err := add("activity logger", p.Path(p.Module("activityLogger")), func() (string, error) {
			return ComposeLogger(p)
		}); err != nil {
			return nil, err
		}
	}

	if err := add("store guide", p.Path("STORE_GUIDE.md"), func() (string, error) {
		return ComposeGuide(p, g.renderer)
	}); err != nil {
		return nil, err
	}

	return ops, nil
}
