package store

import (
	"embed"
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/plume/internal/authflow"
	"github.com/simonhull/firebird-suite/plume/internal/descriptor"
	"github.com/simonhull/firebird-suite/plume/internal/generator"
	"github.com/simonhull/firebird-suite/plume/internal/naming"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type guideMember struct {
	Name   string
	Params string
	Doc    string
}

type guideCollection struct {
	Name    string
	Suffix  string
	IsAuth  bool
	Members []guideMember
}

type guideData struct {
	Title              string
	Store              string
	Hook               string
	GeneratedAt        string
	Ext                string
	FirebaseImport     string
	PageSize           int
	Collections        []guideCollection
	HasAuth            bool
	Auth               []CollectionSpec
	Primary            string
	Flows              []authflow.Flow
	Roles              []string
	AdminRole          string
	Logging            bool
	ActivityCollection string
}

// ComposeGuide composes STORE_GUIDE.md. Member names and descriptions come
// from the descriptor table, the same source the modules are built from.
// This is the only artifact that depends on the clock.
func ComposeGuide(p *Plan, r *generator.Renderer) (string, error) {
	data := guideData{
		Title:              naming.Title(p.Store),
		Store:              p.Store,
		Hook:               StoreHook(p.Store),
		GeneratedAt:        p.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"),
		Ext:                p.Extension,
		FirebaseImport:     p.FirebaseImport,
		PageSize:           p.PageSize,
		HasAuth:            p.HasAuth(),
		Auth:               p.Auth,
		Flows:              authflow.Flows,
		Roles:              p.Roles,
		AdminRole:          p.AdminRole,
		Logging:            p.Logging,
		ActivityCollection: ActivityCollection,
	}
	if primary, ok := p.Primary(); ok {
		data.Primary = primary.Name
	}

	for _, c := range p.Collections {
		gc := guideCollection{Name: c.Name, Suffix: c.Suffix(), IsAuth: c.IsAuth}
		for _, d := range descriptor.ForCollection(c.IsAuth) {
			gc.Members = append(gc.Members, guideMember{
				Name:   d.Name(c.Suffix()),
				Params: strings.Join(d.Params, ", "),
				Doc:    d.Doc(c.Name),
			})
		}
		data.Collections = append(data.Collections, gc)
	}

	out, err := r.RenderFS(templatesFS, "templates/STORE_GUIDE.md.tmpl", data)
	if err != nil {
		return "", fmt.Errorf("rendering guide: %w", err)
	}
	return string(out), nil
}
