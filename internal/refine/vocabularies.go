package refine

import (
	"fmt"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
)

// noDatabasePrefix is the prefix reserved for the "no database" entry.
const noDatabasePrefix = "null"

type databaseRefiner struct{}

func (databaseRefiner) Name() string { return "database" }

func (databaseRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Databases, func(db *model.Database) {
		if db.Param == nil {
			r.add(db, "parameter", "", diag.LogicalMissingField, model.Path(db, "parameter"))
		}
		if db.IsNoDatabase() {
			found := fmt.Sprintf("prefix %s, version %s", orNull(db.Prefix), orNull(db.Version))
			switch {
			case db.Prefix != noDatabasePrefix:
				r.add(db, "prefix", key(db, "prefix"), diag.LogicalNoDatabase, model.Path(db, "prefix"), db.Param.Name, noDatabasePrefix, found)
			case !model.IsNull(db.Version):
				r.add(db, "version", key(db, "version"), diag.LogicalNoDatabase, model.Path(db, "version"), db.Param.Name, noDatabasePrefix, found)
			}
			out = append(out, r.flush()...)
			return
		}
		if model.IsNull(db.Prefix) {
			r.add(db, "prefix", "", diag.LogicalMissingField, model.Path(db, "prefix"))
		}
		if model.IsNull(db.Version) {
			r.add(db, "version", "", diag.LogicalMissingField, model.Path(db, "version"))
		}
		if model.IsNull(db.URI) {
			r.add(db, "uri", "", diag.LogicalMissingField, model.Path(db, "uri"))
		}
		out = append(out, r.flush()...)
	})
	return out
}

func orNull(s string) string {
	if s == "" {
		return model.Null
	}
	return s
}

type cvRefiner struct{}

func (cvRefiner) Name() string { return "cv" }

func (cvRefiner) Refine(meta *model.Metadata, _ Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	labels := map[string]string{}
	each(meta.CVs, func(cv *model.CV) {
		if model.IsNull(cv.Label) {
			r.add(cv, "label", "", diag.LogicalMissingField, model.Path(cv, "label"))
		} else if first, dup := labels[cv.Label]; dup {
			r.add(cv, "label", key(cv, "label"), diag.LogicalDuplicateCV, model.Path(cv, "label"), cv.Label, first)
		} else {
			labels[cv.Label] = model.Path(cv, "label")
		}
		if model.IsNull(cv.FullName) {
			r.add(cv, "fullName", "", diag.LogicalMissingField, model.Path(cv, "fullName"))
		}
		if model.IsNull(cv.Version) {
			r.add(cv, "version", "", diag.LogicalMissingField, model.Path(cv, "version"))
		}
		if model.IsNull(cv.URI) {
			r.add(cv, "uri", "", diag.LogicalMissingField, model.Path(cv, "uri"))
		}
		out = append(out, r.flush()...)
	})
	if len(labels) == 0 {
		return out
	}
	for _, lp := range meta.AllParams() {
		if lp.Param.IsUserParam() {
			continue
		}
		if _, ok := labels[lp.Param.CVLabel]; !ok {
			out = append(out, diag.New(diag.LogicalUndeclaredCV, diag.NoLine, lp.Path, lp.Param.CVLabel).WithPath(lp.Path))
		}
	}
	return out
}
