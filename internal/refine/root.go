package refine

import (
	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
)

// rootRefiner checks the document-level keys and that the mandatory
// element kinds are declared at all.
type rootRefiner struct{}

func (rootRefiner) Name() string { return "mzTab" }

var mandatoryKinds = []model.Kind{
	model.KindSoftware,
	model.KindMsRun,
	model.KindAssay,
	model.KindStudyVariable,
	model.KindCV,
	model.KindDatabase,
}

func (rootRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	r := newReport(meta)
	if model.IsNull(meta.Version) {
		r.addPath("mzTab-version", "", diag.LogicalMissingField, "mzTab-version")
	}
	if model.IsNull(meta.ID) {
		r.addPath("mzTab-ID", "", diag.LogicalMissingField, "mzTab-ID")
	}
	if meta.QuantificationMethod == nil {
		r.addPath("mzTab-quantificationMethod", "", diag.LogicalMissingField, "quantification_method")
	}
	if n := ctx.RowCount(model.SectionSummary); n > 0 && meta.SmallMoleculeQuantificationUnit == nil {
		r.addPath("mzTab-smallMoleculeQuantificationUnit", "", diag.LogicalConditional,
			"small_molecule-quantification_unit", model.SectionSummary, n)
	}
	if n := ctx.RowCount(model.SectionFeature); n > 0 && meta.SmallMoleculeFeatureQuantificationUnit == nil {
		r.addPath("mzTab-smallMoleculeFeatureQuantificationUnit", "", diag.LogicalConditional,
			"small_molecule_feature-quantification_unit", model.SectionFeature, n)
	}
	out := r.flush()
	for _, k := range mandatoryKinds {
		if len(ctx.AllOf(k)) == 0 {
			out = append(out, diag.New(diag.LogicalNoElements, diag.NoLine, string(k)).WithPath(k.Bean()))
		}
	}
	return out
}
