package refine

import (
	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
)

type msRunRefiner struct{}

func (msRunRefiner) Name() string { return "msRun" }

func (msRunRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.MsRuns, func(run *model.MsRun) {
		if model.IsNull(run.Location) {
			r.add(run, "location", "", diag.LogicalMissingField, model.Path(run, "location"))
		}
		if len(run.ScanPolarity) == 0 {
			r.add(run, "scanPolarity", "", diag.LogicalEmptyList, model.Path(run, "scanPolarity"))
		}
		switch {
		case run.Format != nil && run.IDFormat == nil:
			r.add(run, "idFormat", "", diag.LogicalPairedField, model.Path(run, "format"), model.Path(run, "idFormat"))
		case run.Format == nil && run.IDFormat != nil:
			r.add(run, "format", "", diag.LogicalPairedField, model.Path(run, "idFormat"), model.Path(run, "format"))
		}
		if run.InstrumentRef != 0 {
			if _, ok := ctx.Resolve(model.KindInstrument, run.InstrumentRef); !ok {
				r.add(run, "instrumentRef", key(run, "instrument_ref"), diag.LogicalUnresolvedRef,
					model.Path(run, "instrumentRef"), model.NewRef(model.KindInstrument, run.InstrumentRef))
			}
		}
		switch {
		case !model.IsNull(run.FileHash) && run.HashMethod == nil:
			r.add(run, "hashMethod", "", diag.LogicalPairedField, model.Path(run, "hash"), model.Path(run, "hashMethod"))
		case model.IsNull(run.FileHash) && run.HashMethod != nil:
			r.add(run, "hash", "", diag.LogicalPairedField, model.Path(run, "hashMethod"), model.Path(run, "hash"))
		}
		out = append(out, r.flush()...)
	})
	return out
}

type assayRefiner struct{}

func (assayRefiner) Name() string { return "assay" }

func (assayRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.Assays, func(a *model.Assay) {
		if len(a.MsRunRefs) == 0 {
			r.add(a, "msRunRef", "", diag.LogicalEmptyList, model.Path(a, "msRunRef"))
		}
		for _, idx := range a.MsRunRefs {
			if _, ok := ctx.Resolve(model.KindMsRun, idx); !ok {
				r.add(a, "msRunRef", key(a, "ms_run_ref"), diag.LogicalUnresolvedRef,
					model.Path(a, "msRunRef"), model.NewRef(model.KindMsRun, idx))
			}
		}
		if a.SampleRef != 0 {
			if _, ok := ctx.Resolve(model.KindSample, a.SampleRef); !ok {
				r.add(a, "sampleRef", key(a, "sample_ref"), diag.LogicalUnresolvedRef,
					model.Path(a, "sampleRef"), model.NewRef(model.KindSample, a.SampleRef))
			}
		}
		out = append(out, r.flush()...)
	})
	return out
}

// undefinedStudyVariable is the reserved name of a study variable that
// groups no assays.
const undefinedStudyVariable = "undefined"

type studyVariableRefiner struct{}

func (studyVariableRefiner) Name() string { return "studyVariable" }

func (studyVariableRefiner) Refine(meta *model.Metadata, ctx Lookup) []diag.Diagnostic {
	var out []diag.Diagnostic
	r := newReport(meta)
	each(meta.StudyVariables, func(sv *model.StudyVariable) {
		if len(sv.AssayRefs) == 0 && sv.Name != undefinedStudyVariable {
			r.add(sv, "assayRefs", "", diag.LogicalEmptyList, model.Path(sv, "assayRefs"))
		}
		for _, idx := range sv.AssayRefs {
			if _, ok := ctx.Resolve(model.KindAssay, idx); !ok {
				r.add(sv, "assayRefs", key(sv, "assay_refs"), diag.LogicalUnresolvedRef,
					model.Path(sv, "assayRefs"), model.NewRef(model.KindAssay, idx))
			}
		}
		if model.IsNull(sv.Description) {
			r.add(sv, "description", "", diag.LogicalMissingField, model.Path(sv, "description"))
		}
		out = append(out, r.flush()...)
	})
	return out
}
