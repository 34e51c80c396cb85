package refine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/internal/parser"
	"github.com/vvka-141/mztabm/internal/testing/fixtures"
)

func parsed(t *testing.T, doc string) (*model.Metadata, Lookup) {
	t.Helper()
	res, err := parser.Parse(strings.NewReader(doc), parser.DefaultOptions())
	require.NoError(t, err)
	return res.Document.Metadata, res.Context
}

func paths(errs []diag.Diagnostic) []string {
	var out []string
	for _, e := range errs {
		out = append(out, e.Path)
	}
	return out
}

// contextOf registers every element of meta in a fresh parser context.
func contextOf(meta *model.Metadata) *parser.Context {
	ctx := parser.NewContext()
	for _, k := range model.Kinds {
		for _, e := range meta.Elements(k) {
			ctx.Register(k, e.Index(), e)
		}
	}
	return ctx
}

func TestMsRun_ScanPolarity(t *testing.T) {
	meta := model.NewMetadata()
	meta.MsRuns[1] = &model.MsRun{Ref: model.NewRef(model.KindMsRun, 1), Location: "file:///run1.mzML"}

	errs := msRunRefiner{}.Refine(meta, contextOf(meta))
	require.Len(t, errs, 1)
	assert.Equal(t, "msRun[1]-scanPolarity", errs[0].Path)
	assert.Equal(t, diag.Error, errs[0].Level)

	meta.MsRuns[1].ScanPolarity = map[int]model.Parameter{
		1: {CVLabel: "MS", Accession: "MS:1000130", Name: "positive scan"},
	}
	assert.Empty(t, msRunRefiner{}.Refine(meta, contextOf(meta)))
}

func TestRun_MinimalDocumentIsClean(t *testing.T) {
	meta, ctx := parsed(t, fixtures.Minimal())
	assert.Empty(t, Run(meta, ctx))
}

func TestRun_Violations(t *testing.T) {
	tests := []struct {
		name string
		doc  *fixtures.DocumentBuilder
		want []string
		code int
	}{
		{
			name: "run without location",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-location", "null"),
			want: []string{"msRun[1]-location"},
			code: diag.LogicalMissingField.Code,
		},
		{
			name: "format without id format",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadata("ms_run[1]-id_format"),
			want: []string{"msRun[1]-idFormat"},
			code: diag.LogicalPairedField.Code,
		},
		{
			name: "hash without method",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadata("ms_run[1]-hash_method"),
			want: []string{"msRun[1]-hashMethod"},
			code: diag.LogicalPairedField.Code,
		},
		{
			name: "unresolved instrument",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-instrument_ref", "instrument[3]"),
			want: []string{"msRun[1]-instrumentRef"},
			code: diag.LogicalUnresolvedRef.Code,
		},
		{
			name: "assay with unresolved run",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("assay[1]-ms_run_ref", "ms_run[1]|ms_run[2]"),
			want: []string{"assay[1]-msRunRef"},
			code: diag.LogicalUnresolvedRef.Code,
		},
		{
			name: "assay with unresolved sample",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("assay[1]-sample_ref", "sample[9]"),
			want: []string{"assay[1]-sampleRef"},
			code: diag.LogicalUnresolvedRef.Code,
		},
		{
			name: "study variable with unresolved assay",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("study_variable[1]-assay_refs", "assay[4]"),
			want: []string{"studyVariable[1]-assayRefs"},
			code: diag.LogicalUnresolvedRef.Code,
		},
		{
			name: "study variable without description",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadata("study_variable[1]-description"),
			want: []string{"studyVariable[1]-description"},
			code: diag.LogicalMissingField.Code,
		},
		{
			name: "database without prefix",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("database[1]-prefix", "null"),
			want: []string{"database[1]-prefix"},
			code: diag.LogicalMissingField.Code,
		},
		{
			name: "no database with a version",
			doc: fixtures.NewDocumentBuilder().
				SetMetadata("database[1]", "[,, no database, null ]").
				SetMetadata("database[1]-prefix", "null").
				SetMetadata("database[1]-version", "1.0").
				SetMetadata("database[1]-uri", "null"),
			want: []string{"database[1]-version"},
			code: diag.LogicalNoDatabase.Code,
		},
		{
			name: "no database with a prefix",
			doc: fixtures.NewDocumentBuilder().
				SetMetadata("database[1]", "[,, no database, null ]").
				SetMetadata("database[1]-version", "null"),
			want: []string{"database[1]-prefix"},
			code: diag.LogicalNoDatabase.Code,
		},
		{
			name: "duplicate cv label",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("cv[2]-label", "MS"),
			want: []string{"cv[2]-label", "sample[1]-species"},
			code: diag.LogicalDuplicateCV.Code,
		},
		{
			name: "undeclared cv label",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadataPrefix("cv[6]"),
			want: []string{"sampleProcessing[1]-parameter"},
			code: diag.LogicalUndeclaredCV.Code,
		},
		{
			name: "bad publication",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("publication[1]", "pubmed:abc"),
			want: []string{"publication[1]"},
			code: diag.LogicalPublication.Code,
		},
		{
			name: "bad email",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("contact[1]-email", "jane at example"),
			want: []string{"contact[1]-email"},
			code: diag.LogicalEmail.Code,
		},
		{
			name: "software without parameter",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("software[1]", "null"),
			want: []string{"software[1]-parameter"},
			code: diag.LogicalMissingField.Code,
		},
		{
			name: "instrument without name",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadata("instrument[1]-name"),
			want: []string{"instrument[1]-name"},
			code: diag.LogicalMissingField.Code,
		},
		{
			name: "user parameter species",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("sample[1]-species[1]", "[,, human, ]"),
			want: []string{"sample[1]-species[1]"},
			code: diag.LogicalUserParam.Code,
		},
		{
			name: "summary rows without quantification unit",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadata("small_molecule-quantification_unit"),
			want: []string{"mzTab-smallMoleculeQuantificationUnit"},
			code: diag.LogicalConditional.Code,
		},
		{
			name: "evidence rows without confidence measure",
			doc: fixtures.NewDocumentBuilder().
				RemoveMetadata("id_confidence_measure[1]").
				ReplaceInLines("SEH", "\tid_confidence_measure[1]", "").
				ReplaceInLines("SME", "\t0.95\t1", "\t1"),
			want: []string{"idConfidenceMeasure"},
			code: diag.LogicalConditional.Code,
		},
		{
			name: "no software",
			doc:  fixtures.NewDocumentBuilder().RemoveMetadataPrefix("software["),
			want: []string{"software"},
			code: diag.LogicalNoElements.Code,
		},
		{
			name: "unit for undeclared column",
			doc:  fixtures.NewDocumentBuilder().SetMetadata("colunit-small_molecule", "mass=[UO, UO:0000221, dalton, ]"),
			want: []string{"colunit-small_molecule"},
			code: diag.LogicalColumnUnit.Code,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, ctx := parsed(t, tt.doc.Build())
			errs := Run(meta, ctx)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.code, errs[0].Type.Code, "%v", errs)
			for i, p := range tt.want {
				require.Greater(t, len(errs), i, "%v", errs)
				assert.True(t, strings.HasPrefix(errs[i].Path, p), "got %q want prefix %q", errs[i].Path, p)
			}
		})
	}
}

func TestRefiners_OrderByIndexThenProperty(t *testing.T) {
	meta := model.NewMetadata()
	for _, idx := range []int{3, 1} {
		meta.MsRuns[idx] = &model.MsRun{
			Ref:        model.NewRef(model.KindMsRun, idx),
			HashMethod: &model.Parameter{CVLabel: "MS", Accession: "MS:1000569", Name: "SHA-1"},
		}
	}
	errs := msRunRefiner{}.Refine(meta, contextOf(meta))
	assert.Equal(t, []string{
		"msRun[1]-hash", "msRun[1]-location", "msRun[1]-scanPolarity",
		"msRun[3]-hash", "msRun[3]-location", "msRun[3]-scanPolarity",
	}, paths(errs))
}

func TestRefiners_AreSideEffectFree(t *testing.T) {
	meta, ctx := parsed(t, fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-location", "null").Build())
	first := Run(meta, ctx)
	second := Run(meta, ctx)
	assert.Equal(t, first, second)
}

func TestStudyVariable_UndefinedMayBeEmpty(t *testing.T) {
	meta := model.NewMetadata()
	meta.StudyVariables[2] = &model.StudyVariable{
		Ref:         model.NewRef(model.KindStudyVariable, 2),
		Name:        "undefined",
		Description: "unassigned assays",
	}
	assert.Empty(t, studyVariableRefiner{}.Refine(meta, contextOf(meta)))
}

func TestAll_OneRefinerPerKind(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range All() {
		assert.False(t, seen[r.Name()], r.Name())
		seen[r.Name()] = true
	}
}

func TestRefine_LineNumbersFromMetadataKeys(t *testing.T) {
	doc := fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-instrument_ref", "instrument[3]").Build()
	meta, ctx := parsed(t, doc)
	errs := msRunRefiner{}.Refine(meta, ctx)
	require.Len(t, errs, 1)
	assert.Equal(t, meta.Lines["ms_run[1]-instrument_ref"], errs[0].Line)
	assert.Greater(t, errs[0].Line, 0)
}
