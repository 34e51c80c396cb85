package optcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func TestBuild_GlobalName(t *testing.T) {
	col, err := ForGlobal().WithName("whatever").Build("1")
	require.NoError(t, err)
	assert.Equal(t, "opt_global_whatever", col.Header)
	assert.Equal(t, "1", col.Value)
	assert.Nil(t, col.Element)
}

func TestBuild_ElementParameter(t *testing.T) {
	assay := model.NewRef(model.KindAssay, 1)
	col, err := ForElement(assay).
		WithParameter(model.Parameter{CVLabel: "MS", Accession: "MS:128712", Name: "made up for testing"}).
		Build("1")
	require.NoError(t, err)
	assert.Equal(t, "opt_assay[1]_cv_MS:128712_made_up_for_testing", col.Header)
	require.NotNil(t, col.Param)
	assert.Equal(t, "MS:128712", col.Param.Accession)
}

func TestBuild_OtherVariants(t *testing.T) {
	run := &model.MsRun{Ref: model.NewRef(model.KindMsRun, 3)}
	col, err := ForElement(run).WithName("instrument_serial").Build("x")
	require.NoError(t, err)
	assert.Equal(t, "opt_ms_run[3]_instrument_serial", col.Header)

	col, err = ForGlobal().WithParameter(model.Parameter{CVLabel: "MS", Accession: "MS:1002217", Name: "decoy peptide"}).Build("")
	require.NoError(t, err)
	assert.Equal(t, "opt_global_cv_MS:1002217_decoy_peptide", col.Header)
}

func TestBuild_InvalidState(t *testing.T) {
	p := model.Parameter{CVLabel: "MS", Accession: "MS:1", Name: "n"}

	_, err := ForGlobal().WithName("a").WithParameter(p).Build("1")
	assert.ErrorIs(t, err, mztab.ErrInvalidState)

	_, err = ForGlobal().WithParameter(p).WithName("a").Build("1")
	assert.ErrorIs(t, err, mztab.ErrInvalidState)

	_, err = ForGlobal().WithName("a").WithName("b").Build("1")
	assert.ErrorIs(t, err, mztab.ErrInvalidState)

	_, err = ForGlobal().Build("1")
	assert.ErrorIs(t, err, mztab.ErrInvalidState)
}

func TestBuild_InvalidArgument(t *testing.T) {
	tests := []struct {
		name  string
		param model.Parameter
		field string
	}{
		{"missing label", model.Parameter{Accession: "MS:1", Name: "n"}, "label"},
		{"missing accession", model.Parameter{CVLabel: "MS", Name: "n"}, "accession"},
		{"missing name", model.Parameter{CVLabel: "MS", Accession: "MS:1"}, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ForGlobal().WithParameter(tt.param)
			require.Error(t, b.Err())
			_, err := b.Build("1")
			assert.ErrorIs(t, err, mztab.ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"made up for testing": "made_up_for_testing",
		"Retention Time (s)":  "retention_time_s_",
		"a--b__c":             "a_b_c",
		"ABC123":              "abc123",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestParse(t *testing.T) {
	id, err := Parse("opt_global_whatever")
	require.NoError(t, err)
	assert.True(t, id.Global())
	assert.Equal(t, "whatever", id.Name)
	assert.Nil(t, id.Param)

	id, err = Parse("opt_assay[1]_cv_MS:128712_made_up_for_testing")
	require.NoError(t, err)
	require.NotNil(t, id.Element)
	assert.Equal(t, model.NewRef(model.KindAssay, 1), *id.Element)
	require.NotNil(t, id.Param)
	assert.Equal(t, "MS", id.Param.CVLabel)
	assert.Equal(t, "MS:128712", id.Param.Accession)
	assert.Equal(t, "made_up_for_testing", id.Name)

	id, err = Parse("opt_global_cv_nocolon_name")
	require.NoError(t, err)
	assert.Nil(t, id.Param)
	assert.Equal(t, "cv_nocolon_name", id.Name)

	for _, bad := range []string{"opt_", "opt_global_", "opt_assay[0]_x", "opt_foo[1]_x", "opt_assay[1]", "global_x"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, mztab.ErrInvalidArgument, bad)
	}
}

func TestParse_RoundTripsBuild(t *testing.T) {
	sv := model.NewRef(model.KindStudyVariable, 2)
	col, err := ForElement(sv).WithParameter(model.Parameter{CVLabel: "MS", Accession: "MS:1000001", Name: "some term"}).Build("v")
	require.NoError(t, err)

	id, err := Parse(col.Header)
	require.NoError(t, err)
	assert.Equal(t, sv, *id.Element)
	assert.Equal(t, "MS:1000001", id.Param.Accession)
}
