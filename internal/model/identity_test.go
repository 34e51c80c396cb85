package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mztabm/pkg/mztab"
)

func TestRef_Identity(t *testing.T) {
	a := NewRef(KindAssay, 1)
	b := NewRef(KindAssay, 1)
	c := NewRef(KindMsRun, 1)

	assert.Equal(t, 1, a.Index())
	assert.Equal(t, "assay[1]", a.String())
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestRef_ParamsUnsupported(t *testing.T) {
	_, err := NewRef(KindMsRun, 3).Params("format")
	require.Error(t, err)
	assert.True(t, errors.Is(err, mztab.ErrUnsupportedOperation))
	assert.Contains(t, err.Error(), "Params")
}

func TestElementIdentityMatchesRef(t *testing.T) {
	m := NewMetadata()
	e, err := m.Element(KindMsRun, 7)
	require.NoError(t, err)

	run, ok := e.(*MsRun)
	require.True(t, ok)
	assert.Equal(t, NewRef(KindMsRun, 7).Hash(), run.Hash())
	assert.Equal(t, "ms_run[7]", run.String())
	assert.Equal(t, "msRun[7]-scanPolarity", Path(run, "scanPolarity"))

	again, err := m.Element(KindMsRun, 7)
	require.NoError(t, err)
	assert.Same(t, run, again)
}

func TestMetadata_ElementsAscendingIndex(t *testing.T) {
	m := NewMetadata()
	for _, idx := range []int{5, 2, 9} {
		_, err := m.Element(KindAssay, idx)
		require.NoError(t, err)
	}
	var got []int
	for _, e := range m.Elements(KindAssay) {
		got = append(got, e.Index())
	}
	assert.Equal(t, []int{2, 5, 9}, got)
}

func TestMsRun_Params(t *testing.T) {
	run := &MsRun{
		Ref:    NewRef(KindMsRun, 1),
		Format: &Parameter{CVLabel: "MS", Accession: "MS:1000584", Name: "mzML file"},
		ScanPolarity: map[int]Parameter{
			2: {CVLabel: "MS", Accession: "MS:1000129", Name: "negative scan"},
			1: {CVLabel: "MS", Accession: "MS:1000130", Name: "positive scan"},
		},
	}
	ps, err := run.Params("scanPolarity")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "MS:1000130", ps[0].Accession)

	ps, err = run.Params("idFormat")
	require.NoError(t, err)
	assert.Empty(t, ps)

	_, err = run.Params("nope")
	assert.ErrorIs(t, err, mztab.ErrInvalidArgument)
}

func TestParseRef(t *testing.T) {
	r, err := ParseRef("ms_run[12]", KindMsRun)
	require.NoError(t, err)
	assert.Equal(t, NewRef(KindMsRun, 12), r)

	for _, bad := range []string{"ms_run[0]", "ms_run[-1]", "ms_run[x]", "ms_run1", "assay[1]", "ms_run[3000000000]"} {
		_, err := ParseRef(bad, KindMsRun)
		assert.ErrorIs(t, err, ErrRefSyntax, bad)
	}
}

func TestParseSpectraRefs(t *testing.T) {
	refs, err := ParseSpectraRefs("ms_run[1]:index=5|ms_run[2]:scan=7")
	require.NoError(t, err)
	assert.Equal(t, []SpectraRef{{MsRun: 1, NativeID: "index=5"}, {MsRun: 2, NativeID: "scan=7"}}, refs)

	_, err = ParseSpectraRefs("ms_run[1]")
	assert.Error(t, err)
}

func TestKindBean(t *testing.T) {
	assert.Equal(t, "msRun", KindMsRun.Bean())
	assert.Equal(t, "idConfidenceMeasure", KindIDConfidenceMeasure.Bean())
	k, ok := KindFromBean("studyVariable")
	require.True(t, ok)
	assert.Equal(t, KindStudyVariable, k)
}

var (
	_ Element = (*SampleProcessing)(nil)
	_ Element = (*Instrument)(nil)
	_ Element = (*Software)(nil)
	_ Element = (*Publication)(nil)
	_ Element = (*Contact)(nil)
	_ Element = (*URI)(nil)
	_ Element = (*MsRun)(nil)
	_ Element = (*Sample)(nil)
	_ Element = (*Assay)(nil)
	_ Element = (*StudyVariable)(nil)
	_ Element = (*CV)(nil)
	_ Element = (*Database)(nil)
	_ Element = (*ParamElement)(nil)
)

func TestMsRun_FileHashDoesNotShadowIdentity(t *testing.T) {
	run := &MsRun{Ref: NewRef(KindMsRun, 2), FileHash: "de9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3"}
	var e Element = run
	assert.Equal(t, NewRef(KindMsRun, 2).Hash(), e.Hash())
	assert.Equal(t, "de9f2c7fd25e1b3afad3e85a0bd17d9b100db4b3", run.FileHash)
}
