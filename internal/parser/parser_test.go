package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/mztabm/internal/diag"
	"github.com/vvka-141/mztabm/internal/model"
	"github.com/vvka-141/mztabm/internal/testing/fixtures"
	"github.com/vvka-141/mztabm/pkg/mztab"
)

func parse(t *testing.T, text string) *Result {
	t.Helper()
	res, err := Parse(strings.NewReader(text), DefaultOptions())
	require.NoError(t, err)
	return res
}

func codes(res *Result) []int {
	var out []int
	for _, d := range res.Diagnostics() {
		out = append(out, d.Type.Code)
	}
	return out
}

func TestParse_MinimalDocument(t *testing.T) {
	res := parse(t, fixtures.Minimal())
	assert.Empty(t, res.Diagnostics())

	m := res.Document.Metadata
	assert.Equal(t, "2.0.0-M", m.Version)
	assert.Equal(t, "MTBLS263", m.ID)
	require.NotNil(t, m.QuantificationMethod)
	assert.Equal(t, "MS:1001834", m.QuantificationMethod.Accession)

	run := m.MsRuns[1]
	require.NotNil(t, run)
	assert.Equal(t, "file:///data/run1.mzML", run.Location)
	assert.Equal(t, 1, run.InstrumentRef)
	assert.Equal(t, "MS:1000130", run.ScanPolarity[1].Accession)

	assay := m.Assays[1]
	require.NotNil(t, assay)
	assert.Equal(t, []int{1}, assay.MsRunRefs)
	assert.Equal(t, 1, assay.SampleRef)
	assert.Equal(t, []int{1}, m.StudyVariables[1].AssayRefs)
	assert.Len(t, m.CVs, 6)
	assert.Equal(t, []string{"pubmed:21063943", "doi:10.1007/978-1-60761-987-1_6"}, m.Publications[1].Items)
	assert.Equal(t, "Fragment tolerance = 0.1 Da", m.Software[1].Settings[1])
	require.Len(t, m.ColumnUnits, 1)
	assert.Equal(t, "theoretical_neutral_mass", m.ColumnUnits[0].Column)

	assert.Equal(t, 1, res.Context.RowCount(model.SectionSummary))
	assert.Equal(t, 1, res.Context.RowCount(model.SectionFeature))
	assert.Equal(t, 1, res.Context.RowCount(model.SectionEvidence))
	assert.Contains(t, res.Context.Columns(model.SectionSummary), "opt_global_note")

	sml := res.Document.Section(model.SectionSummary)
	v, ok := sml.Value(sml.Records[0], "chemical_name")
	require.True(t, ok)
	assert.Equal(t, "D-Glucose", v)

	require.Len(t, res.Document.Comments, 1)
	assert.Equal(t, "glucose only", res.Document.Comments[0].Text)
}

func TestParse_ContextSharesMetadataElements(t *testing.T) {
	res := parse(t, fixtures.Minimal())
	e, ok := res.Context.Resolve(model.KindMsRun, 1)
	require.True(t, ok)
	assert.Same(t, res.Document.Metadata.MsRuns[1], e)

	_, ok = res.Context.Resolve(model.KindMsRun, 2)
	assert.False(t, ok)
	assert.Len(t, res.Context.AllOf(model.KindCV), 6)
}

func TestParse_LineErrorsAreAccumulated(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want diag.Type
	}{
		{"unknown prefix", fixtures.NewDocumentBuilder().InsertLine(3, "XYZ", "foo").Build(), diag.FormatLinePrefix},
		{"zero index", fixtures.NewDocumentBuilder().SetMetadata("ms_run[0]-location", "file:///x").Build(), diag.FormatIndex},
		{"negative index", fixtures.NewDocumentBuilder().SetMetadata("assay[-2]", "a").Build(), diag.FormatIndex},
		{"non-numeric index", fixtures.NewDocumentBuilder().SetMetadata("sample[x]", "a").Build(), diag.FormatIndex},
		{"index out of range", fixtures.NewDocumentBuilder().SetMetadata("sample[4294967296]", "a").Build(), diag.FormatIndex},
		{"unknown kind", fixtures.NewDocumentBuilder().SetMetadata("widget[1]", "a").Build(), diag.FormatMetadataKey},
		{"unknown sub key", fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-colour", "a").Build(), diag.FormatMetadataKey},
		{"missing sub index", fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-scan_polarity", "[MS, MS:1000130, positive scan, ]").Build(), diag.FormatMetadataKey},
		{"malformed parameter", fixtures.NewDocumentBuilder().SetMetadata("ms_run[1]-format", "[MS, MS:1000584, mzML file").Build(), diag.FormatParam},
		{"bad reference", fixtures.NewDocumentBuilder().SetMetadata("assay[1]-ms_run_ref", "run[1]").Build(), diag.FormatReference},
		{"relative uri", fixtures.NewDocumentBuilder().SetMetadata("uri[1]", "not a uri").Build(), diag.FormatURI},
		{"empty value", fixtures.NewDocumentBuilder().SetMetadata("title", "").Build(), diag.FormatEmptyValue},
		{"short metadata line", fixtures.NewDocumentBuilder().InsertLine(3, "MTD", "title").Build(), diag.FormatMetadataLine},
		{"unknown colunit section", fixtures.NewDocumentBuilder().SetMetadata("colunit-peptide", "x=[UO, UO:1, y, ]").Build(), diag.FormatMetadataKey},
		{"bad integer cell", fixtures.NewDocumentBuilder().ReplaceInLines("SMF", "\t181.0707\t1\t", "\t181.0707\tone\t").Build(), diag.FormatInteger},
		{"bad double cell", fixtures.NewDocumentBuilder().ReplaceInLines("SML", "180.0634", "heavy").Build(), diag.FormatDouble},
		{"bad parameter cell", fixtures.NewDocumentBuilder().ReplaceInLines("SME", "[MS, MS:1000511, ms level, 1]", "ms level").Build(), diag.FormatParam},
		{"mandatory null cell", fixtures.NewDocumentBuilder().ReplaceInLines("SME", "ms_run[1]:index=5", "null").Build(), diag.FormatNullCell},
		{"empty cell", fixtures.NewDocumentBuilder().ReplaceInLines("SML", "\tD-Glucose\t", "\t\t").Build(), diag.FormatEmptyCell},
		{"bad spectra ref", fixtures.NewDocumentBuilder().ReplaceInLines("SME", "ms_run[1]:index=5", "index=5").Build(), diag.FormatSpectraRef},
		{"undeclared spectra run", fixtures.NewDocumentBuilder().ReplaceInLines("SME", "ms_run[1]:index=5", "ms_run[4]:index=5").Build(), diag.CrossCheckSpectraRun},
		{"undeclared abundance column", fixtures.NewDocumentBuilder().ReplaceInLines("SMH", "abundance_assay[1]", "abundance_assay[2]").Build(), diag.CrossCheckUndeclaredColumn},
		{"undeclared optional column scope", fixtures.NewDocumentBuilder().ReplaceInLines("SMH", "opt_global_note", "opt_ms_run[3]_note").Build(), diag.CrossCheckUndeclaredColumn},
		{"malformed optional column", fixtures.NewDocumentBuilder().ReplaceInLines("SMH", "opt_global_note", "opt_run[1]_note").Build(), diag.FormatOptionalColumn},
		{"unknown column", fixtures.NewDocumentBuilder().ReplaceInLines("SMH", "opt_global_note", "note").Build(), diag.FormatUnknownColumn},
		{"duplicate column", fixtures.NewDocumentBuilder().ReplaceInLines("SMH", "opt_global_note", "smiles").Build(), diag.FormatDuplicateColumn},
		{"missing column", fixtures.NewDocumentBuilder().ReplaceInLines("SFH", "\tisotopomer", "\topt_global_isotopomer").Build(), diag.FormatMissingColumn},
		{"column count", fixtures.NewDocumentBuilder().ReplaceInLines("SMF", "\t1.5e6", "").Build(), diag.FormatColumnCount},
		{"row before header", fixtures.NewDocumentBuilder().RemoveLines("SEH").Build(), diag.FormatRowBeforeHeader},
		{"row out of order", fixtures.NewDocumentBuilder().AppendLine("SML", "2").Build(), diag.FormatSectionOrder},
		{"metadata after table", fixtures.NewDocumentBuilder().AppendLine("MTD", "title", "late").Build(), diag.FormatSectionOrder},
		{"dangling SMF_ID_REFS", fixtures.NewDocumentBuilder().ReplaceInLines("SML", "\t1\t1\t", "\t1\t1|7\t").Build(), diag.CrossCheckRowRef},
		{"version not first", fixtures.NewDocumentBuilder().RemoveMetadata("mzTab-ID").InsertLine(0, "MTD", "mzTab-ID", "first").Build(), diag.FormatVersionPosition},
		{"newer minor version", fixtures.NewDocumentBuilder().SetMetadata("mzTab-version", "2.1.0-M").Build(), diag.FormatMinorVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parse(t, tt.doc)
			assert.Contains(t, codes(res), tt.want.Code, "diagnostics: %v", res.Diagnostics())
			assert.NotNil(t, res.Document)
		})
	}
}

func TestParse_DuplicateKeyFirstWins(t *testing.T) {
	doc := fixtures.NewDocumentBuilder().InsertLine(2, "MTD", "title", "second").Build()
	res := parse(t, doc)

	require.Equal(t, []int{diag.FormatDuplicateKey.Code}, codes(res))
	assert.Equal(t, "second", res.Document.Metadata.Title)
	d := res.Diagnostics()[0]
	assert.Equal(t, 4, d.Line)
}

func TestParse_BadFieldDoesNotStopLine(t *testing.T) {
	doc := fixtures.NewDocumentBuilder().
		SetMetadata("ms_run[1]-format", "[MS, MS:1000584").
		Build()
	res := parse(t, doc)

	assert.Equal(t, []int{diag.FormatParam.Code}, codes(res))
	run := res.Document.Metadata.MsRuns[1]
	assert.Nil(t, run.Format)
	assert.Equal(t, "file:///data/run1.mzML", run.Location)
}

func TestParse_PartialRowKeepsParsedCells(t *testing.T) {
	doc := fixtures.NewDocumentBuilder().ReplaceInLines("SMF", "\t120.5\t118.0\t123.0\t1.5e6", "").Build()
	res := parse(t, doc)

	require.Contains(t, codes(res), diag.FormatColumnCount.Code)
	smf := res.Document.Section(model.SectionFeature)
	require.Len(t, smf.Records, 1)
	assert.Len(t, smf.Records[0].Cells, 7)
	_, ok := smf.Value(smf.Records[0], "retention_time_in_seconds")
	assert.False(t, ok)
}

func TestParse_DuplicateRowID(t *testing.T) {
	minimal := fixtures.Minimal()
	var sml string
	for _, l := range strings.Split(minimal, "\n") {
		if strings.HasPrefix(l, "SML\t") {
			sml = l
		}
	}
	doc := strings.Replace(minimal, sml, sml+"\n"+sml, 1)
	res := parse(t, doc)
	assert.Equal(t, []int{diag.CrossCheckDuplicateID.Code}, codes(res))
	assert.Equal(t, 2, res.Context.RowCount(model.SectionSummary))
}

func TestParse_DoubleSpecialValues(t *testing.T) {
	for _, v := range []string{"NaN", "INF", "-INF", "1e-3"} {
		doc := fixtures.NewDocumentBuilder().ReplaceInLines("SML", "\t1.5e6\t1.5e6\t", "\t"+v+"\t1.5e6\t").Build()
		res := parse(t, doc)
		assert.Empty(t, res.Diagnostics(), v)
	}
}

func TestParse_FatalConditions(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unparseable version", fixtures.NewDocumentBuilder().SetMetadata("mzTab-version", "two").Build(), mztab.ErrUnsupportedVersion},
		{"missing suffix", fixtures.NewDocumentBuilder().SetMetadata("mzTab-version", "2.0.0").Build(), mztab.ErrUnsupportedVersion},
		{"unsupported major", fixtures.NewDocumentBuilder().SetMetadata("mzTab-version", "1.0.0-M").Build(), mztab.ErrUnsupportedVersion},
		{"no summary section", fixtures.NewDocumentBuilder().RemoveLines("SMH", "SML").Build(), mztab.ErrMissingSection},
		{"no metadata", "SMH\tSML_ID\nSML\t1\n", mztab.ErrMissingSection},
		{"empty input", "", mztab.ErrMissingSection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tt.doc), DefaultOptions())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, res)
		})
	}
}

func TestParse_Overflow(t *testing.T) {
	b := fixtures.NewDocumentBuilder()
	for i := 0; i < 10; i++ {
		b.InsertLine(1, "XYZ", "bad")
	}
	opts := DefaultOptions()
	opts.MaxErrors = 3

	res, err := Parse(strings.NewReader(b.Build()), opts)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, mztab.ErrOverflow)

	var overflow *diag.OverflowError
	require.True(t, errors.As(err, &overflow))
	assert.Equal(t, 3, overflow.Max)
}

func TestParse_Encoding(t *testing.T) {
	doc := fixtures.NewDocumentBuilder().SetMetadata("title", "caf\xe9").Build()
	opts := DefaultOptions()
	opts.Encoding = "ISO-8859-1"

	res, err := Parse(bytes.NewReader([]byte(doc)), opts)
	require.NoError(t, err)
	assert.Equal(t, "café", res.Document.Metadata.Title)
	assert.Empty(t, res.Diagnostics())

	// The same bytes are not valid UTF-8.
	res, err = Parse(bytes.NewReader([]byte(doc)), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{diag.FormatEncoding.Code}, codes(res))
}

func TestParse_UnreadableInput(t *testing.T) {
	_, err := Parse(iotest.ErrReader(errors.New("disk on fire")), DefaultOptions())
	assert.ErrorIs(t, err, mztab.ErrUnreadableInput)

	opts := DefaultOptions()
	opts.Encoding = "no-such-charset"
	_, err = Parse(strings.NewReader(fixtures.Minimal()), opts)
	assert.ErrorIs(t, err, mztab.ErrUnreadableInput)
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(t.TempDir()+"/missing.mztab", DefaultOptions())
	assert.ErrorIs(t, err, mztab.ErrInputNotFound)
}

func TestParseVersion(t *testing.T) {
	major, minor, patch, err := ParseVersion("2.0.0-M")
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 0}, []int{major, minor, patch})

	for _, bad := range []string{"2.0-M", "2.0.0", "a.b.c-M", "2.-1.0-M"} {
		_, _, _, err := ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestContext_RegisterReplaces(t *testing.T) {
	c := NewContext()
	first := &model.MsRun{Ref: model.NewRef(model.KindMsRun, 2)}
	second := &model.MsRun{Ref: model.NewRef(model.KindMsRun, 2), Location: "file:///b"}
	c.Register(model.KindMsRun, 2, first)
	c.Register(model.KindMsRun, 2, second)
	c.Register(model.KindMsRun, 1, &model.MsRun{Ref: model.NewRef(model.KindMsRun, 1)})

	e, ok := c.Resolve(model.KindMsRun, 2)
	require.True(t, ok)
	assert.Same(t, second, e)

	all := c.AllOf(model.KindMsRun)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Index())
	assert.Equal(t, 2, all[1].Index())
	assert.Empty(t, c.AllOf(model.KindAssay))
}
