package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameter_EqualIgnoresValue(t *testing.T) {
	a := Parameter{CVLabel: "MS", Accession: "MS:1000584", Name: "mzML file", Value: "1"}
	b := Parameter{CVLabel: "MS", Accession: "MS:1000584", Name: "mzML file", Value: "2"}
	c := Parameter{CVLabel: "MS", Accession: "MS:1000585", Name: "mzML file", Value: "1"}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.False(t, a.Equal(c))
}

func TestParseParameter(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Parameter
		wantErr error
	}{
		{
			name:  "full CV term",
			input: "[MS, MS:1000584, mzML file, ]",
			want:  Parameter{CVLabel: "MS", Accession: "MS:1000584", Name: "mzML file"},
		},
		{
			name:  "value kept",
			input: "[MS, MS:1002217, decoy peptide, 0.05]",
			want:  Parameter{CVLabel: "MS", Accession: "MS:1002217", Name: "decoy peptide", Value: "0.05"},
		},
		{
			name:  "user parameter",
			input: "[,,Progenesis QI,]",
			want:  Parameter{Name: "Progenesis QI"},
		},
		{
			name:  "comma in name",
			input: "[MS, MS:1001477, SpectraST, library, ]",
			want:  Parameter{CVLabel: "MS", Accession: "MS:1001477", Name: "SpectraST, library"},
		},
		{
			name:  "quoted comma in name",
			input: `[CHEBI, CHEBI:1, "a, b", x]`,
			want:  Parameter{CVLabel: "CHEBI", Accession: "CHEBI:1", Name: "a, b", Value: "x"},
		},
		{
			name:  "unspaced comma in name",
			input: "[CHEBI, CHEBI:27923, 2,4-dinitrophenol, ]",
			want:  Parameter{CVLabel: "CHEBI", Accession: "CHEBI:27923", Name: "2,4-dinitrophenol"},
		},
		{
			name:  "quoted name kept verbatim",
			input: `[CHEBI, CHEBI:1, "a,b", ]`,
			want:  Parameter{CVLabel: "CHEBI", Accession: "CHEBI:1", Name: "a,b"},
		},
		{
			name:  "comma in value",
			input: "[MS, MS:1000001, some term, 1,5]",
			want:  Parameter{CVLabel: "MS", Accession: "MS:1000001", Name: "some term", Value: "1,5"},
		},
		{
			name:  "quoted value",
			input: `[MS, MS:1000001, some term, "1, 5"]`,
			want:  Parameter{CVLabel: "MS", Accession: "MS:1000001", Name: "some term", Value: "1, 5"},
		},
		{name: "no brackets", input: "MS, MS:1, n, ", wantErr: ErrParamBrackets},
		{name: "nested brackets", input: "[MS, [MS:1], n, ]", wantErr: ErrParamBrackets},
		{name: "too few fields", input: "[MS, MS:1, n]", wantErr: ErrParamFields},
		{name: "empty name", input: "[MS, MS:1, , ]", wantErr: ErrParamName},
		{name: "label without accession", input: "[MS, , name, ]", wantErr: ErrParamCV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseParameter(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParameter_StringRoundTrip(t *testing.T) {
	for _, in := range []Parameter{
		{CVLabel: "MS", Accession: "MS:1000584", Name: "mzML file"},
		{Name: "user term", Value: "42"},
		{CVLabel: "MS", Accession: "MS:1001477", Name: "SpectraST, library"},
		{CVLabel: "CHEBI", Accession: "CHEBI:27923", Name: "2,4-dinitrophenol"},
		{CVLabel: "MS", Accession: "MS:1000001", Name: "some term", Value: "1, 5"},
	} {
		out, err := ParseParameter(in.String())
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestParseParameter_CommaNameEqualsTerm(t *testing.T) {
	term := Parameter{CVLabel: "CHEBI", Accession: "CHEBI:27923", Name: "2,4-dinitrophenol"}
	for _, in := range []string{
		"[CHEBI, CHEBI:27923, 2,4-dinitrophenol, ]",
		`[CHEBI, CHEBI:27923, "2,4-dinitrophenol", 12.5]`,
	} {
		got, err := ParseParameter(in)
		require.NoError(t, err, in)
		assert.True(t, term.Equal(got), "%s parsed as %+v", in, got)
	}
}

func TestParseParameterList(t *testing.T) {
	ps, err := ParseParameterList("[MS, MS:1000130, positive scan, ]|[MS, MS:1000129, negative scan, ]")
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "MS:1000129", ps[1].Accession)

	ps, err = ParseParameterList("null")
	require.NoError(t, err)
	assert.Empty(t, ps)

	ps, err = ParseParameterList("[MS, MS:1, a, ]|broken")
	assert.ErrorIs(t, err, ErrParamBrackets)
	assert.Len(t, ps, 1)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(""))
	assert.True(t, IsNull("null"))
	assert.True(t, IsNull(" NULL "))
	assert.False(t, IsNull("nul"))
}
