package fixtures

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinimal_HasAllSections(t *testing.T) {
	doc := Minimal()
	for _, prefix := range []string{"MTD\tmzTab-version\t2.0.0-M", "\nSMH\t", "\nSML\t", "\nSFH\t", "\nSMF\t", "\nSEH\t", "\nSME\t"} {
		assert.Contains(t, doc, prefix)
	}
}

func TestDocumentBuilder_SetMetadata(t *testing.T) {
	doc := NewDocumentBuilder().
		SetMetadata("ms_run[1]-location", "null").
		SetMetadata("ms_run[2]-location", "file:///two.mzML").
		Build()

	assert.Contains(t, doc, "MTD\tms_run[1]-location\tnull\n")
	assert.NotContains(t, doc, "file:///data/run1.mzML")

	i := strings.Index(doc, "ms_run[2]-location")
	j := strings.Index(doc, "SMH\t")
	assert.True(t, i > 0 && i < j, "new key must precede the tables")
}

func TestDocumentBuilder_Remove(t *testing.T) {
	doc := NewDocumentBuilder().
		RemoveMetadata("ms_run[1]-scan_polarity[1]").
		RemoveMetadataPrefix("cv[").
		RemoveLines("SFH", "SMF").
		Build()

	assert.NotContains(t, doc, "scan_polarity")
	assert.NotContains(t, doc, "cv[1]-label")
	assert.NotContains(t, doc, "\nSMF\t")
	assert.Contains(t, doc, "\nSME\t")
}

func TestDocumentBuilder_DoesNotMutateMinimal(t *testing.T) {
	before := Minimal()
	NewDocumentBuilder().SetMetadata("title", "changed").Build()
	assert.Equal(t, before, Minimal())
}
