package fixtures

import "strings"

// DocumentBuilder provides a fluent API for deriving test documents from the
// minimal valid document.
//
// Example usage:
//
//	doc := NewDocumentBuilder().
//	    SetMetadata("ms_run[1]-location", "null").
//	    RemoveMetadata("ms_run[1]-scan_polarity[1]").
//	    Build()
type DocumentBuilder struct {
	lines []string
}

// NewDocumentBuilder starts from the minimal valid document.
func NewDocumentBuilder() *DocumentBuilder {
	lines := make([]string, len(minimal))
	copy(lines, minimal)
	return &DocumentBuilder{lines: lines}
}

// SetMetadata replaces the value of key, or appends the key after the last
// metadata line.
func (b *DocumentBuilder) SetMetadata(key, value string) *DocumentBuilder {
	line := "MTD\t" + key + "\t" + value
	last := -1
	for i, l := range b.lines {
		if !strings.HasPrefix(l, "MTD\t") {
			continue
		}
		last = i
		if metadataKey(l) == key {
			b.lines[i] = line
			return b
		}
	}
	return b.insert(last+1, line)
}

// RemoveMetadata deletes every metadata line whose key equals one of keys.
func (b *DocumentBuilder) RemoveMetadata(keys ...string) *DocumentBuilder {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	return b.filter(func(l string) bool {
		return strings.HasPrefix(l, "MTD\t") && drop[metadataKey(l)]
	})
}

// RemoveMetadataPrefix deletes every metadata line whose key starts with prefix.
func (b *DocumentBuilder) RemoveMetadataPrefix(prefix string) *DocumentBuilder {
	return b.filter(func(l string) bool {
		return strings.HasPrefix(l, "MTD\t") && strings.HasPrefix(metadataKey(l), prefix)
	})
}

// RemoveLines deletes every line starting with one of the given line prefixes
// (e.g. "SFH", "SMF").
func (b *DocumentBuilder) RemoveLines(prefixes ...string) *DocumentBuilder {
	return b.filter(func(l string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(l, p+"\t") || l == p {
				return true
			}
		}
		return false
	})
}

// AppendLine appends a tab-separated line at the end of the document.
func (b *DocumentBuilder) AppendLine(fields ...string) *DocumentBuilder {
	b.lines = append(b.lines, strings.Join(fields, "\t"))
	return b
}

// InsertLine inserts a tab-separated line at position i (0-based).
func (b *DocumentBuilder) InsertLine(i int, fields ...string) *DocumentBuilder {
	return b.insert(i, strings.Join(fields, "\t"))
}

// ReplaceInLines substitutes old with new on every line starting with prefix.
func (b *DocumentBuilder) ReplaceInLines(prefix, old, new string) *DocumentBuilder {
	for i, l := range b.lines {
		if strings.HasPrefix(l, prefix+"\t") {
			b.lines[i] = strings.ReplaceAll(l, old, new)
		}
	}
	return b
}

// Build returns the document text.
func (b *DocumentBuilder) Build() string {
	return strings.Join(b.lines, "\n") + "\n"
}

func (b *DocumentBuilder) insert(i int, line string) *DocumentBuilder {
	if i < 0 || i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = line
	return b
}

func (b *DocumentBuilder) filter(drop func(string) bool) *DocumentBuilder {
	kept := b.lines[:0]
	for _, l := range b.lines {
		if !drop(l) {
			kept = append(kept, l)
		}
	}
	b.lines = kept
	return b
}

func metadataKey(line string) string {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
