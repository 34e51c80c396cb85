// Package diag is the error model shared by every validation stage.
//
// A diagnostic is a typed record (Type), a severity (Level), the 1-based
// source line it refers to (-1 when it is not tied to a line), an optional
// element path such as "msRun[1]-location" and a message formatted from the
// type's template and positional arguments.
//
// Diagnostics accumulate in a List bounded by a maximum size. Adding to a
// full List fails with an *OverflowError, the only condition that makes the
// parser stop early. Everything else is collected and reported together,
// then narrowed with Filter:
//
//	list := diag.NewList(300)
//	if err := list.Add(diag.New(diag.FormatLinePrefix, 12, "XYZ")); err != nil {
//	    return err // overflow: stop processing
//	}
//	shown, err := list.Filter(diag.Warn) // Warn + Error
package diag
