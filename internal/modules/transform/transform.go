// Package transform provides implementations for transform modules.
// Transform modules map one text line to one text line; a failure on any
// line aborts the whole pipeline run.
package transform

import (
	"github.com/lineflow/runtime/pkg/stream"
)

// Module represents a transform module that maps one line to one line.
type Module interface {
	// Apply transforms a single line. Returning an error aborts the run
	// at the current line.
	Apply(line string) (string, error)
}

// Chain composes an ordered list of transform modules into a single
// stream.Transform. An empty chain is the identity transform. Nil entries
// are skipped.
func Chain(modules []Module) stream.Transform {
	return func(line string) (string, error) {
		var err error
		for _, m := range modules {
			if m == nil {
				continue
			}
			line, err = m.Apply(line)
			if err != nil {
				return "", err
			}
		}
		return line, nil
	}
}
