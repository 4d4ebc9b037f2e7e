// Package obs provides minimal operation timing around the pipeline's
// slower steps (file conversion, collaborator round trips).
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// SourceKey tags log lines with the file or request the operation ran for.
const SourceKey ctxKey = "source"

// WithSource attaches a provenance label to the context for timing logs.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// Time logs the duration and outcome of a named operation:
//
//	defer obs.Time(ctx, "convert.export")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	source, _ := ctx.Value(SourceKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("source=%s op=%s dur=%dms err=%v", source, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("source=%s op=%s dur=%dms", source, name, dur.Milliseconds())
	}
}
