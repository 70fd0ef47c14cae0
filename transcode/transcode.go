// Package transcode implements lazy, pull-driven conversions between
// encodings, grounded directly on original_source/src/encoding/conv's
// iterator-of-Result types (WcToUniIter, WcToUniIter2, MbsToWcIter2,
// WcsToMbIter). Each constructor here returns a value satisfying
// strffi.Transcoder[Dst]: a single Next() method that decodes exactly as
// much of the source as is needed to produce the next destination unit,
// without ever buffering the whole string (spec.md §4.6).
//
// Once a transcoder's Next reports an error it is fused: every subsequent
// call reports more=false, matching original_source's `self.iter = None`
// pattern of disabling the source iterator after the first error.
package transcode

// fused marks a transcoder as permanently exhausted after its first error,
// the behaviour every transcoder in this package shares.
type fused struct {
	done bool
}

func (f *fused) shouldStop() bool { return f.done }

func (f *fused) stop() { f.done = true }
