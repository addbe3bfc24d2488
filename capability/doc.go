// Package capability probes the runtime for rendering capability and
// produces an immutable [Snapshot].
//
// Probes never fail loudly: a probe that errors or panics is read as
// "capability absent". A [Detector] runs the probes once per session and
// re-runs them only when the host calls [Detector.Redetect].
//
// WebGL probing needs a GPU prober. Register one with a blank import:
//
//	import _ "github.com/gogpu/fx/capability/gpuprobe"
//
// Without a registered prober WebGL and WebGL2 report unsupported.
package capability
