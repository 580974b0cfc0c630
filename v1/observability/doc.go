// Package observability defines the observer contract shared by all packages
// in this module.
//
// Clients accept an optional Observer in their configuration and notify it
// about every operation they perform (network calls, encodes, decodes) with
// timing, sizing and error information. Observers decouple the clients from
// any particular metrics or tracing backend.
//
// The metrics package ships a Prometheus-backed Observer. Applications can
// also provide their own:
//
//	type logObserver struct{ log *zap.Logger }
//
//	func (o logObserver) ObserveOperation(op observability.OperationContext) {
//	    o.log.Debug("operation",
//	        zap.String("component", op.Component),
//	        zap.String("operation", op.Operation),
//	        zap.Duration("duration", op.Duration),
//	        zap.Error(op.Error),
//	    )
//	}
package observability
