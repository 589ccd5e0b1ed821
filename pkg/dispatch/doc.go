// Package dispatch runs a merge: it renders a template for every recipient
// and either sends the result through a transport or writes it for inspection.
//
// Recipients are processed strictly one after another in input order. Before the
// first recipient a real send verifies the transport once and a dry run prepares
// its output location; failure of either aborts the run before anything happens.
// Between recipients the orchestrator waits for the configured delay and, when
// RatePerSecond is set, for a token from a rate limiter.
//
// A failure for one recipient never stops the run. The recipient's fields are
// appended to the failure list, which is persisted after a real send so the
// failed subset can be merged again.
//
// Usage:
//
//	o := dispatch.New(cfg, render.NewRenderer(),
//		dispatch.WithTransport(sender),
//		dispatch.WithFailureStore(source.CSVFailureStore{Path: "data.error.csv"}),
//		dispatch.WithReporter(progress.NewConsole(os.Stdout)),
//	)
//	summary, err := o.Run(ctx, tmpl, recipients)
package dispatch
