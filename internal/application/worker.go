package application

import "context"

// Worker supervises long-running monitors. Start blocks until every monitor
// has ended or ctx is canceled.
type Worker interface {
	Start(ctx context.Context)
}
