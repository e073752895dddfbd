// Package sink delivers one finished RFC 2822 message to a mail transfer
// collaborator. A sink only promises synchronous accept/reject; onward
// delivery is out of scope.
package sink

import "context"

// MailSink accepts exactly one complete message per call.
type MailSink interface {
	Deliver(ctx context.Context, message []byte) error
}
