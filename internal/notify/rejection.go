package notify

import "context"

const (
	rejectionSubject = "Document Rejected"
	rejectionBody    = "Greetings,\n\n" +
		"Kindly note your verification has been rejected as your name " +
		"does not match the name on the ID provided."
)

// SendDocumentRejected notifies a user that their identity document was
// rejected because the stated name did not match the document.
func SendDocumentRejected(ctx context.Context, m Mailer, to string) error {
	return m.Send(ctx, to, rejectionSubject, rejectionBody)
}
