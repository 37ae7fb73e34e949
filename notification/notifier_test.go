package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestMailNotifierSendsMessage(t *testing.T) {
	dialer := &fakeDialer{}
	n := NewMailNotifier(dialer, "farm@example.com", []string{"vet@example.com"}, nil)

	err := n.Notify(context.Background(), Message{Subject: "Insurance IR-1", Body: "APPROVED"})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)
	assert.Equal(t, []string{"Insurance IR-1"}, dialer.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"vet@example.com"}, dialer.sent[0].GetHeader("To"))
}

func TestMailNotifierWrapsDialError(t *testing.T) {
	dialErr := errors.New("connection refused")
	n := NewMailNotifier(&fakeDialer{err: dialErr}, "farm@example.com", []string{"vet@example.com"}, nil)

	err := n.Notify(context.Background(), Message{Subject: "x"})
	assert.ErrorIs(t, err, dialErr)
}

func TestMailNotifierWithoutRecipients(t *testing.T) {
	dialer := &fakeDialer{}
	n := NewMailNotifier(dialer, "farm@example.com", nil, nil)

	assert.NoError(t, n.Notify(context.Background(), Message{Subject: "x"}))
	assert.Empty(t, dialer.sent)
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.Notify(context.Background(), Message{}))
}
