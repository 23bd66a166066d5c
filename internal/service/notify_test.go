package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"StudioLeads/internal/model/dto"
	pkgerrors "StudioLeads/pkg/errors"
	"StudioLeads/pkg/mail"
)

func newTestNotifyService(client mail.Client) *NotifyService {
	return NewNotifyService(NotifyConfig{
		From:     "studio@pixelpulse.in",
		To:       "leads@pixelpulse.in",
		SiteName: "PixelPulse Studio",
	}, client)
}

func validContactRequest() dto.ContactRequest {
	return dto.ContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@x.com",
		Phone:   "+91 98765 43210",
		Company: "Rao Clinic",
		Message: "We need a new website for the clinic.",
		Service: "Web Design",
	}
}

func TestHandleContactSendsBothEmails(t *testing.T) {
	mock := mail.NewMockClient()
	svc := newTestNotifyService(mock)

	require.NoError(t, svc.HandleContact(context.Background(), validContactRequest()))
	require.Equal(t, 2, mock.SentCount())

	internal := mock.Sent[0]
	require.Equal(t, "leads@pixelpulse.in", internal.To)
	require.Equal(t, "asha@x.com", internal.ReplyTo)
	require.Equal(t, "New Contact Form Submission from Asha Rao", internal.Subject)
	require.Contains(t, internal.TextBody, "Rao Clinic")
	require.Contains(t, internal.TextBody, "Web Design")
	require.Contains(t, internal.HTMLBody, "mailto:asha@x.com")

	reply := mock.Sent[1]
	require.Equal(t, "asha@x.com", reply.To)
	require.Equal(t, "Thank you for contacting PixelPulse Studio", reply.Subject)
	// 自动回复引用提交者的原话
	require.Contains(t, reply.TextBody, "We need a new website for the clinic.")
}

func TestHandleContactMissingFields(t *testing.T) {
	mock := mail.NewMockClient()
	svc := newTestNotifyService(mock)

	cases := []dto.ContactRequest{
		{Email: "asha@x.com", Message: "hi"},
		{Name: "Asha", Message: "hi"},
		{Name: "Asha", Email: "asha@x.com"},
		{},
	}
	for _, req := range cases {
		err := svc.HandleContact(context.Background(), req)
		require.ErrorIs(t, err, pkgerrors.MissingFields)
	}

	// 校验失败时一封邮件都不发
	require.Equal(t, 0, mock.SentCount())
}

func TestHandleContactInvalidEmail(t *testing.T) {
	mock := mail.NewMockClient()
	svc := newTestNotifyService(mock)

	for _, email := range []string{"not-an-email", "a@b", "@b.com", "a b@c.com"} {
		req := validContactRequest()
		req.Email = email
		err := svc.HandleContact(context.Background(), req)
		require.ErrorIs(t, err, pkgerrors.InvalidEmail, "email %q", email)
	}

	require.Equal(t, 0, mock.SentCount())
}

func TestHandleContactOptionalLinesOmitted(t *testing.T) {
	mock := mail.NewMockClient()
	svc := newTestNotifyService(mock)

	req := dto.ContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@x.com",
		Message: "hello",
	}
	require.NoError(t, svc.HandleContact(context.Background(), req))

	internal := mock.Sent[0]
	require.NotContains(t, internal.TextBody, "Phone:")
	require.NotContains(t, internal.TextBody, "Company:")
	require.NotContains(t, internal.TextBody, "Service:")
}

func TestHandleContactFirstSendFailureStopsSecond(t *testing.T) {
	mock := mail.NewMockClient()
	mock.FailNext = true
	svc := newTestNotifyService(mock)

	err := svc.HandleContact(context.Background(), validContactRequest())
	require.ErrorIs(t, err, pkgerrors.EmailSendFailed)
	// 第一封失败后不再尝试第二封
	require.Equal(t, 0, mock.SentCount())
}

func TestHandleContactSendFailureWrapsCause(t *testing.T) {
	mock := mail.NewMockClient()
	mock.FailAll = true
	svc := newTestNotifyService(mock)

	err := svc.HandleContact(context.Background(), validContactRequest())
	require.Error(t, err)
	require.ErrorIs(t, err, pkgerrors.EmailSendFailed)
	require.True(t, strings.Contains(err.Error(), "mock mail send failure"))
}
