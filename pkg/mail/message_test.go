package mail

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildRawMessage(t *testing.T) {
	raw, err := BuildRawMessage(Message{
		From:     "studio@pixelpulse.in",
		To:       "leads@pixelpulse.in",
		ReplyTo:  "asha@x.com",
		Subject:  "New Contact Form Submission from Asha Rao",
		TextBody: "Name: Asha Rao\nEmail: asha@x.com",
		HTMLBody: "<p>Asha Rao</p>",
	})
	require.NoError(t, err)

	s := string(raw)
	require.Contains(t, s, "From: studio@pixelpulse.in\r\n")
	require.Contains(t, s, "To: leads@pixelpulse.in\r\n")
	require.Contains(t, s, "Reply-To: asha@x.com\r\n")
	require.Contains(t, s, "MIME-Version: 1.0\r\n")
	require.Contains(t, s, "multipart/alternative")
	require.Contains(t, s, "Content-Type: text/plain; charset=utf-8")
	require.Contains(t, s, "Content-Type: text/html; charset=utf-8")

	// 纯文本部分在 HTML 之前
	require.Less(t,
		strings.Index(s, "text/plain"),
		strings.Index(s, "text/html"),
	)

	// 正文换行统一成 CRLF
	require.Contains(t, s, "Name: Asha Rao\r\nEmail: asha@x.com")
}

func TestBuildRawMessageOmitsEmptyReplyTo(t *testing.T) {
	raw, err := BuildRawMessage(Message{
		From:     "studio@pixelpulse.in",
		To:       "asha@x.com",
		Subject:  "Thank you for contacting PixelPulse Studio",
		TextBody: "Hi Asha",
	})
	require.NoError(t, err)
	require.NotContains(t, string(raw), "Reply-To:")
}

func TestBuildRawMessageRejectsEmptyContent(t *testing.T) {
	_, err := BuildRawMessage(Message{From: "a@b.co", To: "c@d.co", TextBody: "x"})
	require.Error(t, err) // 缺主题

	_, err = BuildRawMessage(Message{From: "a@b.co", To: "c@d.co", Subject: "s"})
	require.Error(t, err) // 缺正文
}
