package mail

import (
	"bytes"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BuildRawMessage 把 Message 组装成 multipart/alternative 的原始报文。
// 纯文本在前 HTML 在后，收件端按惯例取最后一个能渲染的部分。
func BuildRawMessage(msg Message) ([]byte, error) {
	if msg.Subject == "" {
		return nil, fmt.Errorf("empty subject")
	}
	if msg.TextBody == "" && msg.HTMLBody == "" {
		return nil, fmt.Errorf("empty body")
	}

	boundary := "part-" + uuid.NewString()
	messageID := fmt.Sprintf("<%s@studioleads>", uuid.NewString())

	var buf bytes.Buffer

	header := func(k, v string) {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(v)
		buf.WriteString("\r\n")
	}

	header("From", msg.From)
	header("To", msg.To)
	if msg.ReplyTo != "" {
		header("Reply-To", msg.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Message-ID", messageID)
	header("Date", time.Now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", boundary))
	buf.WriteString("\r\n")

	writePart := func(contentType, body string) {
		buf.WriteString("--" + boundary + "\r\n")
		buf.WriteString("Content-Type: " + contentType + "; charset=utf-8\r\n")
		buf.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		buf.WriteString(normalizeNewlines(body))
		buf.WriteString("\r\n")
	}

	if msg.TextBody != "" {
		writePart("text/plain", msg.TextBody)
	}
	if msg.HTMLBody != "" {
		writePart("text/html", msg.HTMLBody)
	}

	buf.WriteString("--" + boundary + "--\r\n")

	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
