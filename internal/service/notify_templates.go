package service

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

// 邮件模板。phone/company/service 行按需出现，没填就整行不渲染。

var internalTextTmpl = texttemplate.Must(texttemplate.New("internal_text").Parse(
	`New contact form submission on {{.SiteName}}

Name: {{.Name}}
Email: {{.Email}}
{{- if .Phone}}
Phone: {{.Phone}}
{{- end}}
{{- if .Company}}
Company: {{.Company}}
{{- end}}
{{- if .Service}}
Service: {{.Service}}
{{- end}}

Message:
{{.Message}}

Received: {{.ReceivedAt}}
`))

var internalHTMLTmpl = htmltemplate.Must(htmltemplate.New("internal_html").Parse(
	`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1a1a2e">New contact form submission</h2>
  <table style="border-collapse:collapse;width:100%">
    <tr><td style="padding:6px 12px;font-weight:bold">Name</td><td style="padding:6px 12px">{{.Name}}</td></tr>
    <tr><td style="padding:6px 12px;font-weight:bold">Email</td><td style="padding:6px 12px"><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
    {{- if .Phone}}
    <tr><td style="padding:6px 12px;font-weight:bold">Phone</td><td style="padding:6px 12px">{{.Phone}}</td></tr>
    {{- end}}
    {{- if .Company}}
    <tr><td style="padding:6px 12px;font-weight:bold">Company</td><td style="padding:6px 12px">{{.Company}}</td></tr>
    {{- end}}
    {{- if .Service}}
    <tr><td style="padding:6px 12px;font-weight:bold">Service</td><td style="padding:6px 12px">{{.Service}}</td></tr>
    {{- end}}
  </table>
  <h3 style="color:#1a1a2e">Message</h3>
  <p style="background:#f5f5f7;padding:12px;border-radius:6px;white-space:pre-wrap">{{.Message}}</p>
  <p style="color:#888;font-size:12px">Received {{.ReceivedAt}} via {{.SiteName}}</p>
</div>
`))

var autoReplyTextTmpl = texttemplate.Must(texttemplate.New("auto_reply_text").Parse(
	`Hi {{.Name}},

Thank you for reaching out to {{.SiteName}}. We have received your message
and will get back to you within one business day.

Your message:
"{{.Message}}"

Warm regards,
The {{.SiteName}} Team
`))

var autoReplyHTMLTmpl = htmltemplate.Must(htmltemplate.New("auto_reply_html").Parse(
	`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1a1a2e">Thank you for reaching out!</h2>
  <p>Hi {{.Name}},</p>
  <p>We have received your message and will get back to you within one business day.</p>
  <blockquote style="background:#f5f5f7;padding:12px;border-left:4px solid #6c63ff;border-radius:4px;white-space:pre-wrap">{{.Message}}</blockquote>
  <p>Warm regards,<br/>The {{.SiteName}} Team</p>
</div>
`))
