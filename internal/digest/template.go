package digest

import "html/template"

var emailTemplate = template.Must(template.New("digest").Parse(emailTemplateRaw))

const emailTemplateRaw = `<!DOCTYPE html>
<html><head><meta charset="utf-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, Segoe UI, Roboto, sans-serif; max-width: 640px; margin: 0 auto; padding: 20px; color: #1a1a1a; background: #ffffff;">
<div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); border-radius: 12px; padding: 24px; margin-bottom: 24px;">
<p style="font-size: 13px; color: rgba(255,255,255,0.8); margin: 0 0 8px 0; text-transform: uppercase; letter-spacing: 1px;">Motivational Quote of the Day &#128521;</p>
<p class="quote" style="font-size: 18px; color: #ffffff; margin: 0; font-style: italic; line-height: 1.4;">&ldquo;{{.Quote}}&rdquo;</p>
</div>
<h1 style="font-size: 22px; color: #1a1a1a; margin: 0 0 4px 0;">Med Device Sales Jobs</h1>
<p class="summary" style="font-size: 14px; color: #888; margin: 0 0 20px 0;">{{.Date}} &mdash; {{.Summary}}</p>
{{range .Sections}}
<div class="metro" data-metro="{{.Metro}}">
{{- if .Priority}}
<div style="background: #f0f7ff; border-radius: 8px; padding: 12px 16px; margin: 24px 0 16px 0;">
<h2 style="font-size: 18px; color: #0066cc; margin: 0;">&#11088; {{.Metro}} ({{.Count}})</h2></div>
{{- else}}
<h3 style="font-size: 16px; color: #444; margin: 28px 0 12px 0; padding-bottom: 8px; border-bottom: 2px solid #eee;">{{.Metro}} ({{.Count}})</h3>
{{- end}}
{{range $i, $row := .Rows}}
<div class="job" style="padding: 12px 14px; background: {{if $row.Odd}}#ffffff{{else}}#fafafa{{end}}; border-radius: 6px; margin-bottom: 4px;">
<div style="font-size: 15px; font-weight: 600;">
{{- if $row.Link}}<a href="{{$row.Link}}" style="color: #0066cc; text-decoration: none;">{{$row.Title}}</a>{{else}}{{$row.Title}}{{end}}
{{- if eq $row.Badge "TOP MATCH"}}<span class="badge" style="background:#22c55e;color:#fff;font-size:10px;padding:2px 6px;border-radius:4px;margin-left:8px;">TOP MATCH</span>{{end}}
{{- if eq $row.Badge "GOOD FIT"}}<span class="badge" style="background:#3b82f6;color:#fff;font-size:10px;padding:2px 6px;border-radius:4px;margin-left:8px;">GOOD FIT</span>{{end -}}
</div>
<div style="font-size: 13px; color: #555; margin-top: 4px;">{{$row.Company}} &bull; {{$row.Location}}</div>
<div style="font-size: 12px; color: #999; margin-top: 2px;">{{$row.Posted}}</div>
</div>
{{- end}}
{{- if .More}}
<p class="more" style="font-size: 12px; color: #999; margin: 8px 0 0 0;">and {{.More}} more</p>
{{- end}}
</div>
{{end}}
<div style="border-top: 1px solid #eee; margin-top: 32px; padding-top: 16px;">
<p style="color: #aaa; font-size: 11px; margin: 0;">Powered by Google Jobs data &bull; Auto-sent daily &bull; Entry-level roles only</p>
</div>
</body></html>
`
