package templates

import (
	"fmt"
	"html"
)

// Brand is shown in every email header and footer.
const Brand = "Training Calendar System"

// layout wraps already escaped body HTML in the shared shell.
func layout(title, accent, body string) string {
	safeTitle := html.EscapeString(title)

	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>%[1]s</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #f4f6fb; color: #333; }
    .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 15px; overflow: hidden; }
    .header { background: %[2]s; padding: 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 400; }
    .content { padding: 40px 30px; line-height: 1.6; font-size: 15px; }
    .info-card { background: #f8fafc; border-left: 4px solid %[2]s; padding: 20px; margin: 20px 0; }
    .info-label { font-weight: 600; color: #4a5568; }
    .code { font-size: 32px; font-weight: bold; letter-spacing: 8px; font-family: 'Courier New', monospace; color: %[2]s; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>%[1]s</h1>
    </div>
    <div class="content">
      %[3]s
    </div>
    <div class="footer">
      <p><strong>%[4]s</strong></p>
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`, safeTitle, accent, body, Brand)
}
