package report

// pageTemplate is the Go html/template for a standalone report page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Forensic report — {{.Title}}</title>
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
           max-width: 880px; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
    table { border-collapse: collapse; }
    th, td { border: 1px solid #ddd; padding: 0.4rem 0.8rem; text-align: left; }
    code { background: #f4f4f4; padding: 0.1rem 0.3rem; border-radius: 3px; }
    pre code { display: block; padding: 0.8rem; overflow-x: auto; }
    .risk-banner { padding: 0.5rem 1rem; border-radius: 4px; background: #f4f4f4;
                   font-weight: 600; margin-bottom: 1rem; }
  </style>
</head>
<body>
  <div class="risk-banner">Risk level: {{.RiskLevel}}</div>
  {{.Content}}
</body>
</html>
`
