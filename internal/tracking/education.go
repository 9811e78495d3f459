package tracking

// educationPage is shown after a recipient submits credentials on a
// simulated landing page. It is intentionally self-contained HTML so
// the server needs no asset pipeline to serve it.
const educationPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Security Awareness Training</title>
  <style>
    body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f4f6f8; margin: 0; }
    .container { max-width: 640px; margin: 48px auto; background: #fff; border-radius: 8px; padding: 40px; box-shadow: 0 1px 4px rgba(0,0,0,0.1); }
    h1 { color: #c0392b; margin-top: 0; }
    h2 { color: #2c3e50; }
    .banner { background: #fdecea; border-left: 4px solid #c0392b; padding: 12px 16px; margin-bottom: 24px; }
    ul { line-height: 1.7; }
    .footer { margin-top: 32px; color: #7f8c8d; font-size: 14px; }
  </style>
</head>
<body>
  <div class="container">
    <h1>This was a phishing simulation</h1>
    <div class="banner">
      The page you just submitted your credentials to was not real.
      No credentials were sent anywhere outside your organization's
      security awareness program.
    </div>
    <h2>What to look for next time</h2>
    <ul>
      <li>Check the sender's address carefully. Attackers use lookalike domains.</li>
      <li>Hover over links before clicking to see where they really lead.</li>
      <li>Be suspicious of urgency. "Act now or lose access" is a pressure tactic.</li>
      <li>Never enter credentials on a page you reached from an email link. Navigate to the site yourself.</li>
      <li>Report suspicious emails to your security team instead of deleting them.</li>
    </ul>
    <h2>What happens now</h2>
    <p>
      Your participation has been recorded as part of this training
      exercise. Completing this page counts toward your awareness
      training progress. If you have questions, contact your security
      team.
    </p>
    <div class="footer">Security awareness training &middot; simulated phishing exercise</div>
  </div>
</body>
</html>`
