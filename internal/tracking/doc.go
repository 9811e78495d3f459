// Package tracking implements the recipient-facing endpoints of a
// phishing simulation: the open-tracking pixel, the landing page with
// credential capture, and the education page. Handlers are written to
// be unrevealing; probing them with invalid IDs looks the same as
// hitting them legitimately.
package tracking
