// Package printpdf provides browser-based PDF engines as an alternative to
// the native fpdf backend.
//
// It renders the HTML backend's output and prints it to PDF with a pluggable
// engine (chromedp or wkhtmltopdf). Rendering is gated by Renderer.Enabled:
// hosts without a browser capability leave it disabled and single render
// calls fail with an explicit unavailable error.
package printpdf
