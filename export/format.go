package export

import "strings"

// NormalizeFormat coerces format values into known aliases with defaults applied.
func NormalizeFormat(format Format) Format {
	normalized := strings.ToLower(strings.TrimSpace(string(format)))
	switch normalized {
	case "", string(FormatPDF):
		return FormatPDF
	case "doc", "word", string(FormatDocx):
		return FormatDocx
	case "htm", string(FormatHTML):
		return FormatHTML
	case "excel", "xls", string(FormatXLSX):
		return FormatXLSX
	case "archive", "package", string(FormatZip):
		return FormatZip
	default:
		return Format(normalized)
	}
}

// ContentTypeForFormat returns the MIME type for a format.
func ContentTypeForFormat(format Format) string {
	switch format {
	case FormatPDF:
		return "application/pdf"
	case FormatDocx:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatZip:
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

// ExtensionForFormat returns the filename extension for a format, without dot.
func ExtensionForFormat(format Format) string {
	switch format {
	case FormatPDF, FormatDocx, FormatHTML, FormatJSON, FormatXLSX, FormatZip:
		return string(format)
	default:
		return "bin"
	}
}

// SupportedFormats lists the formats the coordinator understands.
func SupportedFormats() []Format {
	return []Format{FormatPDF, FormatDocx, FormatHTML, FormatJSON, FormatXLSX, FormatZip}
}

func formatSupported(format Format) bool {
	for _, f := range SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}
