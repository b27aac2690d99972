package feedback

import (
	"encoding/base64"
	"log/slog"
	"strings"

	"github.com/yolodolo42/checkback/internal/errutil"
)

// DecodedImage is one attachment reduced to raw bytes plus the wire
// format inferred from its file name.
type DecodedImage struct {
	Bytes  []byte
	Format string
}

// DecodeImages converts the collected attachments into raw image data.
// Each attachment is processed independently: an empty payload, an
// unsupported payload type, or a corrupt base64 string drops that one
// attachment (logged with a correlation id) and never aborts the rest.
// Output order matches input order with dropped entries simply absent.
func DecodeImages(images []ImageAttachment) []DecodedImage {
	var decoded []DecodedImage

	for i, img := range images {
		var raw []byte
		switch data := img.Data.(type) {
		case nil:
			continue
		case []byte:
			raw = data
		case string:
			if data == "" {
				continue
			}
			var err error
			raw, err = base64.StdEncoding.DecodeString(data)
			if err != nil {
				errutil.Log(errutil.KindFileIO, "image decode", err,
					slog.Int("image_index", i+1),
					slog.String("image_name", img.Name))
				continue
			}
		default:
			continue
		}

		if len(raw) == 0 {
			continue
		}

		decoded = append(decoded, DecodedImage{Bytes: raw, Format: FormatForName(img.Name)})
	}

	return decoded
}

// FormatForName infers the image format from a file name extension.
// Unknown extensions fall back to png.
func FormatForName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg"):
		return "jpeg"
	case strings.HasSuffix(lower, ".gif"):
		return "gif"
	case strings.HasSuffix(lower, ".webp"):
		return "webp"
	default:
		return "png"
	}
}

// MIMEForName maps a file name to the MIME type used in data: URIs and
// MCP image items.
func MIMEForName(name string) string {
	return "image/" + FormatForName(name)
}
