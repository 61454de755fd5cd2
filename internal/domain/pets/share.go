package pets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	MinQRSize     = 64
	MaxQRSize     = 1024
)

var whitespace = regexp.MustCompile(`\s+`)

// ShareURL arma el link público de visualización: <baseURL>/visualizar/<id>.
func ShareURL(baseURL, id string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/visualizar/" + url.PathEscape(id)
}

// QRCodePNG codifica el link en un PNG cuadrado de size px.
func QRCodePNG(link string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	if size < MinQRSize || size > MaxQRSize {
		return nil, fmt.Errorf("%w: qr size must be between %d and %d", ErrInvalidInput, MinQRSize, MaxQRSize)
	}
	png, err := qrcode.Encode(link, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

// QRFileName: "Rex do Sul" -> "rex-do-sul-qrcode.png".
func QRFileName(petName string) string {
	slug := whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(petName)), "-")
	if slug == "" {
		slug = "pet"
	}
	return slug + "-qrcode.png"
}
