package imgcache

import (
	"bytes"
	"image"
)

// DecodeImage is the default DecodeFunc. It decodes data with the standard
// library's image package and returns an image.Image.
//
// Codecs are resolved through image.RegisterFormat, so callers must
// blank-import the formats they expect:
//
//	import (
//		_ "image/jpeg"
//		_ "image/png"
//	)
//
// Tests and non-image callers should inject their own DecodeFunc with
// WithDecodeFunc instead.
func DecodeImage(data []byte) (any, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeBytes is a pass-through DecodeFunc that returns the raw bytes as
// the artifact, for callers that cache payloads without a decoded form.
func DecodeBytes(data []byte) (any, error) {
	return data, nil
}
