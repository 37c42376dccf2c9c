package audio

import (
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// DecodeFunc decodes an opened audio file into a seekable stream.
// The returned streamer owns rc and closes it.
type DecodeFunc func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)

var (
	decodersMu sync.RWMutex
	decoders   = map[string]DecodeFunc{
		"wav": func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(rc)
		},
		"mp3": mp3.Decode,
		"ogg": vorbis.Decode,
	}
)

// RegisterDecoder adds or replaces the decoder for an extension.
func RegisterDecoder(ext string, fn DecodeFunc) {
	decodersMu.Lock()
	defer decodersMu.Unlock()
	decoders[normaliseExt(ext)] = fn
}

// Supported reports whether a decoder exists for the extension.
func Supported(ext string) bool {
	_, ok := decoderFor(ext)
	return ok
}

// SupportedExtensions returns the extensions with a registered decoder.
func SupportedExtensions() []string {
	decodersMu.RLock()
	defer decodersMu.RUnlock()

	exts := make([]string, 0, len(decoders))
	for ext := range decoders {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// decoderForPath picks the decoder by file extension.
func decoderForPath(path string) (DecodeFunc, bool) {
	return decoderFor(filepath.Ext(path))
}

func decoderFor(ext string) (DecodeFunc, bool) {
	decodersMu.RLock()
	defer decodersMu.RUnlock()
	fn, ok := decoders[normaliseExt(ext)]
	return fn, ok
}

func normaliseExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
