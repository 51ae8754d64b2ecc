package importer

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"

	"github.com/quantmind-br/xnpak/internal/domain"
)

// WAVE format tags
const (
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3
)

// ImportAudio returns the raw interleaved samples of a WAV file. Only 32-bit
// IEEE float data is accepted; anything else is rejected rather than
// converted.
func ImportAudio(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImportIO, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", domain.ErrUnsupportedEncoding)
	}

	if dec.WavAudioFormat != wavFormatIEEEFloat || dec.BitDepth != 32 {
		return nil, fmt.Errorf("%w: audio importer only supports 32-bit float samples, got %s",
			domain.ErrUnsupportedEncoding, describeWavFormat(dec.WavAudioFormat, dec.BitDepth))
	}

	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: locate data chunk: %v", domain.ErrUnsupportedEncoding, err)
	}

	data := make([]byte, dec.PCMSize)
	if _, err := io.ReadFull(dec.PCMChunk, data); err != nil {
		return nil, fmt.Errorf("%w: read samples: %v", domain.ErrImportIO, err)
	}
	return data, nil
}

func describeWavFormat(format, bitDepth uint16) string {
	switch format {
	case wavFormatPCM:
		return fmt.Sprintf("%d-bit integer PCM", bitDepth)
	case wavFormatIEEEFloat:
		return fmt.Sprintf("%d-bit float", bitDepth)
	default:
		return fmt.Sprintf("format tag %#x at %d bits", format, bitDepth)
	}
}
