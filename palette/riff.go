package palette

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

/*
A PAL file is a RIFF form of type "PAL " holding one or more "data" chunks,
each a LOGPALETTE:

typedef struct tagLOGPALETTE {
  WORD         palVersion;     // 0x0300
  WORD         palNumEntries;
  PALETTEENTRY palPalEntry[1]; // BYTE peRed, peGreen, peBlue, peFlags
} LOGPALETTE;
*/

const palVersion = 0x0300

var (
	riffType = riff.FourCC{'R', 'I', 'F', 'F'}
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

// ReadFrom decodes every palette stored in a RIFF PAL stream, in order.
func ReadFrom(r io.Reader) ([]color.Palette, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	} else if formType != palType {
		return nil, fmt.Errorf("unsupported RIFF content type: %q", string(formType[:]))
	}

	return readPalettes(rd, "PAL")
}

func readPalettes(r *riff.Reader, ident string) ([]color.Palette, error) {
	var res []color.Palette

	for i := 0; ; i++ {
		id, size, data, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		} else if err != nil {
			return res, fmt.Errorf("could not read chunk %s#%d: %w", ident, i, err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list %s#%d: %w", ident, i, err)
			} else if listType != palType {
				return res, fmt.Errorf("list %s#%d has unsupported type %q", ident, i, string(listType[:]))
			}

			nested, err := readPalettes(list, fmt.Sprintf("%s#%d", ident, i))
			res = append(res, nested...)
			if err != nil {
				return res, err
			}
		case dataType:
			pal, err := readPalette(data)
			if err != nil {
				return res, fmt.Errorf("could not read palette %s#%d: %w", ident, i, err)
			}
			res = append(res, pal)
		default:
			// Other chunks (e.g. INFO metadata) are allowed and ignored.
		}
	}
}

func readPalette(r io.Reader) (color.Palette, error) {
	var hdr struct {
		Version uint16
		Count   uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	if hdr.Version != palVersion {
		return nil, fmt.Errorf("unsupported palette version: %#04x", hdr.Version)
	}

	entries := make([]byte, 4*int(hdr.Count))
	if _, err := io.ReadFull(r, entries); err != nil {
		return nil, fmt.Errorf("could not read %d colors: %w", hdr.Count, err)
	}

	pal := make(color.Palette, hdr.Count)
	for i := range pal {
		e := entries[4*i:]
		pal[i] = color.RGBA{R: e[0], G: e[1], B: e[2], A: 0xff}
	}
	return pal, nil
}
