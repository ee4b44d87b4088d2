package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// converterBin is the librsvg command line tool used for PDF output.
var converterBin = "rsvg-convert"

// ErrConverterMissing is returned by [SVGToPDF] when rsvg-convert is not
// on PATH. Install librsvg (brew install librsvg, apt install librsvg2-bin).
var ErrConverterMissing = errors.New("pdf output needs rsvg-convert from librsvg")

// SVGToPDF pipes svg through rsvg-convert. The process is killed when ctx
// is cancelled.
func SVGToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(converterBin)
	if err != nil {
		return nil, ErrConverterMissing
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stderr = &stderr
	pdf, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", converterBin, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return pdf, nil
}
