// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pdfrender

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pomali/autogram/pkg/document"
	"github.com/pomali/autogram/pkg/errtypes"
)

// fakeSource renders page i as a 1x1 image whose red channel is i, so
// page order can be checked after PNG decoding.
type fakeSource struct {
	pages   int
	failOn  int
	closed  int
	dpis    []float64
	closeFn func() error
}

func (f *fakeSource) NumPage() int { return f.pages }

func (f *fakeSource) ImageDPI(page int, dpi float64) (*image.RGBA, error) {
	f.dpis = append(f.dpis, dpi)
	if page == f.failOn {
		return nil, errors.New("cannot decode content stream")
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: uint8(page), A: 255})
	return img, nil
}

func (f *fakeSource) Close() error {
	f.closed++
	if f.closeFn != nil {
		return f.closeFn()
	}
	return nil
}

func openerFor(src *fakeSource) Opener {
	return func([]byte) (Source, error) { return src, nil }
}

func pdfDoc() *document.Document {
	return document.New("contract.pdf", document.MimePDF, []byte("%PDF-1.7"))
}

func TestRasterizePageCount(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12} {
		src := &fakeSource{pages: n, failOn: -1}
		r := New(Options{Open: openerFor(src)})

		pages, err := r.Rasterize(context.Background(), pdfDoc(), 150)
		require.NoError(t, err)
		require.NotNil(t, pages)
		require.Len(t, pages, n)
		assert.Equal(t, 1, src.closed)

		for i, p := range pages {
			img, err := png.Decode(bytes.NewReader(p))
			require.NoError(t, err)
			red, _, _, _ := img.At(0, 0).RGBA()
			assert.Equal(t, uint32(i), red>>8, "page %d out of order", i)
		}
		for _, dpi := range src.dpis {
			assert.Equal(t, 150.0, dpi)
		}
	}
}

func TestRasterizeDefaultDPI(t *testing.T) {
	src := &fakeSource{pages: 1, failOn: -1}
	_, err := New(Options{Open: openerFor(src)}).Rasterize(context.Background(), pdfDoc(), 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{DefaultDPI}, src.dpis)
}

func TestRasterizeErrors(t *testing.T) {
	tests := []struct {
		name string
		open Opener
		src  *fakeSource
	}{
		{
			name: "corrupt document",
			open: func([]byte) (Source, error) { return nil, errors.New("no objects found") },
		},
		{
			name: "page failure",
			src:  &fakeSource{pages: 3, failOn: 1},
		},
		{
			name: "close failure",
			src:  &fakeSource{pages: 2, failOn: -1, closeFn: func() error { return errors.New("close") }},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open := tt.open
			if tt.src != nil {
				open = openerFor(tt.src)
			}
			pages, err := New(Options{Open: open}).Rasterize(context.Background(), pdfDoc(), 100)
			require.Error(t, err)
			assert.Nil(t, pages)
			assert.True(t, errtypes.IsType(err, errtypes.ErrTypeRasterization))
			assert.False(t, errtypes.IsType(err, errtypes.ErrTypeUnsupportedFormat))
			if tt.src != nil {
				assert.Equal(t, 1, tt.src.closed)
			}
		})
	}
}

func TestRasterizeCancelled(t *testing.T) {
	src := &fakeSource{pages: 5, failOn: -1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{Open: openerFor(src)}).Rasterize(ctx, pdfDoc(), 100)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.dpis)
	assert.Equal(t, 1, src.closed)
}
