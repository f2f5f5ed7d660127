// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package backend

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// defaultImageMaxWidth is the widest image sent to the backend. Covers and
// character art are displayed far smaller in the apps.
const defaultImageMaxWidth = 2048

// imageFormats are the formats that are downscaled. GIFs are left alone so
// animations survive.
var imageFormats = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
}

// fitImage downscales file to maxWidth, keeping the aspect ratio and format.
//
// Anything that cannot be measured, decoded or re-encoded is returned unchanged
// and left to the backend to judge.
func fitImage(file *File, maxWidth int) *File {
	if maxWidth <= 0 {
		return file
	}

	format, ok := imageFormats[file.MediaType()]
	if !ok {
		return file
	}

	config, _, err := image.DecodeConfig(bytes.NewReader(file.Content))
	if err != nil || config.Width <= maxWidth {
		return file
	}

	source, err := imaging.Decode(bytes.NewReader(file.Content), imaging.AutoOrientation(true))
	if err != nil {
		return file
	}

	var encoded bytes.Buffer
	resized := imaging.Resize(source, maxWidth, 0, imaging.Lanczos)
	if err := imaging.Encode(&encoded, resized, format, imaging.JPEGQuality(85)); err != nil {
		return file
	}

	return &File{Name: file.Name, Content: encoded.Bytes()}
}
