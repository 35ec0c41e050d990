package web

import "embed"

// FS contains the page's static assets: the stylesheet and the images.
// The patterns are relative to this file's directory (the 'web' directory).
//
//go:embed static/*
var FS embed.FS
