// Package web holds the dashboard templates and browser assets.
package web

import "embed"

// TemplatesFS embeds the dashboard page and its HTMX partials.
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS embeds the stylesheet and chart script.
//
//go:embed static/*
var StaticFS embed.FS
