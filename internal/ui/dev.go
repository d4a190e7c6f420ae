//go:build dev

package ui

const isDevBuild = true
