package indexed

import "errors"

// Error taxonomy (spec §6). Convert returns ErrPaletteEmpty and
// ErrCancelled; it performs no already-indexed, precision or color-space
// check, so ErrAlreadyIndexed, ErrPrecisionUnsupported and
// ErrColorSpaceUnavailable are not returned by it.
var (
	ErrPaletteEmpty          = errors.New("indexed: palette is empty")
	ErrAlreadyIndexed        = errors.New("indexed: layer is already indexed")
	ErrPrecisionUnsupported  = errors.New("indexed: unsupported histogram precision")
	ErrColorSpaceUnavailable = errors.New("indexed: color-space conversion unavailable")
	ErrCancelled             = errors.New("indexed: conversion cancelled")
)
