package toolcards

import (
	"errors"

	"github.com/alnah/go-toolcards/internal/assets"
	"github.com/alnah/go-toolcards/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidConfig = errors.New("invalid run configuration")
	ErrReadInput     = errors.New("cannot read catalog document")
	ErrReadTarget    = errors.New("cannot read target page")
	ErrWriteOutput   = errors.New("cannot write target page")
	ErrEmptyCatalog  = errors.New("catalog contains no tools")

	// Asset loading errors.
	ErrInvalidAssetPath      = errors.New("invalid asset path")
	ErrTemplateSetNotFound   = assets.ErrTemplateSetNotFound
	ErrIncompleteTemplateSet = assets.ErrIncompleteTemplateSet

	// Rendering errors.
	ErrTemplateParse = pipeline.ErrTemplateParse
	ErrRender        = pipeline.ErrRender
)
