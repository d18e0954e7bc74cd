package render

import "errors"

var (
	ErrShaderLoad  = errors.New("render: shader failed to load")
	ErrNotApplied  = errors.New("render: no configuration applied")
	ErrEmptyFrame  = errors.New("render: frame capture is empty")
	ErrBadViewport = errors.New("render: viewport must be positive")
)
