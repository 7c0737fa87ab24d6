package godown

import "errors"

var (
	// ErrGoodTooLarge is returned when a good exceeds common.GoodMaxSize.
	ErrGoodTooLarge = errors.New("godown: good exceeds size limit")

	ErrEmptyGood = errors.New("godown: good is empty")

	// ErrDuplicate means a Replace left both the old and the new copy live.
	ErrDuplicate = errors.New("godown: replace left two live copies")
)
