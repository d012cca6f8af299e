// Package lisplib is used to conveniently load the standard library into a
// lisp.Registry.
package lisplib

import (
	"github.com/opensdraw/lcad/lisp"
	"github.com/opensdraw/lcad/lisp/lisplib/libmath"
	"github.com/opensdraw/lcad/lisp/lisplib/libmodel"
	"github.com/opensdraw/lcad/lisp/lisplib/librand"
	"github.com/opensdraw/lcad/lisp/lisplib/libstring"
	"github.com/opensdraw/lcad/lisp/lisplib/libtesting"
)

// LoadLibrary loads the standard library into reg.
func LoadLibrary(reg *lisp.Registry) error {
	err := libmath.LoadPackage(reg)
	if err != nil {
		return err
	}
	err = librand.LoadPackage(reg)
	if err != nil {
		return err
	}
	err = libstring.LoadPackage(reg)
	if err != nil {
		return err
	}
	err = libmodel.LoadPackage(reg)
	if err != nil {
		return err
	}
	err = libtesting.LoadPackage(reg)
	if err != nil {
		return err
	}
	return nil
}

// NewRegistry returns a registry holding the core language and the standard
// library.
func NewRegistry() (*lisp.Registry, error) {
	reg := lisp.NewRegistry()
	err := LoadLibrary(reg)
	if err != nil {
		return nil, err
	}
	return reg, nil
}
